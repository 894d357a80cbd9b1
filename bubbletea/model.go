// Package bubbletea provides a two-pane terminal front end for compare
// sessions using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpane"
	dpstyle "github.com/fwojciec/diffpane/lipgloss"
	"github.com/fwojciec/diffpane/memhost"
	"github.com/fwojciec/diffpane/session"
)

// chromeRows are the rows not available to pane content: the tab bar, the
// status bar and the message line.
const chromeRows = 3

// Model is the Bubble Tea model driving a memhost editor and a compare
// session.
type Model struct {
	ctx      context.Context
	host     *memhost.Host
	session  *session.Session
	clock    *Clock
	prompter *Prompter

	tokenizer diffpane.Tokenizer
	clipboard diffpane.Clipboard
	tokens    *tokenCache

	keymap KeyMap
	styles dpstyle.Styles

	width      int
	height     int
	ready      bool
	pendingKey string
	anchor     int // selection anchor line, -1 when not selecting
	register   []string
	message    string
	question   *question
}

// question is a confirmation waiting for the user.
type question struct {
	text  string
	retry func() error
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	ctx       context.Context
	renderer  *lipgloss.Renderer
	theme     diffpane.Theme
	tokenizer diffpane.Tokenizer
	clipboard diffpane.Clipboard
	keymap    *KeyMap
}

// WithContext sets the context compare commands run with.
func WithContext(ctx context.Context) ModelOption {
	return func(cfg *modelConfig) {
		cfg.ctx = ctx
	}
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t diffpane.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithTokenizer enables syntax highlighting.
func WithTokenizer(t diffpane.Tokenizer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.tokenizer = t
	}
}

// WithClipboard enables copying lines.
func WithClipboard(c diffpane.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) ModelOption {
	return func(cfg *modelConfig) {
		cfg.keymap = &km
	}
}

// NewModel creates a Model over host and sess. The session must have been
// created with clock and prompter, and registered as the host listener.
func NewModel(host *memhost.Host, sess *session.Session, clock *Clock, prompter *Prompter, opts ...ModelOption) Model {
	cfg := &modelConfig{ctx: context.Background()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.theme == nil {
		cfg.theme = dpstyle.DarkTheme()
	}
	km := DefaultKeyMap()
	if cfg.keymap != nil {
		km = *cfg.keymap
	}

	return Model{
		ctx:       cfg.ctx,
		host:      host,
		session:   sess,
		clock:     clock,
		prompter:  prompter,
		tokenizer: cfg.tokenizer,
		clipboard: cfg.clipboard,
		tokens:    newTokenCache(),
		keymap:    km,
		styles:    dpstyle.NewStyles(cfg.theme, cfg.renderer),
		anchor:    -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.clock.wait()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerMsg:
		msg()
		m.collect(nil)
		return m, m.clock.wait()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := max(msg.Height-chromeRows, 1)
		m.host.SetLinesOnScreen(diffpane.MainView, rows)
		m.host.SetLinesOnScreen(diffpane.SubView, rows)
		m.ready = true
		m.host.Paint()
		return m, nil
	case tea.BlurMsg:
		m.host.Minimize()
		return m, nil
	case tea.FocusMsg:
		m.host.Restore()
		return m, nil
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.host.Paint()
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.question != nil {
		q := m.question
		m.question = nil
		if key.Matches(msg, m.keymap.Yes) {
			m.prompter.arm(true)
			m.run(q.retry)
		} else {
			m.message = "Cancelled."
		}
		return nil
	}

	// Handle multi-key sequences (gg for go to top)
	if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = ""
		m.moveCaret(0)
		return nil
	}
	if key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = "g"
		return nil
	}
	m.pendingKey = ""
	m.message = ""

	view := m.host.CurrentView()
	caret := m.host.CaretLine(view)
	half := max(m.host.LinesOnScreen(view)/2, 1)

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.host.Shutdown()
		return tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.moveCaret(caret - 1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCaret(caret + 1)
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.moveCaret(caret - half)
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.moveCaret(caret + half)
	case key.Matches(msg, m.keymap.GotoBottom):
		m.moveCaret(m.host.LineCount(view) - 1)
	case key.Matches(msg, m.keymap.Select):
		m.toggleSelection()
	case key.Matches(msg, m.keymap.Cancel):
		m.clearSelection()

	case key.Matches(msg, m.keymap.SwitchView):
		m.anchor = -1
		m.host.SwitchToOtherView()
	case key.Matches(msg, m.keymap.NextTab):
		m.anchor = -1
		m.host.NextTab()
	case key.Matches(msg, m.keymap.PrevTab):
		m.anchor = -1
		m.host.PrevTab()
	case key.Matches(msg, m.keymap.MoveTab):
		m.anchor = -1
		m.host.MoveToOtherView()
	case key.Matches(msg, m.keymap.CloseTab):
		m.anchor = -1
		m.host.CloseCurrent()
	case key.Matches(msg, m.keymap.ZoomIn):
		m.host.SetZoom(view, m.host.Zoom(view)+1)
	case key.Matches(msg, m.keymap.ZoomOut):
		m.host.SetZoom(view, m.host.Zoom(view)-1)

	case key.Matches(msg, m.keymap.SetFirst):
		m.run(m.session.SetFirst)
	case key.Matches(msg, m.keymap.Compare):
		m.run(m.compare(m.session.Compare))
	case key.Matches(msg, m.keymap.CompareSelection):
		m.run(m.compare(m.session.CompareSelection))
		m.anchor = -1
	case key.Matches(msg, m.keymap.LastSaveDiff):
		m.run(m.compare(m.session.LastSaveDiff))
	case key.Matches(msg, m.keymap.GitDiff):
		m.run(m.vcsDiff(diffpane.TempVCSRevisionA))
	case key.Matches(msg, m.keymap.BaseDiff):
		m.run(m.vcsDiff(diffpane.TempVCSRevisionB))
	case key.Matches(msg, m.keymap.ClearActive):
		m.session.ClearActive()
	case key.Matches(msg, m.keymap.ClearAll):
		m.session.ClearAll()
	case key.Matches(msg, m.keymap.NextDiff):
		m.navigate(m.session.Next)
	case key.Matches(msg, m.keymap.PrevDiff):
		m.navigate(m.session.Prev)
	case key.Matches(msg, m.keymap.FirstDiff):
		m.navigate(m.session.First)
	case key.Matches(msg, m.keymap.LastDiff):
		m.navigate(m.session.Last)
	case key.Matches(msg, m.keymap.IgnoreSpaces):
		m.session.ToggleIgnoreSpaces()
		m.message = "Ignore Spaces: " + onOff(m.session.Settings().IgnoreSpaces)
	case key.Matches(msg, m.keymap.IgnoreCase):
		m.session.ToggleIgnoreCase()
		m.message = "Ignore Case: " + onOff(m.session.Settings().IgnoreCase)
	case key.Matches(msg, m.keymap.DetectMoves):
		m.session.ToggleDetectMoves()
		m.message = "Detect Moves: " + onOff(m.session.Settings().DetectMoves)

	case key.Matches(msg, m.keymap.DeleteLine):
		m.deleteLine()
	case key.Matches(msg, m.keymap.PutLine):
		m.edit(func(buf diffpane.BufferID) error {
			if len(m.register) == 0 {
				return nil
			}
			return m.host.InsertLines(buf, caret+1, m.register...)
		})
	case key.Matches(msg, m.keymap.OpenLine):
		m.edit(func(buf diffpane.BufferID) error {
			return m.host.InsertLines(buf, caret+1, "")
		})
	case key.Matches(msg, m.keymap.CopyLine):
		m.copyLine()
	case key.Matches(msg, m.keymap.Undo):
		m.edit(m.host.Undo)
	case key.Matches(msg, m.keymap.Redo):
		m.edit(m.host.Redo)
	case key.Matches(msg, m.keymap.Save):
		m.edit(m.host.Save)
	}

	m.collect(nil)
	return nil
}

// run executes a session command and reports its outcome.
func (m *Model) run(fn func() error) {
	m.prompter.take()
	err := fn()
	m.prompter.disarm()
	notices, asked := m.prompter.take()
	if asked != "" {
		m.question = &question{text: asked, retry: fn}
		m.message = strings.Join(notices, " ")
		return
	}
	m.collect(notices)
	if err != nil && len(notices) == 0 && !errors.Is(err, diffpane.ErrOperationIgnored) {
		m.message = err.Error()
	}
}

// collect shows notices raised outside a command, e.g. by delayed actions.
func (m *Model) collect(notices []string) {
	if notices == nil {
		notices, _ = m.prompter.take()
	}
	if len(notices) > 0 {
		m.message = strings.Join(notices, " ")
	}
}

func (m *Model) compare(fn func(context.Context) (diffpane.CompareResult, error)) func() error {
	return func() error {
		_, err := fn(m.ctx)
		return err
	}
}

func (m *Model) vcsDiff(kind diffpane.TempKind) func() error {
	return func() error {
		_, err := m.session.VCSDiff(m.ctx, kind)
		return err
	}
}

func (m *Model) navigate(fn func() bool) {
	if !fn() {
		m.message = "No differences."
	}
}

func (m *Model) moveCaret(line int) {
	view := m.host.CurrentView()
	m.host.SetCaret(view, line)
	if m.anchor >= 0 {
		m.host.SetSelection(view, m.anchor, m.host.CaretLine(view))
	}
}

func (m *Model) toggleSelection() {
	if m.anchor >= 0 {
		m.clearSelection()
		return
	}
	view := m.host.CurrentView()
	m.anchor = m.host.CaretLine(view)
	m.host.SetSelection(view, m.anchor, m.anchor)
}

func (m *Model) clearSelection() {
	m.anchor = -1
	m.host.ClearSelection(m.host.CurrentView())
}

func (m *Model) edit(fn func(buf diffpane.BufferID) error) {
	buf := m.host.CurrentBuffer()
	if buf == diffpane.NoBuffer {
		return
	}
	if err := fn(buf); err != nil {
		m.message = err.Error()
	}
}

func (m *Model) deleteLine() {
	view := m.host.CurrentView()
	first, last := m.host.CaretLine(view), m.host.CaretLine(view)
	if sel, ok := m.host.Selection(view); ok {
		first, last = sel.First, sel.Last
	}
	m.edit(func(buf diffpane.BufferID) error {
		lines := make([]string, 0, last-first+1)
		for n := first; n <= last; n++ {
			lines = append(lines, m.host.LineText(view, n))
		}
		if err := m.host.DeleteLines(buf, first, last-first+1); err != nil {
			return err
		}
		m.register = lines
		return nil
	})
	m.clearSelection()
}

func (m *Model) copyLine() {
	if m.clipboard == nil {
		m.message = "No clipboard available."
		return
	}
	view := m.host.CurrentView()
	if err := m.clipboard.Copy(m.host.LineText(view, m.host.CaretLine(view))); err != nil {
		m.message = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.message = "Line copied."
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	leftWidth := max((m.width-1)/2, 1)
	rightWidth := max(m.width-1-leftWidth, 1)
	rows := max(m.height-chromeRows, 1)

	left := m.renderPane(diffpane.MainView, leftWidth, rows)
	right := m.renderPane(diffpane.SubView, rightWidth, rows)
	divider := m.styles.Divider.Render("│")

	var b strings.Builder
	for i := range left {
		b.WriteString(left[i])
		b.WriteString(divider)
		b.WriteString(right[i])
		b.WriteString("\n")
	}
	b.WriteString(m.statusBarView())
	b.WriteString("\n")
	b.WriteString(m.messageView())
	return b.String()
}

func (m Model) statusBarView() string {
	status := m.host.Status()
	if !m.session.CompareMode() {
		status = "f: set first  c: compare  tab: other view  q: quit"
	}
	return m.styles.Status.Width(m.width).MaxWidth(m.width).Render(truncate(status, m.width))
}

func (m Model) messageView() string {
	text := m.message
	if m.question != nil {
		text = strings.TrimSpace(text + " " + m.question.text + " [y/N]")
	}
	return m.styles.Message.Render(truncate(text, m.width))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
