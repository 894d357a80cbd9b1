package session

import (
	"sort"

	"github.com/fwojciec/diffpane"
)

// diffBlock is the first line of a run of marked lines.
type diffBlock struct {
	view diffpane.ViewID
	line int
	row  int // display row of line
}

// blocks returns the diff blocks of both views ordered by display row. Blocks
// of the two views starting on the same row count once, the focused view's
// winning.
func (s *Session) blocks() []diffBlock {
	current := s.host.CurrentView()

	var out []diffBlock
	for _, view := range []diffpane.ViewID{current, current.Other()} {
		prev := diffpane.Marker(0)
		for line := range s.host.LineCount(view) {
			m := s.host.Markers(view, line) & diffpane.MarkerMaskLine
			if m != 0 && m != prev {
				out = append(out, diffBlock{view: view, line: line, row: s.host.VisibleFromDocLine(view, line)})
			}
			prev = m
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].row < out[j].row })

	uniq := out[:0]
	for i, b := range out {
		if i > 0 && b.row == uniq[len(uniq)-1].row {
			continue
		}
		uniq = append(uniq, b)
	}
	return uniq
}

// First jumps to the first diff block.
func (s *Session) First() bool {
	if !s.navigable() {
		return false
	}
	view, ok := s.jumpToFirstChange()
	if ok {
		s.syncViews(view)
	}
	return ok
}

// Last jumps to the last diff block.
func (s *Session) Last() bool {
	if !s.navigable() {
		return false
	}
	blocks := s.blocks()
	if len(blocks) == 0 {
		return false
	}
	s.jump(blocks[len(blocks)-1])
	return true
}

// Next jumps to the diff block after the caret, wrapping to the first one
// when WrapAround is set.
func (s *Session) Next() bool {
	if !s.navigable() {
		return false
	}
	blocks := s.blocks()
	if len(blocks) == 0 {
		return false
	}

	caret := s.caretRow()
	for _, b := range blocks {
		if b.row > caret {
			s.jump(b)
			return true
		}
	}
	if !s.settings.WrapAround {
		return false
	}
	s.jump(blocks[0])
	return true
}

// Prev jumps to the diff block before the caret, wrapping to the last one
// when WrapAround is set.
func (s *Session) Prev() bool {
	if !s.navigable() {
		return false
	}
	blocks := s.blocks()
	if len(blocks) == 0 {
		return false
	}

	caret := s.caretRow()
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].row < caret {
			s.jump(blocks[i])
			return true
		}
	}
	if !s.settings.WrapAround {
		return false
	}
	s.jump(blocks[len(blocks)-1])
	return true
}

func (s *Session) navigable() bool {
	return s.compareMode && s.registry.ByBuffer(s.host.CurrentBuffer()) != nil
}

func (s *Session) caretRow() int {
	view := s.host.CurrentView()
	return s.host.VisibleFromDocLine(view, s.host.CaretLine(view))
}

func (s *Session) jump(b diffBlock) {
	s.gotoBlock(b)
	s.syncViews(b.view)
}

// gotoBlock moves the carets of both views to the row of b.
func (s *Session) gotoBlock(b diffBlock) {
	defer s.guard()()
	other := b.view.Other()
	s.host.GotoLine(other, s.host.DocLineFromVisible(other, b.row))
	s.host.GotoLine(b.view, b.line)
}

// jumpToFirstChange moves the caret to the first diff block and returns the
// view holding it.
func (s *Session) jumpToFirstChange() (diffpane.ViewID, bool) {
	blocks := s.blocks()
	if len(blocks) == 0 {
		return 0, false
	}
	s.gotoBlock(blocks[0])
	return blocks[0].view, true
}
