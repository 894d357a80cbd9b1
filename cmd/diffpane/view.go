package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/bubbletea"
	"github.com/fwojciec/diffpane/chroma"
	"github.com/fwojciec/diffpane/clipboard"
	"github.com/fwojciec/diffpane/diffmatchpatch"
	"github.com/fwojciec/diffpane/fs"
	"github.com/fwojciec/diffpane/git"
	"github.com/fwojciec/diffpane/gitdiff"
	"github.com/fwojciec/diffpane/lipgloss"
	"github.com/fwojciec/diffpane/memhost"
	"github.com/fwojciec/diffpane/session"
	"github.com/spf13/cobra"
)

// workspace is an editor host with a compare session, ready to display.
type workspace struct {
	host     *memhost.Host
	session  *session.Session
	clock    *bubbletea.Clock
	prompter *bubbletea.Prompter
}

func (a *App) newWorkspace(settings diffpane.Settings, opts ...session.Option) *workspace {
	w := &workspace{
		host: memhost.New(
			memhost.WithReadFile(a.ReadFile),
			memhost.WithLanguageDetector(chroma.NewDetector().Detect),
		),
		clock:    bubbletea.NewClock(),
		prompter: bubbletea.NewPrompter(),
	}

	runner := git.NewRunner()
	base := []session.Option{
		session.WithClock(w.clock),
		session.WithPrompter(w.prompter),
		session.WithSettings(settings),
		session.WithLogger(a.logger()),
		session.WithTempStore(fs.NewTempStore(a.TempDir)),
		session.WithFetcher(diffpane.TempVCSRevisionA, git.NewHeadFetcher(runner)),
		session.WithFetcher(diffpane.TempVCSRevisionB, git.NewIndexFetcher(runner)),
	}
	comparer := diffmatchpatch.New(w.host, diffmatchpatch.WithProgress(w.host.SetStatus))
	w.session = session.New(w.host, comparer, append(base, opts...)...)
	w.host.SetListener(w.session)
	return w
}

// open reads path into view.
func (a *App) open(w *workspace, view diffpane.ViewID, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	data, err := a.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	w.host.AddBuffer(view, abs, string(data))
	return nil
}

type placement struct {
	view diffpane.ViewID
	path string
}

// pairOrder returns the files in opening order. The file opened last is
// current, so the other one becomes the first file of the compare.
func pairOrder(settings diffpane.Settings, oldPath, newPath string) []placement {
	oldFile := placement{settings.OldFileView, oldPath}
	newFile := placement{settings.OldFileView.Other(), newPath}
	if settings.OldFileIsFirst {
		return []placement{oldFile, newFile}
	}
	return []placement{newFile, oldFile}
}

// show runs a compare command and displays the result. Runs that leave
// nothing marked print the session notices instead.
func (a *App) show(ctx context.Context, w *workspace, compare func(context.Context) (diffpane.CompareResult, error)) error {
	defer w.session.Close()

	result, err := compare(ctx)
	if err != nil {
		if notices := w.prompter.Notices(); len(notices) > 0 {
			return fmt.Errorf("%s: %w", strings.Join(notices, " "), err)
		}
		return err
	}
	if result != diffpane.CompareMismatch {
		for _, n := range w.prompter.Notices() {
			fmt.Fprintln(a.Stdout, n)
		}
		return nil
	}

	opts := []bubbletea.ModelOption{
		bubbletea.WithContext(ctx),
		bubbletea.WithTheme(lipgloss.DefaultTheme()),
		bubbletea.WithTokenizer(chroma.NewTokenizer()),
	}
	if cb, err := clipboard.Detect(); err == nil {
		opts = append(opts, bubbletea.WithClipboard(cb))
	}
	return a.UI(ctx, bubbletea.NewModel(w.host, w.session, w.clock, w.prompter, opts...))
}

func (a *App) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare OLD NEW",
		Short: "Compare two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings(cmd)
			if err != nil {
				return err
			}
			w := a.newWorkspace(settings)
			for _, f := range pairOrder(settings, args[0], args[1]) {
				if err := a.open(w, f.view, f.path); err != nil {
					return err
				}
			}
			return a.show(cmd.Context(), w, w.session.Compare)
		},
	}
}

func (a *App) gitCmd() *cobra.Command {
	var index bool
	cmd := &cobra.Command{
		Use:   "git FILE",
		Short: "Compare a file with its committed or staged revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings(cmd)
			if err != nil {
				return err
			}
			kind := diffpane.TempVCSRevisionA
			if index {
				kind = diffpane.TempVCSRevisionB
			}
			w := a.newWorkspace(settings)
			if err := a.open(w, diffpane.MainView, args[0]); err != nil {
				return err
			}
			return a.show(cmd.Context(), w, func(ctx context.Context) (diffpane.CompareResult, error) {
				return w.session.VCSDiff(ctx, kind)
			})
		},
	}
	cmd.Flags().BoolVar(&index, "index", false, "compare against the staged revision instead of HEAD")
	return cmd
}

func (a *App) patchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patch FILE PATCH",
		Short: "Compare a file with its content before PATCH was applied",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings(cmd)
			if err != nil {
				return err
			}
			data, err := a.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading patch: %w", err)
			}
			fetcher, err := gitdiff.Parse(bytes.NewReader(data), gitdiff.WithReadFile(a.ReadFile))
			if err != nil {
				return err
			}

			w := a.newWorkspace(settings, session.WithFetcher(diffpane.TempVCSRevisionB, fetcher))
			if err := a.open(w, diffpane.MainView, args[0]); err != nil {
				return err
			}
			return a.show(cmd.Context(), w, func(ctx context.Context) (diffpane.CompareResult, error) {
				return w.session.VCSDiff(ctx, diffpane.TempVCSRevisionB)
			})
		},
	}
}
