package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/clock"
	"github.com/fwojciec/diffpane/diffmatchpatch"
	"github.com/fwojciec/diffpane/memhost"
	"github.com/fwojciec/diffpane/session"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// headlessPrompter collects notices and accepts every question.
type headlessPrompter struct {
	notices []string
}

func (p *headlessPrompter) Notify(msg string) {
	p.notices = append(p.notices, strings.Join(strings.Fields(msg), " "))
}

func (p *headlessPrompter) Confirm(string) bool {
	return true
}

func (a *App) checkCmd() *cobra.Command {
	var reportPath string
	cmd := &cobra.Command{
		Use:   "check OLD NEW [OLD NEW ...]",
		Short: "Compare file pairs without a terminal UI",
		Long:  "Compare file pairs without a terminal UI. Exits with status 1 when any pair differs.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.New("expected pairs of OLD NEW files")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings(cmd)
			if err != nil {
				return err
			}
			settings.PromptToCloseOnMatch = false

			reports, err := a.check(cmd.Context(), settings, args)
			if err != nil {
				return err
			}

			for _, r := range reports {
				a.printReport(r)
			}
			if reportPath != "" {
				for _, r := range reports {
					if err := a.Saver.Save(reportPath, r); err != nil {
						return fmt.Errorf("saving report: %w", err)
					}
				}
			}
			return verdict(reports)
		},
	}
	cmd.Flags().StringVar(&reportPath, "report", "", "append JSON line reports to this file")
	return cmd
}

// check compares each OLD NEW pair of args concurrently.
func (a *App) check(ctx context.Context, settings diffpane.Settings, args []string) ([]diffpane.Report, error) {
	logger := a.logger()
	reports := make([]diffpane.Report, len(args)/2)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range reports {
		oldPath, newPath := args[2*i], args[2*i+1]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = a.checkPair(gctx, logger.With("old", oldPath, "new", newPath), settings, oldPath, newPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// checkPair runs one compare session to completion.
func (a *App) checkPair(ctx context.Context, logger *slog.Logger, settings diffpane.Settings, oldPath, newPath string) (r diffpane.Report) {
	start := time.Now()
	r = diffpane.Report{
		Old:     oldPath,
		New:     newPath,
		Result:  diffpane.CompareError.String(),
		Options: settings.Options,
		Time:    start,
	}
	defer func() { r.Elapsed = time.Since(start) }()

	host := memhost.New(memhost.WithReadFile(a.ReadFile))
	loop := clock.NewLoop()
	prompter := &headlessPrompter{}
	sess := session.New(host, diffmatchpatch.New(host),
		session.WithClock(loop),
		session.WithPrompter(prompter),
		session.WithSettings(settings),
		session.WithLogger(logger),
	)
	host.SetListener(sess)
	defer sess.Close()

	for _, f := range pairOrder(settings, oldPath, newPath) {
		data, err := a.ReadFile(f.path)
		if err != nil {
			r.Error = err.Error()
			return r
		}
		host.AddBuffer(f.view, f.path, string(data))
	}

	result, err := sess.Compare(ctx)
	if err == nil {
		err = loop.Run(ctx)
	}
	if err != nil {
		r.Error = err.Error()
		if len(prompter.notices) > 0 {
			r.Error = strings.Join(prompter.notices, " ")
		}
		return r
	}

	r.Result = result.String()
	r.Counts = diffpane.CountMarkers(host)
	return r
}

// verdict turns a set of reports into the command outcome.
func verdict(reports []diffpane.Report) error {
	var failed, differ int
	for _, r := range reports {
		switch {
		case r.Error != "":
			failed++
		case r.Result == diffpane.CompareMismatch.String():
			differ++
		}
	}
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d comparisons failed", failed, len(reports))
	case differ > 0:
		return ErrDifferent
	}
	return nil
}

func (a *App) printReport(r diffpane.Report) {
	printReport(a.Stdout, a.Color, r)
}

func printReport(w io.Writer, colored bool, r diffpane.Report) {
	label, attr := "match ", color.FgGreen
	switch {
	case r.Error != "":
		label, attr = "error ", color.FgYellow
	case r.Result == diffpane.CompareMismatch.String():
		label, attr = "differ", color.FgRed
	}

	c := color.New(attr, color.Bold)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	line := fmt.Sprintf("%s %s", filepath.Base(r.Old), filepath.Base(r.New))
	switch {
	case r.Error != "":
		line += ": " + r.Error
	case r.Counts.Total() > 0:
		line += fmt.Sprintf(" (%d changed, %d added, %d removed, %d moved)",
			r.Counts.Changed, r.Counts.Added, r.Counts.Removed, r.Counts.Moved)
	}
	fmt.Fprintf(w, "%s %s\n", c.Sprint(label), line)
}

func (a *App) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report FILE",
		Short: "Summarize reports saved by check --report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := a.Loader.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading reports: %w", err)
			}

			var match, differ, failed int
			var elapsed time.Duration
			for _, r := range reports {
				a.printReport(r)
				elapsed += r.Elapsed
				switch {
				case r.Error != "":
					failed++
				case r.Result == diffpane.CompareMismatch.String():
					differ++
				default:
					match++
				}
			}
			fmt.Fprintf(a.Stdout, "%d runs: %d match, %d differ, %d failed in %s\n",
				len(reports), match, differ, failed, elapsed.Round(time.Millisecond))
			return nil
		},
	}
}
