package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/bubbletea"
	"github.com/fwojciec/diffpane/fs"
	"github.com/fwojciec/diffpane/jsonl"
	"github.com/fwojciec/diffpane/yaml"
	"github.com/spf13/cobra"
)

// ErrDifferent is returned by check when at least one pair differs.
var ErrDifferent = errors.New("files differ")

// App encapsulates the application logic for testing.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	ReadFile func(path string) ([]byte, error)
	TempDir  string
	Color    bool

	// UI displays a prepared model. Defaults to bubbletea.Run.
	UI func(ctx context.Context, m bubbletea.Model) error

	Saver  diffpane.ReportSaver
	Loader diffpane.ReportLoader

	configPath   string
	debug        bool
	ignoreSpaces bool
	ignoreCase   bool
	detectMoves  bool
}

// NewApp returns an App wired to the process environment.
func NewApp() *App {
	return &App{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		ReadFile: os.ReadFile,
		TempDir:  fs.DefaultTempDir(),
		Color:    !color.NoColor,
		UI:       bubbletea.Run,
		Saver:    jsonl.NewSaver(),
		Loader:   jsonl.NewLoader(),
	}
}

// Command builds the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "diffpane",
		Short:         "Compare files side by side",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", fs.DefaultConfigPath(), "settings file")
	flags.BoolVar(&a.debug, "debug", false, "log session activity to stderr")
	flags.BoolVarP(&a.ignoreSpaces, "ignore-spaces", "w", false, "ignore whitespace differences")
	flags.BoolVarP(&a.ignoreCase, "ignore-case", "i", false, "ignore case differences")
	flags.BoolVarP(&a.detectMoves, "detect-moves", "m", false, "mark moved blocks")

	root.AddCommand(
		a.compareCmd(),
		a.gitCmd(),
		a.patchCmd(),
		a.checkCmd(),
		a.reportCmd(),
		a.configCmd(),
	)
	return root
}

// Run executes the command line args.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.Command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// settings loads the settings file and applies the option flags set on cmd.
func (a *App) settings(cmd *cobra.Command) (diffpane.Settings, error) {
	settings, err := yaml.NewSettingsStore(a.configPath).Load()
	if err != nil {
		return settings, err
	}
	flags := cmd.Flags()
	if flags.Changed("ignore-spaces") {
		settings.IgnoreSpaces = a.ignoreSpaces
	}
	if flags.Changed("ignore-case") {
		settings.IgnoreCase = a.ignoreCase
	}
	if flags.Changed("detect-moves") {
		settings.DetectMoves = a.detectMoves
	}
	return settings, nil
}

func (a *App) logger() *slog.Logger {
	if !a.debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(a.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := NewApp().Run(ctx, os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, ErrDifferent):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
