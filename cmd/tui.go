package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fileandclaim/fcidash/internal/config"
	"github.com/fileandclaim/fcidash/internal/logging"
	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/tui"
	"github.com/fileandclaim/fcidash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Log lines on stderr would tear the alt screen; --verbose sends them
	// to a file instead.
	tuiLog := logging.Discard()
	if flagVerbose {
		path := filepath.Join(os.TempDir(), "fcidash-tui.log")
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // fixed temp path
		if err != nil {
			return fmt.Errorf("opening TUI log: %w", err)
		}
		defer func() { _ = f.Close() }()
		tuiLog = logging.New(f, logging.Options{Verbose: true, JSON: flagJSONLogs})
		fmt.Fprintf(os.Stderr, "  Logging to %s\n", path)
	}

	app := tui.NewApp(tui.Options{
		Sources:   sources(),
		Load:      pipeline.Load,
		Config:    cfg,
		NeedSetup: !config.Exists() && flagDeals == "" && flagTracking == "",
		Logger:    tuiLog,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
