package tui

import (
	"errors"
	"strings"

	"github.com/fileandclaim/fcidash/internal/config"
	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues are the fields edited by the setup form.
type SetupValues struct {
	Deals         string
	DealsSheet    string
	Tracking      string
	TrackingSheet string
	Theme         string
}

// SetupValuesFrom seeds the form from cfg.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Deals:         cfg.Files.Deals,
		DealsSheet:    cfg.Files.DealsSheet,
		Tracking:      cfg.Files.FileTracking,
		TrackingSheet: cfg.Files.FileTrackingSheet,
		Theme:         cfg.Appearance.Theme,
	}
}

// Apply copies the form values into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	cfg.Files.Deals = strings.TrimSpace(v.Deals)
	cfg.Files.DealsSheet = strings.TrimSpace(v.DealsSheet)
	cfg.Files.FileTracking = strings.TrimSpace(v.Tracking)
	cfg.Files.FileTrackingSheet = strings.TrimSpace(v.TrackingSheet)
	cfg.Appearance.Theme = v.Theme
}

// NewSetupForm builds the setup wizard bound to vals. It backs both the
// `setup` command and the dashboard's first-run flow.
func NewSetupForm(vals *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fcidash").
				Description("Point the dashboard at the two weekly spreadsheets.\nPaths may be .xlsx or .csv, relative to the working directory."),
			huh.NewInput().
				Title("Deals workbook").
				Value(&vals.Deals).
				Validate(required("deals workbook")),
			huh.NewInput().
				Title("Deals sheet").
				Description("Leave blank for the first sheet.").
				Value(&vals.DealsSheet),
			huh.NewInput().
				Title("File tracking workbook").
				Value(&vals.Tracking).
				Validate(required("file tracking workbook")),
			huh.NewInput().
				Title("File tracking sheet").
				Description("Leave blank for the first sheet.").
				Value(&vals.TrackingSheet),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

// saveSetupConfig applies the completed form: persists the config, switches
// theme and points the loader at the chosen files.
func (a *App) saveSetupConfig() error {
	a.setupVals.Apply(&a.cfg)
	theme.SetActive(a.cfg.Appearance.Theme)
	a.src.DealsPath = a.cfg.Files.Deals
	a.src.DealsSheet = a.cfg.Files.DealsSheet
	a.src.TrackingPath = a.cfg.Files.FileTracking
	a.src.TrackingSheet = a.cfg.Files.FileTrackingSheet
	return config.Save(a.cfg)
}
