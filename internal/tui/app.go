// Package tui provides the interactive Bubble Tea dashboard for fcidash.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/config"
	"github.com/fileandclaim/fcidash/internal/logging"
	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/report"
	"github.com/fileandclaim/fcidash/internal/tui/components"
	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when a load of both spreadsheets finishes.
type DataLoadedMsg struct {
	Result *pipeline.LoadResult
	Err    error
}

// Options configures a new App.
type Options struct {
	Sources   pipeline.Sources
	Load      pipeline.LoadFunc // pipeline.Load when nil
	Config    config.Config     // seeds the first-run form
	NeedSetup bool
	Logger    *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	src       pipeline.Sources
	load      pipeline.LoadFunc
	res       *pipeline.LoadResult
	loadErr   error
	loaded    bool
	reloading bool
	log       *slog.Logger

	// Derived from res on every load
	stages        []model.StageCount
	engineers     []model.EngineerCount
	statuses      []model.StatusSummary
	unknownStages int
	unmapped      int

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	stage  drillState
	eng    drillState
	status drillState

	// First-run setup (huh form)
	cfg       config.Config
	setupForm *huh.Form
	setupVals *SetupValues
	setupErr  error
	needSetup bool

	spinner spinner.Model
}

// drillState is the selection of one tab: which item is selected, which
// column is projected, and how far the drill-down list is scrolled.
type drillState struct {
	cursor int
	field  int
	scroll int
}

const (
	tabStages = iota
	tabEngineers
	tabStatus
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
	loadTimeout      = 2 * time.Minute
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	load := opts.Load
	if load == nil {
		load = pipeline.Load
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return App{
		src:       opts.Sources,
		load:      load,
		cfg:       opts.Config,
		needSetup: opts.NeedSetup,
		log:       logger.With(logging.FieldComponent, logging.ComponentTUI),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.load, a.src),
		a.spinner.Tick,
	)
}

// loadDataCmd reads both spreadsheets off the update loop.
func loadDataCmd(load pipeline.LoadFunc, src pipeline.Sources) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		res, err := load(ctx, src)
		return DataLoadedMsg{Result: res, Err: err}
	}
}

func (a *App) recompute() {
	if a.res == nil {
		a.stages, a.engineers, a.statuses = nil, nil, nil
		a.unknownStages, a.unmapped = 0, 0
		return
	}

	a.stages = pipeline.CountStages(a.res.Deals)
	a.engineers = pipeline.CountByEngineer(a.res.Deals)
	a.statuses = pipeline.Summarize(a.res.Tracking)
	a.unknownStages = pipeline.UnrecognisedStages(a.res.Deals)
	a.unmapped = pipeline.UnmappedStatuses(a.res.Tracking)

	// Clamp cursors to the new lists
	a.stage.cursor = clampIndex(a.stage.cursor, len(pipeline.Stages))
	a.eng.cursor = clampIndex(a.eng.cursor, len(a.engineers))
	a.status.cursor = clampIndex(a.status.cursor, len(a.statuses))
	a.stage.scroll, a.eng.scroll, a.status.scroll = 0, 0, 0
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			// Tab bar is the first line
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Setup wizard intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if !a.loaded {
			if key == "q" {
				return a, tea.Quit
			}
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		return a.handleKey(key)

	case DataLoadedMsg:
		a.loaded = true
		a.reloading = false
		a.res, a.loadErr = msg.Result, msg.Err
		if msg.Err != nil {
			a.res = nil
			a.log.Error("load failed", logging.FieldError, msg.Err)
		} else if msg.Result != nil {
			a.log.Debug("loaded deals",
				logging.FieldFile, a.src.DealsPath,
				logging.FieldRows, len(msg.Result.Deals),
				logging.FieldDuration, msg.Result.LoadTime.Milliseconds())
			a.log.Debug("loaded file tracking",
				logging.FieldFile, a.src.TrackingPath,
				logging.FieldRows, len(msg.Result.Tracking))
		}
		a.recompute()

		// First run: show the setup form once the first load settles.
		if a.needSetup {
			a.needSetup = false
			a.setupVals = SetupValuesFrom(a.cfg)
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.reloading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.reloading {
			a.reloading = true
			return a, tea.Batch(loadDataCmd(a.load, a.src), a.spinner.Tick)
		}
	case "tab", "right", "l":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "shift+tab", "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.moveCursor(-a.itemCount())
	case "G", "end":
		a.moveCursor(a.itemCount())
	case "f":
		a.cycleField()
	case "J", "pgdown":
		a.scrollDrill(5)
	case "K", "pgup":
		a.scrollDrill(-5)
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.setupErr = a.saveSetupConfig()
		if a.setupErr != nil {
			a.log.Warn("saving config", logging.FieldError, a.setupErr)
		}
		a.reloading = true
		return a, tea.Batch(loadDataCmd(a.load, a.src), a.spinner.Tick)
	case huh.StateAborted:
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// selected returns the drill state of the active tab.
func (a *App) selected() *drillState {
	switch a.activeTab {
	case tabEngineers:
		return &a.eng
	case tabStatus:
		return &a.status
	default:
		return &a.stage
	}
}

func (a App) itemCount() int {
	switch a.activeTab {
	case tabEngineers:
		return len(a.engineers)
	case tabStatus:
		return len(a.statuses)
	default:
		return len(pipeline.Stages)
	}
}

func (a *App) moveCursor(delta int) {
	s := a.selected()
	next := clampIndex(s.cursor+delta, a.itemCount())
	if next != s.cursor {
		s.cursor = next
		s.scroll = 0
	}
}

func (a *App) cycleField() {
	switch a.activeTab {
	case tabStages:
		a.stage.field = (a.stage.field + 1) % len(pipeline.StageFields)
		a.stage.scroll = 0
	case tabEngineers:
		a.eng.field = (a.eng.field + 1) % len(pipeline.EngineerFields)
		a.eng.scroll = 0
	}
}

func (a *App) scrollDrill(delta int) {
	s := a.selected()
	s.scroll = clampIndex(s.scroll+delta, a.drillLen())
}

// drillLen is the number of rows in the active tab's drill-down.
func (a App) drillLen() int {
	if a.res == nil {
		return 0
	}
	switch a.activeTab {
	case tabEngineers:
		if len(a.engineers) == 0 {
			return 0
		}
		return len(pipeline.FilterByEngineer(a.res.Deals, a.engineers[a.eng.cursor].Engineer))
	case tabStatus:
		if len(a.statuses) == 0 {
			return 0
		}
		return len(pipeline.FilterByDisplayStatus(a.res.Tracking, a.statuses[a.status.cursor].Display))
	default:
		return pipeline.CountByStage(a.res.Deals, pipeline.Stages[a.stage.cursor])
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fcidash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	fileStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ fcidash"))
	b.WriteString(subtitleStyle.Render(" · " + report.Title))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Reading spreadsheets"))
	b.WriteString("\n\n")
	b.WriteString(fileStyle.Render("  " + filepath.Base(a.src.DealsPath)))
	b.WriteString("\n")
	b.WriteString(fileStyle.Render("  " + filepath.Base(a.src.TrackingPath)))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"s e t", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Select stage, engineer or status"},
			{"g G", "First / Last"},
			{"J K", "Scroll drill-down"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"f", "Switch drill-down field"},
			{"r", "Reload spreadsheets"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + title row
	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Background).
		Bold(true).
		Width(w)
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		titleStyle.Render(" "+report.Title)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusInfo(), a.statusWarning(), a.reloading)

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content
	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderLoadError(cw)
	case a.activeTab == tabEngineers:
		content = a.renderEngineersTab(cw, contentH)
	case a.activeTab == tabStatus:
		content = a.renderStatusTab(cw, contentH)
	default:
		content = a.renderStagesTab(cw, contentH)
	}

	// 5. Truncate + pad to exactly contentH lines, then fill the background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusInfo() string {
	if a.res == nil {
		return ""
	}
	return fmt.Sprintf("%s deals · %s files · %s (%s)",
		cli.FormatNumber(int64(len(a.res.Deals))),
		cli.FormatNumber(int64(len(a.res.Tracking))),
		a.res.LoadedAt.Format("15:04:05"),
		cli.FormatElapsed(a.res.LoadTime))
}

func (a App) statusWarning() string {
	var parts []string
	if a.setupErr != nil {
		parts = append(parts, "config not saved")
	}
	if a.unknownStages > 0 {
		parts = append(parts, fmt.Sprintf("%d deal(s) in unknown stages", a.unknownStages))
	}
	if a.unmapped > 0 {
		parts = append(parts, fmt.Sprintf("%d file(s) with unmapped status", a.unmapped))
	}
	return strings.Join(parts, " · ")
}

func (a App) renderLoadError(cw int) string {
	t := theme.Active
	w := min(cw, 100)
	inner := components.CardInnerWidth(w)

	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Width(inner)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := errStyle.Render(a.loadErr.Error()) + "\n\n" +
		hintStyle.Render("Press r to retry, q to quit.")
	return components.ContentCard("Could not load data", body, w)
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same width rules as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
