// Package theme holds the dashboard palettes. Flexoki suits long meetings
// on a projector; terminal falls back to the 16 ANSI colors.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps color roles to concrete colors.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceHover  lipgloss.Color // selected row, active tab
	SurfaceBright lipgloss.Color
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused card

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Chart and status colors
	Green       lipgloss.Color
	GreenBright lipgloss.Color
	Orange      lipgloss.Color
	Red         lipgloss.Color
	Blue        lipgloss.Color
	Yellow      lipgloss.Color
	Magenta     lipgloss.Color
	Cyan        lipgloss.Color
}

var (
	flexokiDark = Theme{
		Name:          "flexoki-dark",
		Background:    "#100F0F",
		Surface:       "#1C1B1A",
		SurfaceHover:  "#282726",
		SurfaceBright: "#343331",
		Border:        "#403E3C",
		BorderAccent:  "#3AA99F",
		TextDim:       "#575653",
		TextMuted:     "#878580",
		TextPrimary:   "#FFFCF0",
		Accent:        "#3AA99F",
		AccentBright:  "#5BC8BE",
		Green:         "#879A39",
		GreenBright:   "#A3B859",
		Orange:        "#DA702C",
		Red:           "#D14D41",
		Blue:          "#4385BE",
		Yellow:        "#D0A215",
		Magenta:       "#CE5D97",
		Cyan:          "#24837B",
	}

	flexokiLight = Theme{
		Name:          "flexoki-light",
		Background:    "#FFFCF0",
		Surface:       "#F2F0E5",
		SurfaceHover:  "#E6E4D9",
		SurfaceBright: "#DAD8CE",
		Border:        "#CECDC3",
		BorderAccent:  "#24837B",
		TextDim:       "#B7B5AC",
		TextMuted:     "#6F6E69",
		TextPrimary:   "#100F0F",
		Accent:        "#24837B",
		AccentBright:  "#3AA99F",
		Green:         "#66800B",
		GreenBright:   "#879A39",
		Orange:        "#BC5215",
		Red:           "#AF3029",
		Blue:          "#205EA6",
		Yellow:        "#AD8301",
		Magenta:       "#A02F6F",
		Cyan:          "#24837B",
	}

	terminal = Theme{
		Name:          "terminal",
		Background:    "0",
		Surface:       "0",
		SurfaceHover:  "8",
		SurfaceBright: "8",
		Border:        "8",
		BorderAccent:  "6",
		TextDim:       "8",
		TextMuted:     "7",
		TextPrimary:   "15",
		Accent:        "6",
		AccentBright:  "14",
		Green:         "2",
		GreenBright:   "10",
		Orange:        "3",
		Red:           "1",
		Blue:          "4",
		Yellow:        "11",
		Magenta:       "5",
		Cyan:          "6",
	}
)

// themes in the order the setup form lists them. The first is the default.
var themes = []Theme{flexokiDark, flexokiLight, terminal}

// Active is the palette every view renders with.
var Active = themes[0]

// ByName looks a theme up by name. Unknown names get the default.
func ByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// SetActive switches the palette by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the selectable theme names.
func Names() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// Series returns distinct colors for consecutive chart segments.
func (t Theme) Series() []lipgloss.Color {
	return []lipgloss.Color{t.Blue, t.Green, t.Orange, t.Magenta, t.Yellow, t.Cyan, t.Red}
}
