package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Colors holds the hex colors of every themed element.
type Colors struct {
	ListTitle      string `yaml:"list_title_color"`
	ListTitlePage  string `yaml:"list_title_page_color"`
	ListBorder     string `yaml:"list_border_color"`
	SearchBorder   string `yaml:"search_border_color"`
	SearchIcon     string `yaml:"search_icon_color"`
	ListMusic      string `yaml:"list_music_color"`
	ListFolder     string `yaml:"list_folder_color"`
	ListFolderIcon string `yaml:"list_folder_icon_color"`
	Highlight      string `yaml:"highlight_color"`
	Gauge          string `yaml:"gauge_color"`
	Muted          string `yaml:"muted_color"`
	Error          string `yaml:"error_color"`
}

var builtinThemes = map[string]Colors{
	"default": {
		ListTitle:      "#ff5fd7",
		ListTitlePage:  "#afafff",
		ListBorder:     "#626262",
		SearchBorder:   "#afafff",
		SearchIcon:     "#ff5fd7",
		ListMusic:      "#d0d0d0",
		ListFolder:     "#afafff",
		ListFolderIcon: "#ffff00",
		Highlight:      "#ff5fd7",
		Gauge:          "#ff5fd7",
		Muted:          "#585858",
		Error:          "#ff0000",
	},
	"dark": {
		ListTitle:      "#00afff",
		ListTitlePage:  "#0087ff",
		ListBorder:     "#444444",
		SearchBorder:   "#0087ff",
		SearchIcon:     "#00afff",
		ListMusic:      "#eeeeee",
		ListFolder:     "#0087ff",
		ListFolderIcon: "#ffd700",
		Highlight:      "#00afff",
		Gauge:          "#0087ff",
		Muted:          "#808080",
		Error:          "#d70000",
	},
	"forest": {
		ListTitle:      "#008700",
		ListTitlePage:  "#00af00",
		ListBorder:     "#008700",
		SearchBorder:   "#00af00",
		SearchIcon:     "#00ff00",
		ListMusic:      "#afd787",
		ListFolder:     "#00af00",
		ListFolderIcon: "#d7af00",
		Highlight:      "#00ff00",
		Gauge:          "#00af00",
		Muted:          "#585858",
		Error:          "#af0000",
	},
	"sunset": {
		ListTitle:      "#ff8700",
		ListTitlePage:  "#ff0000",
		ListBorder:     "#ff8700",
		SearchBorder:   "#ff0000",
		SearchIcon:     "#ff8700",
		ListMusic:      "#ffd7d7",
		ListFolder:     "#ff8700",
		ListFolderIcon: "#ffff00",
		Highlight:      "#ff0000",
		Gauge:          "#ff8700",
		Muted:          "#585858",
		Error:          "#d70000",
	},
}

// ThemeNames lists the built-in themes in alphabetical order.
func ThemeNames() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeConfig selects a built-in theme and optionally overrides some of its
// colors. In YAML it is either a bare theme name or a mapping.
type ThemeConfig struct {
	Name   string `yaml:"name"`
	Colors Colors `yaml:"colors"`
}

// UnmarshalYAML accepts both `theme: forest` and the mapping form.
func (t *ThemeConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Name = strings.TrimSpace(node.Value)
		return nil
	}
	type plain ThemeConfig
	return node.Decode((*plain)(t))
}

// Resolve returns the colors of the selected theme with overrides applied.
func (t ThemeConfig) Resolve() (Colors, error) {
	name := t.Name
	if name == "" {
		name = "default"
	}
	base, ok := builtinThemes[name]
	if !ok {
		return Colors{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}

	o := t.Colors
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&base.ListTitle, o.ListTitle},
		{&base.ListTitlePage, o.ListTitlePage},
		{&base.ListBorder, o.ListBorder},
		{&base.SearchBorder, o.SearchBorder},
		{&base.SearchIcon, o.SearchIcon},
		{&base.ListMusic, o.ListMusic},
		{&base.ListFolder, o.ListFolder},
		{&base.ListFolderIcon, o.ListFolderIcon},
		{&base.Highlight, o.Highlight},
		{&base.Gauge, o.Gauge},
		{&base.Muted, o.Muted},
		{&base.Error, o.Error},
	} {
		if f.src == "" {
			continue
		}
		if !ValidHex(f.src) {
			return Colors{}, fmt.Errorf("invalid color %q: expected #rrggbb", f.src)
		}
		*f.dst = f.src
	}
	return base, nil
}

// ValidHex reports whether s is a #rrggbb color.
func ValidHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title        lipgloss.Style
	TitlePage    lipgloss.Style
	Border       lipgloss.Style
	SearchBorder lipgloss.Style
	SearchIcon   lipgloss.Style
	Music        lipgloss.Style
	Folder       lipgloss.Style
	FolderIcon   lipgloss.Style
	Selected     lipgloss.Style
	Gauge        lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
}

// Styles builds the lipgloss styles for c.
func (c Colors) Styles() Styles {
	color := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }

	return Styles{
		Title:        lipgloss.NewStyle().Foreground(color(c.ListTitle)).Bold(true),
		TitlePage:    lipgloss.NewStyle().Foreground(color(c.ListTitlePage)),
		Border:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(color(c.ListBorder)),
		SearchBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(color(c.SearchBorder)),
		SearchIcon:   lipgloss.NewStyle().Foreground(color(c.SearchIcon)).Bold(true),
		Music:        lipgloss.NewStyle().Foreground(color(c.ListMusic)),
		Folder:       lipgloss.NewStyle().Foreground(color(c.ListFolder)),
		FolderIcon:   lipgloss.NewStyle().Foreground(color(c.ListFolderIcon)),
		Selected:     lipgloss.NewStyle().Foreground(color(c.Highlight)).Bold(true),
		Gauge:        lipgloss.NewStyle().Foreground(color(c.Gauge)),
		Muted:        lipgloss.NewStyle().Foreground(color(c.Muted)),
		Error:        lipgloss.NewStyle().Foreground(color(c.Error)).Bold(true),
	}
}
