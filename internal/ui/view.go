package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"dirplay/internal/engine"
	"dirplay/internal/library"
	"dirplay/internal/pathutil"
)

const (
	playingPaneHeight = 6
	statusHeight      = 1
	chartHeight       = 2
	minPaneWidth      = 20
)

// listRows is how many listing rows fit in a terminal of the given height:
// the browser pane loses two border rows and its title line.
func listRows(height int) int {
	rows := height - playingPaneHeight - statusHeight - 3
	if rows < 1 {
		return 1
	}
	return rows
}

func (m Model) render(s engine.Snapshot) string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	topHeight := m.height - playingPaneHeight - statusHeight
	leftWidth := m.width * 3 / 5
	if leftWidth < minPaneWidth {
		leftWidth = minPaneWidth
	}
	rightWidth := m.width - leftWidth
	if rightWidth < minPaneWidth {
		rightWidth = minPaneWidth
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderBrowser(s, leftWidth, topHeight),
		m.renderPlaylist(s, rightWidth, topHeight),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		m.renderPlaying(s, m.width, playingPaneHeight),
		m.renderStatus(s, m.width),
	)
}

func (m Model) renderBrowser(s engine.Snapshot, width, height int) string {
	inner := width - 2

	title := m.styles.Title.Render(fit(pathutil.DisplayName(s.Dir), inner-12))
	if s.Page.Total > 0 {
		title += " " + m.styles.TitlePage.Render(fmt.Sprintf("[%d/%d]", s.Page.Current, s.Page.Total))
	}
	if s.Filter != "" {
		title += " " + m.styles.SearchIcon.Render("|"+s.Filter)
	}

	lines := []string{title}
	for i := s.Page.From; i < s.Page.To; i++ {
		e := s.Listing[i]
		var icon, name string
		if e.IsDir() {
			icon = m.styles.FolderIcon.Render("▸ ")
			name = m.styles.Folder.Render(fit(e.Name(), inner-4))
		} else {
			icon = m.styles.Music.Render("♪ ")
			name = m.styles.Music.Render(fit(e.Name(), inner-4))
		}
		if i == s.Selected {
			name = m.styles.Selected.Render(fit(e.Name(), inner-4))
			icon = m.styles.Selected.Render("> ")
		}
		lines = append(lines, icon+name)
	}
	if len(s.Listing) == 0 {
		lines = append(lines, m.styles.Muted.Render("(empty)"))
	}

	border := m.styles.Border
	if s.Mode == engine.Search {
		border = m.styles.SearchBorder
	}
	return border.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderPlaylist(s engine.Snapshot, width, height int) string {
	inner := width - 2
	rows := height - 3

	title := m.styles.Title.Render("Playlist") + " " + m.styles.TitlePage.Render(
		fmt.Sprintf("%d songs %s", s.Count, formatRemaining(s.Remaining)))
	lines := []string{title}

	if s.Count == 0 {
		lines = append(lines, m.renderHome(inner)...)
	} else {
		if s.Playing != nil {
			lines = append(lines, m.styles.Selected.Render(playlistRow("▶", *s.Playing, inner)))
		}
		for i, t := range s.Pending {
			if len(lines) > rows {
				lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("… %d more", len(s.Pending)-i)))
				break
			}
			lines = append(lines, m.styles.Music.Render(playlistRow(fmt.Sprintf("%d.", i+1), t, inner)))
		}
	}
	return m.styles.Border.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func playlistRow(marker string, t engine.Track, width int) string {
	length := "--:--"
	if t.Total > 0 {
		length = library.FormatDuration(t.Total)
	}
	nameWidth := width - runewidth.StringWidth(marker) - runewidth.StringWidth(length) - 2
	return marker + " " + runewidth.FillRight(fit(t.Name, nameWidth), nameWidth) + " " + length
}

var usage = [][2]string{
	{"j/k J/K", "move 1 / move more"},
	{"g/G n/N", "top, bottom, pages"},
	{"l h", "open folder, parent"},
	{"enter", "queue file / open folder"},
	{"| /", "search this folder"},
	{"space", "pause or resume"},
	{"+ -", "volume"},
	{":all", "queue every file here"},
	{":rm 1 3", "remove from queue"},
	{":cls :sh :n", "clear, shuffle, next"},
	{":od :sc", "in order, repeat one"},
	{"q", "quit"},
}

func (m Model) renderHome(width int) []string {
	lines := []string{""}
	for _, row := range usage {
		k := m.styles.SearchIcon.Render(runewidth.FillRight(row[0], 12))
		lines = append(lines, k+m.styles.Muted.Render(fit(row[1], width-12)))
	}
	return lines
}

func (m Model) renderPlaying(s engine.Snapshot, width, height int) string {
	inner := width - 2

	icon := "■"
	name := "nothing playing"
	var clock string
	percent := 0
	if t := s.Playing; t != nil {
		name = trackLabel(*t)
		clock = fmt.Sprintf("[ %s : %s ]", formatClock(t.Elapsed()), formatClock(t.Total))
		percent = t.Percent()
		icon = m.spinner.View()
		if s.Paused {
			icon = "⏸"
		}
	}

	style := "⇉ order"
	if s.Style == engine.SingleRepeat {
		style = "↻ single"
	}
	status := fmt.Sprintf("%s  %s  vol %d%%", clock, style, int(s.Volume*100+0.5))
	nameWidth := inner - runewidth.StringWidth(status) - 4
	info := icon + " " + m.styles.Title.Render(runewidth.FillRight(fit(name, nameWidth), nameWidth)) + " " + m.styles.TitlePage.Render(status)

	lines := []string{
		info,
		m.renderGauge(percent, inner),
		m.renderSpectrum(s.Spectrum, inner, chartHeight),
	}
	return m.styles.Border.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func trackLabel(t engine.Track) string {
	switch {
	case t.Title != "" && t.Artist != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return pathutil.StemName(t.Path)
	}
}

func (m Model) renderGauge(percent, width int) string {
	label := fmt.Sprintf(" %3d%%", percent)
	barWidth := width - len(label)
	if barWidth < 1 {
		return label
	}
	filled := barWidth * percent / 100
	return m.styles.Gauge.Render(strings.Repeat("█", filled)) +
		m.styles.Muted.Render(strings.Repeat("░", barWidth-filled)) + label
}

func (m Model) renderSpectrum(bands []float64, width, height int) string {
	if len(bands) == 0 || width < 1 {
		return strings.Repeat("\n", height-1)
	}

	data := make([]barchart.BarData, len(bands))
	for i, v := range bands {
		v *= 3
		if v > 1 {
			v = 1
		}
		data[i] = barchart.BarData{
			Values: []barchart.BarValue{{Name: "", Value: v, Style: m.styles.Gauge}},
		}
	}

	chart := barchart.New(width, height, barchart.WithNoAxis(), barchart.WithMaxValue(1))
	chart.PushAll(data)
	chart.Draw()
	return chart.View()
}

func (m Model) renderStatus(s engine.Snapshot, width int) string {
	switch {
	case s.Mode == engine.Search:
		return m.styles.SearchIcon.Render(fit(s.SearchBuffer, width))
	case s.Mode == engine.Command:
		return m.styles.SearchIcon.Render(fit(":"+s.CommandBuffer, width))
	case s.Error != "":
		return m.styles.Error.Render(fit(s.Error, width))
	}
	m.help.Width = width
	return m.help.View(m.keys)
}

// fit truncates s to width terminal cells.
func fit(s string, width int) string {
	if width < 1 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// formatRemaining renders the playlist total as "1h 02m 03s".
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%dh %02dm %02ds", secs/3600, secs%3600/60, secs%60)
}

// formatClock renders a position as "3m 7s".
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}
