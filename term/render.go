package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/plus3/neonpulse/audio"
	"github.com/plus3/neonpulse/engine"
)

const cellText = "  "

var (
	accentColor = lipgloss.Color("51")
	textColor   = lipgloss.Color("250")
	dimColor    = lipgloss.Color("243")
	alertColor  = lipgloss.Color("197")

	borderStyle = lipgloss.NewStyle().Foreground(accentColor)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(dimColor)
	valueStyle  = lipgloss.NewStyle().Foreground(textColor).Bold(true)
	alertStyle  = lipgloss.NewStyle().Foreground(alertColor).Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)
)

var spectrumGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// kindColor is the kind's block color as a lipgloss hex color.
func kindColor(k engine.Kind) lipgloss.Color {
	c := k.Color()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func renderBoard(s *engine.Snapshot) string {
	var cells [engine.Rows][engine.Cols]string
	for r, row := range s.Grid {
		for c, k := range row {
			if k != engine.None {
				cells[r][c] = lipgloss.NewStyle().Background(kindColor(k)).Render(cellText)
			}
		}
	}
	if ghost := s.Ghost(); ghost != nil {
		style := lipgloss.NewStyle().Foreground(kindColor(ghost.Kind)).Faint(true)
		for p := range ghost.Blocks() {
			if p.Y >= 0 && cells[p.Y][p.X] == "" {
				cells[p.Y][p.X] = style.Render("··")
			}
		}
	}
	if s.Active != nil {
		style := lipgloss.NewStyle().Background(kindColor(s.Active.Kind))
		for p := range s.Active.Blocks() {
			if p.Y >= 0 {
				cells[p.Y][p.X] = style.Render(cellText)
			}
		}
	}

	var b strings.Builder
	edge := borderStyle.Render("+" + strings.Repeat("-", engine.Cols*len(cellText)) + "+")
	b.WriteString(edge + "\n")
	for _, row := range cells {
		b.WriteString(borderStyle.Render("|"))
		for _, cell := range row {
			if cell == "" {
				cell = cellText
			}
			b.WriteString(cell)
		}
		b.WriteString(borderStyle.Render("|") + "\n")
	}
	b.WriteString(edge)
	return b.String()
}

// renderMini draws the spawn orientation of k in a 4x2 box.
func renderMini(k engine.Kind, faint bool) string {
	lines := []string{strings.Repeat(" ", 8), strings.Repeat(" ", 8)}
	shape := engine.BaseShape(k)
	if shape == nil {
		return strings.Join(lines, "\n")
	}
	style := lipgloss.NewStyle().Background(kindColor(k)).Faint(faint)
	rows := make([][]string, 2)
	for i := range rows {
		rows[i] = make([]string, 4)
	}
	top := shape.Size()
	for r := range shape.Cells() {
		top = min(top, r)
	}
	for r, c := range shape.Cells() {
		if r-top < 2 && c < 4 {
			rows[r-top][c] = style.Render(cellText)
		}
	}
	for i, row := range rows {
		var b strings.Builder
		for _, cell := range row {
			if cell == "" {
				cell = cellText
			}
			b.WriteString(cell)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func renderSpectrum(bins []uint8) string {
	var b strings.Builder
	top := len(spectrumGlyphs) - 1
	for _, v := range bins {
		b.WriteRune(spectrumGlyphs[int(v)*top/255])
	}
	return borderStyle.Render(b.String())
}

func stat(label string, value int) string {
	return labelStyle.Render(label) + "\n" + valueStyle.Render(humanize.Comma(int64(value)))
}

func renderInfo(s *engine.Snapshot, spectrum []uint8) string {
	hold := panelStyle.Render(labelStyle.Render("HOLD") + "\n" + renderMini(s.Held, !s.CanHold))
	next := panelStyle.Render(labelStyle.Render("PRÓXIMO") + "\n" + renderMini(s.Next, false))
	stats := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		stat("Pontos", s.Score),
		stat("Linhas", s.Lines),
		stat("Level", s.Level),
	))
	level := audio.Intensity(spectrum, len(spectrum))
	pulse := labelStyle.Render(fmt.Sprintf("pulse %3.0f%%", level*100))
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("NEON PULSE"),
		"",
		next,
		hold,
		stats,
		renderSpectrum(spectrum),
		pulse,
	)
}

func renderStatus(s *engine.Snapshot) string {
	switch s.Phase {
	case engine.Paused:
		return alertStyle.Render("PAUSADO") + labelStyle.Render("  P para retomar")
	case engine.GameOver:
		return alertStyle.Render("FIM DE JOGO") + labelStyle.Render(fmt.Sprintf("  Score %s  Lines %s  R para recomeçar",
			humanize.Comma(int64(s.Score)), humanize.Comma(int64(s.Lines))))
	}
	return labelStyle.Render("←/→ move  ↑ rotate  ↓ soft drop  space hard drop  C hold  P pause  Q quit")
}

func renderStart() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("N E O N   P U L S E"),
		labelStyle.Render("Multi-Platform Arcade"),
		"",
		panelStyle.Render(valueStyle.Render("START SESSION")),
		labelStyle.Render("press any key"),
	)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) View() string {
	session := m.session.Get()
	if !session.Started {
		return center(m.width, m.height, renderStart())
	}
	s := &session.Snapshot
	body := lipgloss.JoinHorizontal(lipgloss.Top, renderBoard(s), "  ", renderInfo(s, m.spectrum))
	return center(m.width, m.height, lipgloss.JoinVertical(lipgloss.Left, body, "", renderStatus(s)))
}
