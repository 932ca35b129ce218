package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/karto-app/karto/pkg/alerts"
	"github.com/karto-app/karto/pkg/catalog"
	"github.com/karto-app/karto/pkg/graphics"
	"github.com/karto-app/karto/pkg/sheet"
)

func lipColor(c graphics.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B()))
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	s = ansi.Truncate(s, w, "")
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.cols <= 0 || m.rows <= 0 {
		return ""
	}
	frame := m.sheet.Frame()
	rows := m.catalogRows()

	dim := 0.0
	if frame.Present {
		dim = frame.Backdrop.Opacity
	}
	bg := graphics.LerpColor(m.palette.Background, graphics.ColorBlack, dim*0.6)
	fg := graphics.LerpColor(m.palette.Text, graphics.ColorBlack, dim*0.6)
	base := lipgloss.NewStyle().Background(lipColor(bg)).Foreground(lipColor(fg))
	for i := range rows {
		rows[i] = base.Render(fit(rows[i], m.cols))
	}

	if frame.Present {
		m.paintPanel(rows, frame.Panel)
	}
	if m.dialog.IsVisible() {
		m.paintDialog(rows)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) catalogRows() []string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipColor(m.palette.Primary))
	muted := lipgloss.NewStyle().Foreground(lipColor(m.palette.TextSecondary))

	rows := make([]string, 0, m.rows)
	header := title.Render("KARTO")
	if n := m.applied.Active(); n > 0 {
		header += muted.Render(fmt.Sprintf("  %d filtr aktivdir", n))
	}
	rows = append(rows, header, "")

	for _, b := range catalog.Brands() {
		if !m.matchesApplied(b) {
			continue
		}
		cat, _ := catalog.CategoryByID(b.Category)
		rows = append(rows, fmt.Sprintf("  %-14s %s", b.Name, muted.Render(cat.Name)))
	}

	helpRow := m.help.View(m.keys)
	helpLines := strings.Split(helpRow, "\n")
	for len(rows) < m.rows-len(helpLines) {
		rows = append(rows, "")
	}
	rows = append(rows[:max(m.rows-len(helpLines), 0)], helpLines...)
	return rows[:m.rows]
}

func (m *Model) matchesApplied(b catalog.Brand) bool {
	a := m.applied
	if len(a.Brands) > 0 && !slices.Contains(a.Brands, b.ID) {
		return false
	}
	return len(a.Categories) == 0 ||
		slices.Contains(a.Categories, catalog.CategoryAll) ||
		slices.Contains(a.Categories, b.Category)
}

// paintPanel draws the sheet from the cell row containing its top edge
// downward.
func (m *Model) paintPanel(rows []string, p sheet.PanelFrame) {
	content := p.Content
	start := int(math.Floor(p.Rect.Top / CellHeight))
	handleRow := int(math.Floor((p.Handle.Top + p.Handle.Bottom) / 2 / CellHeight))
	if start >= len(rows) {
		return
	}
	st := m.sheet.Style()
	padX := int(math.Round(content.Left / CellWidth))
	innerW := max(m.cols-2*padX, 0)

	// The bottom padding stays blank.
	firstContent := int(math.Floor(content.Top / CellHeight))
	contentRows := max(int(math.Floor(content.Bottom/CellHeight))-firstContent, 0)
	body := strings.Split(m.sheet.Content().View(innerW, contentRows), "\n")

	span := len(rows) - max(start, 0)
	for r := max(start, 0); r < len(rows); r++ {
		t := float64(r-start) / float64(max(span, 1))
		bg := graphics.LerpColor(st.GradientStart, st.GradientEnd, t)
		style := lipgloss.NewStyle().Background(lipColor(bg)).Foreground(lipColor(st.ContentTextColor))

		line := ""
		switch {
		case r == handleRow:
			handle := lipgloss.NewStyle().Foreground(lipColor(st.HandleColor)).Render("━━━━━━━")
			line = lipgloss.PlaceHorizontal(m.cols, lipgloss.Center, handle)
		case r >= firstContent && r-firstContent < len(body):
			line = strings.Repeat(" ", padX) + body[r-firstContent]
		}
		rows[r] = style.Render(fit(line, m.cols))
	}
}

func (m *Model) paintDialog(rows []string) {
	a, ok := m.dialog.Current()
	if !ok {
		return
	}
	style := m.dialog.Style()
	width := min(m.cols-4, 44)
	if width <= 0 {
		return
	}

	var buttons []string
	for i, b := range a.EffectiveButtons() {
		bs := lipgloss.NewStyle().Padding(0, 2).Foreground(lipColor(graphics.ColorWhite)).Background(lipColor(style.GradientStart))
		if b.Style == alerts.ButtonCancel {
			bs = bs.Foreground(lipColor(m.palette.Text)).Background(lipColor(m.palette.InputBackground))
		}
		label := b.Text
		if i == 0 {
			label = "› " + label
		}
		buttons = append(buttons, bs.Render(label))
	}

	card := lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipColor(style.Color)).
		Background(lipColor(graphics.ColorWhite)).
		Foreground(lipColor(m.palette.Text)).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Render(a.Title),
			a.Message,
			"",
			lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
		))

	lines := strings.Split(card, "\n")
	top := max((len(rows)-len(lines))/2, 0)
	barrier := lipColor(m.dialog.Theme().BarrierColor)
	for i, l := range lines {
		if top+i >= len(rows) {
			break
		}
		rows[top+i] = lipgloss.PlaceHorizontal(m.cols, lipgloss.Center, l,
			lipgloss.WithWhitespaceBackground(barrier))
	}
}
