package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/karto-app/karto/pkg/catalog"
)

// filterContent renders the filter editor inside the sheet.
type filterContent struct {
	m *Model
}

func (c *filterContent) Title() string { return "Filtrlər" }

func (c *filterContent) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	m := c.m
	f := m.filters

	heading := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Faint(true)
	chip := lipgloss.NewStyle().Padding(0, 1)
	selected := chip.Reverse(true)
	cursor := lipgloss.NewStyle().Underline(true)

	var top []string
	top = append(top, heading.Render(c.Title()))
	top = append(top, heading.Render("Kateqoriyalar"))
	var chips []string
	for i, cat := range catalog.Categories() {
		st := chip
		if slices.Contains(f.Categories, cat.ID) {
			st = selected
		}
		label := cat.Name
		if i == m.categoryCursor {
			label = cursor.Render(label)
		}
		chips = append(chips, st.Render(label))
	}
	top = append(top, wrapChips(chips, width)...)
	top = append(top, heading.Render("Brendlər")+" "+m.inputs[fieldSearch].View())

	var bottom []string
	bottom = append(bottom, heading.Render("Qiymət"))
	var ranges []string
	for i, r := range catalog.PriceRanges() {
		ranges = append(ranges, chip.Render(fmt.Sprintf("%d %s", i+1, r.Label)))
	}
	bottom = append(bottom, wrapChips(ranges, width)...)
	bottom = append(bottom, fmt.Sprintf("Min %s  Max %s", m.inputs[fieldMin].View(), m.inputs[fieldMax].View()))
	stock := "[ ]"
	if f.ShowOnlyAvailable {
		stock = "[x]"
	}
	bottom = append(bottom, stock+" Yalnız mövcud olanlar")
	bottom = append(bottom, selected.Render("Tətbiq et")+" "+chip.Render("Sıfırla"))

	// The brand list takes whatever rows are left, scrolled to the cursor.
	var list []string
	matches := f.MatchingBrands()
	rows := max(height-len(top)-len(bottom), 1)
	if len(matches) == 0 {
		list = append(list, muted.Render("Brend tapılmadı"))
	}
	first := 0
	if m.brandCursor >= rows {
		first = m.brandCursor - rows + 1
	}
	for i := first; i < len(matches) && i < first+rows; i++ {
		b := matches[i]
		mark := "[ ]"
		if slices.Contains(f.Brands, b.ID) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, b.Name)
		if i == m.brandCursor {
			line = cursor.Render(line)
		}
		list = append(list, line)
	}

	lines := append(append(top, list...), bottom...)
	// Rows past the panel bottom are clipped.
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}

func wrapChips(chips []string, width int) []string {
	var lines []string
	var cur string
	for _, c := range chips {
		if cur != "" && lipgloss.Width(cur)+1+lipgloss.Width(c) > width {
			lines = append(lines, cur)
			cur = ""
		}
		if cur != "" {
			cur += " "
		}
		cur += c
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
