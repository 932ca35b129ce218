package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/karto-app/karto/pkg/catalog"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if m.dialog.IsVisible() {
		switch {
		case key.Matches(msg, m.keys.Apply):
			m.dialog.Press(0)
		case key.Matches(msg, m.keys.Close):
			m.dialog.Dismiss()
		}
		return nil
	}

	if m.focus != fieldNone {
		return m.handleInputKey(msg)
	}

	if !m.sheet.IsVisible() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Open):
			if err := m.stack.Go(RouteFilters, nil); err != nil {
				m.logger.Error("failed to open filters", "err", err)
			}
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Close):
		m.sheet.Close()
	case key.Matches(msg, m.keys.Apply):
		return m.apply()
	case key.Matches(msg, m.keys.Reset):
		m.filters.Reset()
		m.brandCursor = 0
		m.syncInputs()
	case key.Matches(msg, m.keys.Left):
		m.categoryCursor = max(m.categoryCursor-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.categoryCursor = min(m.categoryCursor+1, len(catalog.Categories())-1)
	case key.Matches(msg, m.keys.Category):
		m.filters.ToggleCategory(catalog.Categories()[m.categoryCursor].ID)
	case key.Matches(msg, m.keys.Up):
		m.brandCursor = max(m.brandCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		if n := len(m.filters.MatchingBrands()); n > 0 {
			m.brandCursor = min(m.brandCursor+1, n-1)
		}
	case key.Matches(msg, m.keys.Brand):
		if matches := m.filters.MatchingBrands(); m.brandCursor < len(matches) {
			m.filters.ToggleBrand(matches[m.brandCursor].ID)
		}
	case key.Matches(msg, m.keys.Price):
		i, err := strconv.Atoi(msg.String())
		ranges := catalog.PriceRanges()
		if err == nil && i >= 1 && i <= len(ranges) {
			m.filters.SelectPriceRange(ranges[i-1])
			m.syncInputs()
		}
	case key.Matches(msg, m.keys.Stock):
		m.filters.ShowOnlyAvailable = !m.filters.ShowOnlyAvailable
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Search):
		return m.focusInput(fieldSearch)
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.blurInputs()
		return nil
	case tea.KeyEnter:
		m.blurInputs()
		return m.apply()
	case tea.KeyTab:
		return m.focusInput((m.focus + 1) % fieldCount)
	case tea.KeyShiftTab:
		return m.focusInput((m.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	switch m.focus {
	case fieldSearch:
		m.filters.BrandQuery = m.inputs[fieldSearch].Value()
		m.brandCursor = 0
	case fieldMin:
		m.filters.MinPrice = m.inputs[fieldMin].Value()
	case fieldMax:
		m.filters.MaxPrice = m.inputs[fieldMax].Value()
	}
	return cmd
}

func (m *Model) focusInput(field int) tea.Cmd {
	m.blurInputs()
	m.focus = field
	return m.inputs[field].Focus()
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = fieldNone
}

// syncInputs copies the filter text into the input fields.
func (m *Model) syncInputs() {
	m.inputs[fieldSearch].SetValue(m.filters.BrandQuery)
	m.inputs[fieldMin].SetValue(m.filters.MinPrice)
	m.inputs[fieldMax].SetValue(m.filters.MaxPrice)
}
