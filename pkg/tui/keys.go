package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the demo's key bindings.
type KeyMap struct {
	Open     key.Binding
	Close    key.Binding
	Apply    key.Binding
	Reset    key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Category key.Binding
	Brand    key.Binding
	Price    key.Binding
	Stock    key.Binding
	Focus    key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Apply:    key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "apply")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "category")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "brand")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Category: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle category")),
		Brand:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "toggle brand")),
		Price:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "price range")),
		Stock:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "in stock only")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit fields")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search brands")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Close, k.Apply, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Close, k.Apply, k.Reset},
		{k.Left, k.Category, k.Up, k.Brand},
		{k.Price, k.Stock, k.Focus, k.Search},
		{k.Help, k.Quit},
	}
}
