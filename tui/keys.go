package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down         key.Binding
	Dec, Inc         key.Binding
	DecBig, IncBig   key.Binding
	NextFg, NextBg   key.Binding
	PrevDrv, NextDrv key.Binding
	Note             key.Binding
	Save, Load       key.Binding
	Help, Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev param")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next param")),
		Dec:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-1")),
		Inc:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+1")),
		DecBig:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "-10")),
		IncBig:  key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "+10")),
		NextFg:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next foreground")),
		NextBg:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "next background")),
		PrevDrv: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev drive")),
		NextDrv: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next drive")),
		Note:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "test note")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save preset")),
		Load:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "next preset")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Dec, k.Inc, k.NextFg, k.NextBg, k.Note, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Dec, k.Inc, k.DecBig, k.IncBig},
		{k.NextFg, k.NextBg, k.PrevDrv, k.NextDrv, k.Note},
		{k.Save, k.Load, k.Help, k.Quit},
	}
}
