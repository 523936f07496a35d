package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Up           key.Binding
	Down         key.Binding
	Enter        key.Binding
	Back         key.Binding
	New          key.Binding
	Voice        key.Binding
	Exercises    key.Binding
	Add          key.Binding
	Delete       key.Binding
	Submit       key.Binding
	Record       key.Binding
	EditExercise key.Binding
	EditReps     key.Binding
	EditWeight   key.Binding
	EditRPE      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Help, k.Back},
		{k.Up, k.Down, k.Enter, k.New, k.Voice, k.Exercises, k.Add, k.Delete, k.Submit, k.Record},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new workout"),
		),
		Voice: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "voice log"),
		),
		Exercises: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exercises"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save workout"),
		),
		Record: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/stop recording"),
		),
		EditExercise: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit exercise"),
		),
		EditReps: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "edit reps"),
		),
		EditWeight: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "edit weight"),
		),
		EditRPE: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "edit rpe"),
		),
	}
}
