package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"liftlog/internal/api"
	"liftlog/internal/cache"
	"liftlog/internal/editor"
	"liftlog/internal/models"
	"liftlog/internal/voice"
)

type SessionState int

const (
	StateLogin SessionState = iota
	StateHistory
	StateDetail
	StateNew
	StateVoice
	StateExercises
)

// editField names which set field an open edit form is targeting.
type editField int

const (
	editNone editField = iota
	editExercise
	editReps
	editWeight
	editRPE
)

// LoginFormModel backs the huh login form.
type LoginFormModel struct {
	Email    string
	Password string
	Register bool
}

// RowFormModel backs the draft-row edit form. Values stay raw strings; the
// draft decides at submit time which rows are complete.
type RowFormModel struct {
	ExerciseID string
	Reps       string
	WeightKg   string
	RPE        string
}

// ExerciseFormModel backs the add-exercise form.
type ExerciseFormModel struct {
	Name    string
	Muscles string
}

type Model struct {
	client *api.Client
	cache  *cache.Cache
	device voice.Device

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	quitting      bool
	width         int
	height        int

	// status holds a one-line message under the content: last error, save
	// confirmation, or session-expired notice.
	status string

	form         *huh.Form
	loginForm    *LoginFormModel
	rowForm      *RowFormModel
	exerciseForm *ExerciseFormModel
	editingField editField
	editValue    string
	editingRow   int

	history   []models.WorkoutSummary
	cursor    int
	exercises []models.Exercise
	names     map[int64]string

	detail    *editor.Autosave
	setCursor int

	draft       *editor.Draft
	draftCursor int

	voiceSession *voice.Session
	transcript   string
	exCursor     int
	loading      bool
}

func NewModel(client *api.Client, store *cache.Cache, device voice.Device) Model {
	m := Model{
		client: client,
		cache:  store,
		device: device,
		state:  StateHistory,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		names:  map[int64]string{},
	}
	if !client.Gate().Authenticated() {
		m.state = StateLogin
		m.openLoginForm()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state == StateLogin {
		return m.form.Init()
	}
	return tea.Batch(loadHistory(m.client), loadExercises(m.client))
}

func (m *Model) openLoginForm() {
	m.loginForm = &LoginFormModel{}
	m.form = NewLoginForm(m.loginForm)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHistory:
		keys = append(keys, m.keys.Enter, m.keys.New, m.keys.Voice, m.keys.Exercises)
	case StateDetail:
		keys = append(keys, m.keys.EditReps, m.keys.EditWeight, m.keys.Add, m.keys.Delete, m.keys.Back)
	case StateNew:
		keys = append(keys, m.keys.Add, m.keys.Enter, m.keys.Submit, m.keys.Back)
	case StateVoice:
		keys = append(keys, m.keys.Record, m.keys.Back)
	case StateExercises:
		keys = append(keys, m.keys.Add, m.keys.Delete, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Back}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	actions := []key.Binding{
		m.keys.New, m.keys.Voice, m.keys.Exercises, m.keys.Add, m.keys.Delete,
		m.keys.EditExercise, m.keys.EditReps, m.keys.EditWeight, m.keys.EditRPE,
		m.keys.Submit, m.keys.Record,
	}
	return [][]key.Binding{global, navigation, actions}
}
