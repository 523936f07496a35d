package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"liftlog/internal/api"
	"liftlog/internal/editor"
	"liftlog/internal/logger"
	"liftlog/internal/models"
	"liftlog/internal/voice"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)
	case exercisesLoadedMsg:
		return m.handleExercisesLoaded(msg)
	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)
	case setSavedMsg:
		return m.handleSetSaved(msg)
	case draftSubmittedMsg:
		return m.handleDraftSubmitted(msg)
	case loggedInMsg:
		return m.handleLoggedIn(msg)
	case recordingStartedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil
	case voiceUploadedMsg:
		return m.handleVoiceUploaded(msg)
	case exerciseMutatedMsg:
		if expired, cmd := m.sessionExpired(msg.err); expired {
			return m, cmd
		}
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = "✓ Saved"
		return m, loadExercises(m.client)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// sessionExpired routes any 401 to the login view. The gate has already
// cleared the credential and fired its one-shot callback by the time the
// error reaches us.
func (m *Model) sessionExpired(err error) (bool, tea.Cmd) {
	if err == nil || !errors.Is(err, api.ErrUnauthorized) {
		return false, nil
	}
	m.state = StateLogin
	m.openLoginForm()
	m.status = "Session expired — please sign in again."
	return true, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	// ctrl+c still quits while a form is open.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		if m.state == StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.clearForm()
		return m, nil
	}
	return m, cmd
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	switch {
	case m.loginForm != nil:
		form := *m.loginForm
		m.clearForm()
		m.status = "Signing in..."
		return m, login(m.client, form)

	case m.rowForm != nil:
		form := *m.rowForm
		row := m.editingRow
		m.clearForm()
		if err := m.draft.UpdateRow(row, editor.RowPatch{
			ExerciseID: &form.ExerciseID,
			Reps:       &form.Reps,
			WeightKg:   &form.WeightKg,
			RPE:        &form.RPE,
		}); err != nil {
			m.status = err.Error()
		}
		return m, nil

	case m.exerciseForm != nil:
		form := *m.exerciseForm
		m.clearForm()
		return m, createExercise(m.client, form)

	case m.editingField != editNone:
		field := m.editingField
		value := strings.TrimSpace(m.editValue)
		m.clearForm()
		return m.dispatchFieldSave(field, value)
	}

	m.clearForm()
	return m, nil
}

// dispatchFieldSave turns a completed field form into one single-field patch,
// the same way the grid's blur handler does.
func (m Model) dispatchFieldSave(field editField, value string) (tea.Model, tea.Cmd) {
	sets := m.detail.Workout().Sets
	if m.setCursor >= len(sets) {
		return m, nil
	}
	setID := sets[m.setCursor].ID
	auto := m.detail

	switch field {
	case editExercise:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			m.status = "exercise must be a positive id"
			return m, nil
		}
		return m, saveSet(func(ctx context.Context) error { return auto.SaveExercise(ctx, setID, id) })
	case editReps:
		reps, err := strconv.Atoi(value)
		if err != nil || reps <= 0 {
			m.status = "reps must be a positive whole number"
			return m, nil
		}
		return m, saveSet(func(ctx context.Context) error { return auto.SaveReps(ctx, setID, reps) })
	case editWeight:
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil || weight < 0 {
			m.status = "weight must be a non-negative number"
			return m, nil
		}
		return m, saveSet(func(ctx context.Context) error { return auto.SaveWeight(ctx, setID, weight) })
	case editRPE:
		if value == "" {
			return m, saveSet(func(ctx context.Context) error { return auto.SaveRPE(ctx, setID, nil) })
		}
		rpe, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.status = "rpe must be a number or empty to clear"
			return m, nil
		}
		return m, saveSet(func(ctx context.Context) error { return auto.SaveRPE(ctx, setID, &rpe) })
	}
	return m, nil
}

func (m *Model) clearForm() {
	m.form = nil
	m.loginForm = nil
	m.rowForm = nil
	m.exerciseForm = nil
	m.editingField = editNone
	m.editValue = ""
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.voiceSession != nil {
			if err := m.voiceSession.Close(); err != nil {
				logger.Warn("voice session close failed", "error", err)
			}
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case StateHistory:
		return m.handleHistoryKey(msg)
	case StateDetail:
		return m.handleDetailKey(msg)
	case StateNew:
		return m.handleNewKey(msg)
	case StateVoice:
		return m.handleVoiceKey(msg)
	case StateExercises:
		return m.handleExercisesKey(msg)
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.history)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if len(m.history) == 0 {
			return m, nil
		}
		m.loading = true
		return m, loadWorkout(m.client, m.history[m.cursor].ID)
	case key.Matches(msg, m.keys.New):
		m.draft = editor.NewDraft()
		m.draftCursor = 0
		m.previousState = m.state
		m.state = StateNew
		m.status = ""
	case key.Matches(msg, m.keys.Voice):
		m.voiceSession = voice.NewSession(m.client, m.device)
		m.transcript = ""
		m.previousState = m.state
		m.state = StateVoice
		m.status = ""
	case key.Matches(msg, m.keys.Exercises):
		m.previousState = m.state
		m.state = StateExercises
		m.exCursor = 0
		return m, loadExercises(m.client)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sets := m.detail.Workout().Sets

	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = StateHistory
		m.detail = nil
		return m, loadHistory(m.client)
	case key.Matches(msg, m.keys.Up):
		if m.setCursor > 0 {
			m.setCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.setCursor < len(sets)-1 {
			m.setCursor++
		}
	case key.Matches(msg, m.keys.Add):
		auto := m.detail
		exercises := m.exercises
		return m, saveSet(func(ctx context.Context) error { return auto.AddDefaultSet(ctx, exercises) })
	case key.Matches(msg, m.keys.Delete):
		if len(sets) == 0 {
			return m, nil
		}
		setID := sets[m.setCursor].ID
		auto := m.detail
		if m.setCursor == len(sets)-1 && m.setCursor > 0 {
			m.setCursor--
		}
		return m, saveSet(func(ctx context.Context) error { return auto.DeleteSet(ctx, setID) })
	case key.Matches(msg, m.keys.EditExercise):
		return m.openFieldForm(editExercise, "Exercise ID", sets)
	case key.Matches(msg, m.keys.EditReps):
		return m.openFieldForm(editReps, "Reps", sets)
	case key.Matches(msg, m.keys.EditWeight):
		return m.openFieldForm(editWeight, "Weight (kg)", sets)
	case key.Matches(msg, m.keys.EditRPE):
		return m.openFieldForm(editRPE, "RPE (empty clears)", sets)
	}
	return m, nil
}

func (m Model) openFieldForm(field editField, title string, sets []models.Set) (tea.Model, tea.Cmd) {
	if m.setCursor >= len(sets) {
		return m, nil
	}
	set := sets[m.setCursor]
	switch field {
	case editExercise:
		m.editValue = strconv.FormatInt(set.ExerciseID, 10)
	case editReps:
		m.editValue = strconv.Itoa(set.Reps)
	case editWeight:
		m.editValue = strconv.FormatFloat(set.WeightKg, 'f', -1, 64)
	case editRPE:
		if set.RPE != nil {
			m.editValue = strconv.FormatFloat(*set.RPE, 'f', -1, 64)
		} else {
			m.editValue = ""
		}
	}
	m.editingField = field
	m.form = NewFieldForm(title, &m.editValue)
	return m, m.form.Init()
}

func (m Model) handleNewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = m.previousState
		m.draft = nil
		m.status = ""
	case key.Matches(msg, m.keys.Up):
		if m.draftCursor > 0 {
			m.draftCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.draftCursor < m.draft.Len()-1 {
			m.draftCursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.draft.AddRow()
	case key.Matches(msg, m.keys.Delete):
		if err := m.draft.RemoveRow(m.draftCursor); err != nil {
			m.status = err.Error()
		} else if m.draftCursor >= m.draft.Len() {
			m.draftCursor = m.draft.Len() - 1
		}
	case key.Matches(msg, m.keys.Enter):
		row := m.draft.Rows()[m.draftCursor]
		m.rowForm = &RowFormModel{
			ExerciseID: row.ExerciseID,
			Reps:       row.Reps,
			WeightKg:   row.WeightKg,
			RPE:        row.RPE,
		}
		m.editingRow = m.draftCursor
		m.form = NewRowForm(m.rowForm)
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Submit):
		m.status = "Saving..."
		return m, submitDraft(m.client, m.draft)
	}
	return m, nil
}

func (m Model) handleVoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if err := m.voiceSession.Close(); err != nil {
			logger.Warn("voice session close failed", "error", err)
		}
		m.voiceSession = nil
		m.state = m.previousState
		m.status = ""
	case key.Matches(msg, m.keys.Record):
		switch m.voiceSession.State() {
		case voice.StateIdle:
			return m, startRecording(m.voiceSession)
		case voice.StateRecording:
			m.status = "Uploading..."
			return m, stopRecording(m.voiceSession)
		}
	}
	return m, nil
}

func (m Model) handleExercisesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = m.previousState
		m.status = ""
	case key.Matches(msg, m.keys.Up):
		if m.exCursor > 0 {
			m.exCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.exCursor < len(m.exercises)-1 {
			m.exCursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.exerciseForm = &ExerciseFormModel{}
		m.form = NewExerciseForm(m.exerciseForm)
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Delete):
		if m.exCursor >= len(m.exercises) {
			return m, nil
		}
		ex := m.exercises[m.exCursor]
		if !ex.Deletable() {
			m.status = fmt.Sprintf("%q is built in and cannot be deleted", ex.Name)
			return m, nil
		}
		return m, deleteExercise(m.client, ex.ID)
	}
	return m, nil
}

func (m Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if expired, cmd := m.sessionExpired(msg.err); expired {
		return m, cmd
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.history = msg.workouts
	if m.cursor >= len(m.history) {
		m.cursor = 0
	}
	if m.cache != nil {
		if err := m.cache.PutWorkouts(msg.workouts); err != nil {
			logger.Warn("failed to refresh history cache", "error", err)
		}
	}
	return m, nil
}

func (m Model) handleExercisesLoaded(msg exercisesLoadedMsg) (tea.Model, tea.Cmd) {
	if expired, cmd := m.sessionExpired(msg.err); expired {
		return m, cmd
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.exercises = msg.exercises
	m.names = make(map[int64]string, len(msg.exercises))
	for _, e := range msg.exercises {
		m.names[e.ID] = e.Name
	}
	if m.cache != nil {
		if err := m.cache.PutExercises(msg.exercises); err != nil {
			logger.Warn("failed to refresh exercise cache", "error", err)
		}
	}
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if expired, cmd := m.sessionExpired(msg.err); expired {
		return m, cmd
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.detail = editor.NewAutosave(m.client, *msg.workout)
	m.setCursor = 0
	m.previousState = m.state
	m.state = StateDetail
	m.status = ""
	return m, nil
}

func (m Model) handleSetSaved(msg setSavedMsg) (tea.Model, tea.Cmd) {
	if expired, cmd := m.sessionExpired(msg.err); expired {
		return m, cmd
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.status = "✓ Saved"
	if m.detail != nil {
		if n := len(m.detail.Workout().Sets); m.setCursor >= n && n > 0 {
			m.setCursor = n - 1
		}
	}
	return m, nil
}

func (m Model) handleDraftSubmitted(msg draftSubmittedMsg) (tea.Model, tea.Cmd) {
	if expired, cmd := m.sessionExpired(msg.err); expired {
		return m, cmd
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("✓ Logged workout #%d", msg.workout.ID)
	m.draft = nil
	m.state = StateHistory
	return m, loadHistory(m.client)
}

func (m Model) handleLoggedIn(msg loggedInMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		m.openLoginForm()
		return m, m.form.Init()
	}
	m.state = StateHistory
	m.status = ""
	return m, tea.Batch(loadHistory(m.client), loadExercises(m.client))
}

func (m Model) handleVoiceUploaded(msg voiceUploadedMsg) (tea.Model, tea.Cmd) {
	if expired, cmd := m.sessionExpired(msg.err); expired {
		return m, cmd
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.transcript = msg.result.Transcript
	m.status = fmt.Sprintf("✓ Logged workout #%d", msg.result.Workout.ID)
	return m, loadHistory(m.client)
}
