package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"liftlog/internal/api"
	"liftlog/internal/editor"
	"liftlog/internal/models"
	"liftlog/internal/voice"
)

type historyLoadedMsg struct {
	workouts []models.WorkoutSummary
	err      error
}

type exercisesLoadedMsg struct {
	exercises []models.Exercise
	err       error
}

type detailLoadedMsg struct {
	workout *models.Workout
	err     error
}

type setSavedMsg struct {
	err error
}

type draftSubmittedMsg struct {
	workout *models.Workout
	err     error
}

type loggedInMsg struct {
	err error
}

type recordingStartedMsg struct {
	err error
}

type voiceUploadedMsg struct {
	result *api.VoiceLogResult
	err    error
}

type exerciseMutatedMsg struct {
	err error
}

func loadHistory(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		workouts, err := client.ListWorkouts(context.Background(), "", "")
		return historyLoadedMsg{workouts: workouts, err: err}
	}
}

func loadExercises(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		exercises, err := client.ListExercises(context.Background())
		return exercisesLoadedMsg{exercises: exercises, err: err}
	}
}

func loadWorkout(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		workout, err := client.GetWorkout(context.Background(), id)
		return detailLoadedMsg{workout: workout, err: err}
	}
}

func login(client *api.Client, form LoginFormModel) tea.Cmd {
	return func() tea.Msg {
		var token string
		var err error
		if form.Register {
			token, err = client.Register(context.Background(), form.Email, form.Password, "")
		} else {
			token, err = client.Login(context.Background(), form.Email, form.Password)
		}
		if err != nil {
			return loggedInMsg{err: err}
		}
		return loggedInMsg{err: client.Gate().SetCredential(token)}
	}
}

func saveSet(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return setSavedMsg{err: fn(context.Background())}
	}
}

func submitDraft(client *api.Client, draft *editor.Draft) tea.Cmd {
	return func() tea.Msg {
		workout, err := draft.Submit(context.Background(), client)
		return draftSubmittedMsg{workout: workout, err: err}
	}
}

func startRecording(sess *voice.Session) tea.Cmd {
	return func() tea.Msg {
		return recordingStartedMsg{err: sess.Start(context.Background())}
	}
}

func stopRecording(sess *voice.Session) tea.Cmd {
	return func() tea.Msg {
		result, err := sess.Stop(context.Background())
		return voiceUploadedMsg{result: result, err: err}
	}
}

func createExercise(client *api.Client, form ExerciseFormModel) tea.Cmd {
	return func() tea.Msg {
		muscles := splitMuscles(form.Muscles)
		_, err := client.CreateExercise(context.Background(), form.Name, muscles)
		return exerciseMutatedMsg{err: err}
	}
}

func deleteExercise(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		return exerciseMutatedMsg{err: client.DeleteExercise(context.Background(), id)}
	}
}
