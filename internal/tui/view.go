package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"liftlog/internal/api"
	"liftlog/internal/voice"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.form != nil {
		return docStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.viewStatus(),
			m.form.View(),
		))
	}

	var content string
	switch m.state {
	case StateHistory:
		content = m.viewHistory()
	case StateDetail:
		content = m.viewDetail()
	case StateNew:
		content = m.viewNew()
	case StateVoice:
		content = m.viewVoice()
	case StateExercises:
		content = m.viewExercises()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.viewStatus(),
		m.help.View(m),
	))
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if strings.HasPrefix(m.status, "✓") {
		return statusStyle.Render(m.status)
	}
	return dangerStyle.Render(m.status)
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(dimStyle.Render("Loading..."))
		return b.String()
	}
	if len(m.history) == 0 {
		b.WriteString(dimStyle.Render("No workouts logged yet. Press n to add one, v to speak one."))
		return b.String()
	}

	for i, w := range m.history {
		title := w.Title
		if title == "" {
			title = "Workout"
		}
		line := fmt.Sprintf("%s  %s (%d sets)", api.ToLocalDisplayDate(w.Date), title, w.NumSets())
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) viewDetail() string {
	w := m.detail.Workout()
	var b strings.Builder
	title := w.Title
	if title == "" {
		title = "Workout"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %s", title, api.ToLocalDisplayDate(w.Date))))
	b.WriteString("\n\n")

	if len(w.Sets) == 0 {
		b.WriteString(dimStyle.Render("No sets. Press a to add one."))
		b.WriteByte('\n')
	}
	for i, set := range w.Sets {
		name := m.names[set.ExerciseID]
		if name == "" {
			name = fmt.Sprintf("exercise %d", set.ExerciseID)
		}
		line := fmt.Sprintf("%d. %-20s %3d reps @ %6.1f kg", set.SetIndex, name, set.Reps, set.WeightKg)
		if set.RPE != nil {
			line += fmt.Sprintf("  RPE %.1f", *set.RPE)
		}
		if i == m.setCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	if w.Notes != "" {
		b.WriteByte('\n')
		b.WriteString(dimStyle.Render(w.Notes))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) viewNew() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("New workout — %s", m.draft.Date)))
	b.WriteString("\n\n")

	for i, row := range m.draft.Rows() {
		line := fmt.Sprintf("%d. exercise=%-6s reps=%-4s weight=%-6s rpe=%s",
			i+1, orDash(row.ExerciseID), orDash(row.Reps), orDash(row.WeightKg), orDash(row.RPE))
		if i == m.draftCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("Incomplete rows are dropped on save; s saves."))
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func (m Model) viewVoice() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Voice log"))
	b.WriteString("\n\n")

	switch m.voiceSession.State() {
	case voice.StateRecording:
		b.WriteString(recordingStyle.Render("● Recording — press space to stop"))
	case voice.StateUploading:
		b.WriteString(dimStyle.Render("Uploading..."))
	default:
		b.WriteString("Press space and describe your workout, e.g. \"bench press three sets of five at 100 kilos\".")
	}
	b.WriteByte('\n')

	if m.transcript != "" {
		b.WriteByte('\n')
		b.WriteString(fmt.Sprintf("heard: %q", m.transcript))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) viewExercises() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Exercises"))
	b.WriteString("\n\n")

	if len(m.exercises) == 0 {
		b.WriteString(dimStyle.Render("No exercises. Press a to add one."))
		return b.String()
	}
	for i, e := range m.exercises {
		line := e.Name
		if len(e.Muscles) > 0 {
			line += dimStyle.Render("  [" + strings.Join(e.Muscles, ", ") + "]")
		}
		if e.IsCustom {
			line += dimStyle.Render("  (custom)")
		}
		if i == m.exCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
