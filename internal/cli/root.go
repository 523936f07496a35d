package cli

import (
	"fmt"
	"strings"
	"time"

	"liftlog/internal/api"
	"liftlog/internal/cache"
	"liftlog/internal/constants"
	"liftlog/internal/logger"
	"liftlog/internal/models"
	"liftlog/internal/session"
)

type Context struct {
	Client    *api.Client
	Cache     *cache.Cache
	Store     session.TokenStore
	ConfigDir string
}

// Gate is a shortcut to the client's session gate.
func (c *Context) Gate() *session.Gate {
	return c.Client.Gate()
}

// RefreshHistoryCache writes a fresh server listing through to the local
// cache. Cache trouble never interrupts the command that fetched the data.
func (c *Context) RefreshHistoryCache(workouts []models.WorkoutSummary) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.PutWorkouts(workouts); err != nil {
		logger.Warn("failed to refresh history cache", "error", err)
	}
}

// RefreshExerciseCache writes a fresh exercise catalog through to the cache.
func (c *Context) RefreshExerciseCache(exercises []models.Exercise) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.PutExercises(exercises); err != nil {
		logger.Warn("failed to refresh exercise cache", "error", err)
	}
}

// ValidateDate checks a YYYY-MM-DD flag value.
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return nil
}

// FormatSummary renders one history line.
func FormatSummary(w models.WorkoutSummary) string {
	title := w.Title
	if title == "" {
		title = "Workout"
	}
	return fmt.Sprintf("%-6d %s  %s (%d sets)", w.ID, api.ToLocalDisplayDate(w.Date), title, w.NumSets())
}

// FormatSet renders one set row for workout detail output. The exercise name
// map may be nil, in which case the raw id is shown.
func FormatSet(set models.Set, names map[int64]string) string {
	exercise := names[set.ExerciseID]
	if exercise == "" {
		exercise = fmt.Sprintf("exercise %d", set.ExerciseID)
	}
	line := fmt.Sprintf("  %d. %s  %d reps @ %.1f kg", set.SetIndex, exercise, set.Reps, set.WeightKg)
	if set.RPE != nil {
		line += fmt.Sprintf("  RPE %.1f", *set.RPE)
	}
	return line
}

// FormatWorkout renders a full workout with its sets.
func FormatWorkout(w models.Workout, names map[int64]string) string {
	var b strings.Builder
	title := w.Title
	if title == "" {
		title = "Workout"
	}
	fmt.Fprintf(&b, "%s — %s (#%d)\n", title, api.ToLocalDisplayDate(w.Date), w.ID)
	if w.Notes != "" {
		fmt.Fprintf(&b, "%s\n", w.Notes)
	}
	if len(w.Sets) == 0 {
		b.WriteString("  (no sets)\n")
	}
	for _, set := range w.Sets {
		b.WriteString(FormatSet(set, names))
		b.WriteByte('\n')
	}
	return b.String()
}

// ExerciseNames builds the id → name lookup used for display.
func ExerciseNames(exercises []models.Exercise) map[int64]string {
	names := make(map[int64]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names
}
