package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"liftlog/internal/constants"
)

// NewLoginForm builds the sign-in / sign-up form.
func NewLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password cannot be empty")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Create a new account?").
				Value(&fm.Register),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewRowForm builds the draft-row form. Inputs are free text; blank or
// invalid rows are simply not submitted, so validation here only guards
// obvious typos.
func NewRowForm(fm *RowFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Exercise ID").
				Value(&fm.ExerciseID),
			huh.NewInput().
				Title("Reps").
				Value(&fm.Reps),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&fm.WeightKg),
			huh.NewInput().
				Title("RPE (optional)").
				Value(&fm.RPE).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return fmt.Errorf("rpe must be a number")
					}
					if v < constants.MinRPE || v > constants.MaxRPE {
						return fmt.Errorf("rpe must be between %v and %v", constants.MinRPE, constants.MaxRPE)
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewFieldForm builds the single-value form used for autosave edits.
func NewFieldForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewExerciseForm builds the add-exercise form.
func NewExerciseForm(fm *ExerciseFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Muscles (comma-separated)").
				Value(&fm.Muscles),
		),
	).WithTheme(huh.ThemeDracula())
}

func splitMuscles(s string) []string {
	var muscles []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			muscles = append(muscles, m)
		}
	}
	return muscles
}
