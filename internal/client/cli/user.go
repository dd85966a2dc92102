package cli

import (
	"fmt"
	"io"

	"github.com/gymmi-app/gymmi/internal/client/models"
)

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "ID: %d\n", u.ID)
	fmt.Fprintf(w, "Email: %s\n", u.Email)
	if u.Name != nil {
		fmt.Fprintf(w, "Name: %s\n", *u.Name)
	}
	fmt.Fprintf(w, "Active: %t\n", u.IsActive)

	if u.Gender != nil {
		fmt.Fprintf(w, "Gender: %s\n", u.Gender.Label())
	}
	if u.Height != nil {
		fmt.Fprintf(w, "Height: %g cm\n", *u.Height)
	}
	if u.Weight != nil {
		fmt.Fprintf(w, "Weight: %g kg\n", *u.Weight)
	}
	if u.Goal != nil {
		fmt.Fprintf(w, "Goal: %s\n", u.Goal.Label())
	}
	if u.TargetWeight != nil {
		fmt.Fprintf(w, "Target weight: %g kg\n", *u.TargetWeight)
	}
	if u.Diet != nil {
		fmt.Fprintf(w, "Diet: %s\n", u.Diet.Label())
	}
	if u.Experience != nil {
		fmt.Fprintf(w, "Experience: %s\n", u.Experience.Label())
	}
	if u.WorkoutFrequency != nil {
		fmt.Fprintf(w, "Workouts: %s\n", u.WorkoutFrequency.Label())
	}
}
