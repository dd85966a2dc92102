// Package models defines the account and profile types exchanged with the
// Gymmi backend, plus the request/response envelopes of the auth endpoints.
package models

// User is the authenticated account as returned by /auth/me and
// /auth/register. Profile attributes are independently optional.
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Name     *string `json:"name"`
	IsActive bool    `json:"is_active"`

	Gender           *Gender           `json:"gender,omitempty"`
	Height           *float64          `json:"height,omitempty"`
	Weight           *float64          `json:"weight,omitempty"`
	Goal             *Goal             `json:"goal,omitempty"`
	TargetWeight     *float64          `json:"target_weight,omitempty"`
	Diet             *Diet             `json:"diet,omitempty"`
	Experience       *Experience       `json:"experience,omitempty"`
	WorkoutFrequency *WorkoutFrequency `json:"workout_frequency,omitempty"`
}

// DisplayName returns the name if set, otherwise the email.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

// Profile is the optional part of a registration.
type Profile struct {
	Name             *string
	Gender           *Gender
	Height           *float64
	Weight           *float64
	Goal             *Goal
	TargetWeight     *float64
	Diet             *Diet
	Experience       *Experience
	WorkoutFrequency *WorkoutFrequency
}

// Ptr returns a pointer to v. Handy for filling optional fields.
func Ptr[T any](v T) *T { return &v }
