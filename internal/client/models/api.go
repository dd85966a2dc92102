package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest never carries "" for an optional field: absent values are
// omitted from the body.
type RegisterRequest struct {
	Email            string            `json:"email"`
	Password         string            `json:"password"`
	Name             *string           `json:"name,omitempty"`
	Gender           *Gender           `json:"gender,omitempty"`
	Height           *float64          `json:"height,omitempty"`
	Weight           *float64          `json:"weight,omitempty"`
	Goal             *Goal             `json:"goal,omitempty"`
	TargetWeight     *float64          `json:"target_weight,omitempty"`
	Diet             *Diet             `json:"diet,omitempty"`
	Experience       *Experience       `json:"experience,omitempty"`
	WorkoutFrequency *WorkoutFrequency `json:"workout_frequency,omitempty"`
}

// NewRegisterRequest builds the register body. An empty name is dropped.
func NewRegisterRequest(email, password string, p Profile) RegisterRequest {
	req := RegisterRequest{
		Email:            email,
		Password:         password,
		Gender:           p.Gender,
		Height:           p.Height,
		Weight:           p.Weight,
		Goal:             p.Goal,
		TargetWeight:     p.TargetWeight,
		Diet:             p.Diet,
		Experience:       p.Experience,
		WorkoutFrequency: p.WorkoutFrequency,
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		req.Name = p.Name
	}
	return req
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterResponse is the User body, optionally accompanied by a token.
type RegisterResponse struct {
	User
	AccessToken string `json:"access_token,omitempty"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// ValidationErrorDetail is one entry of a 422 response.
type ValidationErrorDetail struct {
	Type  string            `json:"type"`
	Loc   []json.RawMessage `json:"loc"`
	Msg   string            `json:"msg"`
	Input json.RawMessage   `json:"input,omitempty"`
	Ctx   map[string]any    `json:"ctx,omitempty"`
}

// Field returns the last element of Loc as text ("" if empty).
func (d ValidationErrorDetail) Field() string {
	if len(d.Loc) == 0 {
		return ""
	}
	last := d.Loc[len(d.Loc)-1]
	var s string
	if err := json.Unmarshal(last, &s); err == nil {
		return s
	}
	return string(last)
}

// ErrorResponse is the {detail} body of a failed call. Detail is either a
// string or a list of ValidationErrorDetail.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// Message extracts a human readable message. ok is false when the detail is
// missing or has an unexpected shape.
func (e ErrorResponse) Message() (msg string, ok bool) {
	raw := bytes.TrimSpace(e.Detail)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var details []ValidationErrorDetail
	if err := json.Unmarshal(raw, &details); err != nil || len(details) == 0 {
		return "", false
	}

	d := details[0]
	if f := d.Field(); f != "" {
		return f + ": " + d.Msg, true
	}
	return d.Msg, true
}
