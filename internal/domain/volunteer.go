package domain

import (
	"context"
	"strings"
)

// VolunteerApplication is a sign-up submitted from the volunteer form.
type VolunteerApplication struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
	Skills       string `json:"skills,omitempty"`
	Availability string `json:"availability,omitempty"`
	Interests    string `json:"interests,omitempty"`
	Message      string `json:"message,omitempty"`
}

// Validate checks the required contact fields.
func (v VolunteerApplication) Validate() error {
	switch {
	case strings.TrimSpace(v.Name) == "":
		return required("name")
	case strings.TrimSpace(v.Email) == "":
		return required("email")
	case !strings.Contains(v.Email, "@"):
		return &ValidationError{Field: "email", Message: "must be an email address"}
	case strings.TrimSpace(v.Phone) == "":
		return required("phone")
	}
	return nil
}

// VolunteerSubmitter forwards applications to whoever coordinates volunteers.
type VolunteerSubmitter interface {
	SubmitVolunteer(ctx context.Context, app VolunteerApplication) error
}
