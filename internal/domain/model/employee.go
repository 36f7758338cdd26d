package model

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	apperrors "github.com/target/hr-console/internal/errors"
)

const maxNameLen = 100

// Employee is a person registered with the HR service.
type Employee struct {
	ID         ID     `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Email      string `json:"email,omitempty"`
	// Name is set by services that only return a combined name.
	Name string `json:"name,omitempty"`
}

// FullName returns "First Last", falling back to Name.
func (e Employee) FullName() string {
	full := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if full == "" {
		return strings.TrimSpace(e.Name)
	}
	return full
}

// EmployeeRequest is the payload for creating or updating an employee.
type EmployeeRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
}

// EmployeeRequestFrom copies the editable fields of e.
func EmployeeRequestFrom(e Employee) EmployeeRequest {
	return EmployeeRequest{
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Department: e.Department,
		Position:   e.Position,
		Email:      e.Email,
	}
}

// Normalize trims all fields.
func (r *EmployeeRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Department = strings.TrimSpace(r.Department)
	r.Position = strings.TrimSpace(r.Position)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks required fields and the email format.
func (r *EmployeeRequest) Validate() error {
	r.Normalize()
	if r.FirstName == "" {
		return apperrors.ValidationField("firstName", "First name is required.")
	}
	if utf8.RuneCountInString(r.FirstName) > maxNameLen {
		return apperrors.ValidationField("firstName", "First name is too long.")
	}
	if r.LastName == "" {
		return apperrors.ValidationField("lastName", "Last name is required.")
	}
	if utf8.RuneCountInString(r.LastName) > maxNameLen {
		return apperrors.ValidationField("lastName", "Last name is too long.")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return apperrors.ValidationField("email", "Enter a valid email address.")
		}
	}
	return nil
}

// Department is an organisational unit offered on the employee form.
type Department struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
