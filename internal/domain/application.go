package domain

import (
	"time"

	"github.com/google/uuid"
)

// FormValues is the sparse form document of an application: a map from schema
// field name to its canonical value (string, bool or []string). Only fields
// that have actually been filled in are present.
type FormValues map[string]any

// Clone returns a shallow-per-key copy of the values. List values are copied
// so mutating the clone never leaks into the original.
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		if list, ok := val.([]string); ok {
			cp := make([]string, len(list))
			copy(cp, list)
			out[k] = cp
			continue
		}
		out[k] = val
	}
	return out
}

// Str returns the string value of a field, or "" when absent or not a string.
func (v FormValues) Str(key string) string {
	s, _ := v[key].(string)
	return s
}

// Bool returns the bool value of a field, or false when absent.
func (v FormValues) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// List returns the string-list value of a field, or nil when absent.
func (v FormValues) List(key string) []string {
	l, _ := v[key].([]string)
	return l
}

// Application is one visa application owned by exactly one user identity.
// Fields carries the sectioned form document; Email is duplicated out of the
// form because it is the only field required at creation time.
type Application struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Email          string
	Status         ApplicationStatus
	IsLocked       bool
	Fields         FormValues
	LastAutosaveAt time.Time
	SubmittedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Editable reports whether the owner may still mutate the form fields.
func (a *Application) Editable() bool {
	return a.Status == ApplicationStatusDraft && !a.IsLocked
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	Status *ApplicationStatus
	UserID *uuid.UUID
	Limit  int
	Offset int
}

// ApplicationSnapshot is the immutable copy of an application written exactly
// once at submission time, together with the booking/payment that funded it.
type ApplicationSnapshot struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	UserID        uuid.UUID
	Email         string
	Fields        FormValues
	BookingID     *uuid.UUID
	PaymentID     *uuid.UUID
	CreatedAt     time.Time
}
