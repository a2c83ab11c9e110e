package payment

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// TravelerInput holds one traveler in a booking request.
type TravelerInput struct {
	GivenNames     string
	Surname        string
	PassportNumber string
	DateOfBirth    string // YYYY-MM-DD
	Gender         string
	Nationality    string
}

// CreateBookingInput holds the parameters for creating a booking.
type CreateBookingInput struct {
	ContactEmail string
	ContactPhone string
	VisaType     string
	Travelers    []TravelerInput
}

// Validate checks all fields and collects all errors.
func (i *CreateBookingInput) Validate() error {
	var errs []domain.FieldError

	if _, err := mail.ParseAddress(strings.TrimSpace(i.ContactEmail)); err != nil {
		errs = append(errs, domain.FieldError{Field: "contact_email", Message: "must be a valid email address"})
	}
	if strings.TrimSpace(i.ContactPhone) == "" {
		errs = append(errs, domain.FieldError{Field: "contact_phone", Message: "required"})
	}
	if strings.TrimSpace(i.VisaType) == "" {
		errs = append(errs, domain.FieldError{Field: "visa_type", Message: "required"})
	}
	if len(i.Travelers) == 0 {
		errs = append(errs, domain.FieldError{Field: "travelers", Message: "at least one traveler required"})
	}

	for idx, t := range i.Travelers {
		prefix := "travelers[" + strconv.Itoa(idx) + "]."
		if strings.TrimSpace(t.GivenNames) == "" {
			errs = append(errs, domain.FieldError{Field: prefix + "given_names", Message: "required"})
		}
		if strings.TrimSpace(t.Surname) == "" {
			errs = append(errs, domain.FieldError{Field: prefix + "surname", Message: "required"})
		}
		if strings.TrimSpace(t.PassportNumber) == "" {
			errs = append(errs, domain.FieldError{Field: prefix + "passport_number", Message: "required"})
		}
		if _, err := time.Parse(dateLayout, t.DateOfBirth); err != nil {
			errs = append(errs, domain.FieldError{Field: prefix + "date_of_birth", Message: "must be a complete YYYY-MM-DD date"})
		}
		if strings.TrimSpace(t.Gender) == "" {
			errs = append(errs, domain.FieldError{Field: prefix + "gender", Message: "required"})
		}
		if strings.TrimSpace(t.Nationality) == "" {
			errs = append(errs, domain.FieldError{Field: prefix + "nationality", Message: "required"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// InitiatePaymentInput holds the parameters for starting a payment.
// Exactly one of BookingID / ApplicationID may be set; neither means an
// untargeted payment whose completion mints a credit.
type InitiatePaymentInput struct {
	BookingID     *uuid.UUID
	ApplicationID *uuid.UUID
}

// Validate rejects doubly-targeted payments.
func (i *InitiatePaymentInput) Validate() error {
	if i.BookingID != nil && i.ApplicationID != nil {
		return domain.NewValidationError("booking_id", "a payment targets a booking or an application, not both")
	}
	return nil
}
