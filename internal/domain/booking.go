package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking groups 1..N travelers under one payment. Identity fields are
// immutable once travelers are inserted; only PaymentStatus advances.
// Bookings are a separate multi-person purchase flow; an Application is
// always single-person.
type Booking struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ContactEmail  string
	ContactPhone  string
	VisaType      string
	AmountCents   int64
	Currency      string
	PaymentStatus PaymentStatus
	Travelers     []*Traveler
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	UserID        *uuid.UUID
	PaymentStatus *PaymentStatus
	Limit         int
	Offset        int
}

// Traveler is one person in a booking. Status advances independently of the
// booking through admin review.
type Traveler struct {
	ID             uuid.UUID
	BookingID      uuid.UUID
	GivenNames     string
	Surname        string
	PassportNumber string
	DateOfBirth    time.Time
	Gender         string
	Nationality    string
	Status         TravelerStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
