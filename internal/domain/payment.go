package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one payment attempt, keyed by the external processor's order id.
// The row is created optimistically before the user completes the external
// checkout; Status is the authority for whether a credit or unlock is granted.
type Payment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	OrderID       string
	BookingID     *uuid.UUID
	ApplicationID *uuid.UUID
	AmountCents   int64
	Currency      string
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	UserID *uuid.UUID
	Status *PaymentStatus
	Limit  int
	Offset int
}

// ApplicationCredit is one unit of entitlement minted by a completed payment
// that was not tied to a specific application. A credit is redeemable exactly
// once to create a new draft; consumption is transactional with draft
// creation so credits are never silently lost.
type ApplicationCredit struct {
	ID                      uuid.UUID
	UserID                  uuid.UUID
	PaymentID               uuid.UUID
	Status                  CreditStatus
	ConsumedByApplicationID *uuid.UUID
	CreatedAt               time.Time
	ConsumedAt              *time.Time
}
