package domain

// ApplicationStatus represents the lifecycle stage of a visa application.
// Only DRAFT applications are mutable by their owner; every later stage is
// reached through admin review transitions.
type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "draft"
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusCompleted   ApplicationStatus = "completed"
)

func (s ApplicationStatus) String() string { return string(s) }

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusDraft, ApplicationStatusSubmitted, ApplicationStatusUnderReview,
		ApplicationStatusApproved, ApplicationStatusRejected, ApplicationStatusCompleted:
		return true
	}
	return false
}

// IsTerminalForOwner reports whether the owner can still edit the application.
func (s ApplicationStatus) IsTerminalForOwner() bool {
	return s != ApplicationStatusDraft
}

// adminTransitions is the review state machine available to administrators.
// The draft -> submitted transition is owned by the Submit operation and is
// deliberately absent here.
var adminTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusSubmitted:   {ApplicationStatusUnderReview},
	ApplicationStatusUnderReview: {ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusApproved:    {ApplicationStatusCompleted},
	ApplicationStatusRejected:    {ApplicationStatusCompleted},
}

// CanTransitionTo reports whether an administrator may move an application
// from s to next.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range adminTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DocumentType identifies the kind of uploaded artifact.
type DocumentType string

const (
	DocumentTypePhoto         DocumentType = "photo"
	DocumentTypePassport      DocumentType = "passport"
	DocumentTypeBankStatement DocumentType = "bank_statement"
	DocumentTypeItinerary     DocumentType = "itinerary"
	DocumentTypeOther         DocumentType = "other"
)

func (d DocumentType) String() string { return string(d) }

func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypePhoto, DocumentTypePassport, DocumentTypeBankStatement,
		DocumentTypeItinerary, DocumentTypeOther:
		return true
	}
	return false
}

// PaymentStatus mirrors the external processor's view of a payment attempt.
// completed, failed and refunded are terminal.
type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusInitiated, PaymentStatusPending, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether the payment can still change state.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// TravelerStatus represents a traveler's independent review state.
type TravelerStatus string

const (
	TravelerStatusPending     TravelerStatus = "pending"
	TravelerStatusUnderReview TravelerStatus = "under_review"
	TravelerStatusApproved    TravelerStatus = "approved"
	TravelerStatusRejected    TravelerStatus = "rejected"
)

func (s TravelerStatus) String() string { return string(s) }

func (s TravelerStatus) IsValid() bool {
	switch s {
	case TravelerStatusPending, TravelerStatusUnderReview,
		TravelerStatusApproved, TravelerStatusRejected:
		return true
	}
	return false
}

// travelerTransitions is the per-traveler review state machine.
var travelerTransitions = map[TravelerStatus][]TravelerStatus{
	TravelerStatusPending:     {TravelerStatusUnderReview},
	TravelerStatusUnderReview: {TravelerStatusApproved, TravelerStatusRejected},
}

// CanTransitionTo reports whether an administrator may move a traveler
// from s to next.
func (s TravelerStatus) CanTransitionTo(next TravelerStatus) bool {
	for _, allowed := range travelerTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CreditStatus represents whether an application credit is still redeemable.
type CreditStatus string

const (
	CreditStatusAvailable CreditStatus = "available"
	CreditStatusConsumed  CreditStatus = "consumed"
)

func (s CreditStatus) String() string { return string(s) }

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeApplication EntityType = "APPLICATION"
	EntityTypeDocument    EntityType = "DOCUMENT"
	EntityTypeBooking     EntityType = "BOOKING"
	EntityTypeTraveler    EntityType = "TRAVELER"
	EntityTypePayment     EntityType = "PAYMENT"
	EntityTypeCredit      EntityType = "CREDIT"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeApplication, EntityTypeDocument, EntityTypeBooking,
		EntityTypeTraveler, EntityTypePayment, EntityTypeCredit:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionSubmit AuditAction = "SUBMIT"
	AuditActionStatus AuditAction = "STATUS_CHANGE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionSubmit, AuditActionStatus:
		return true
	}
	return false
}

// UserRole is the role claim carried by the bearer token.
type UserRole string

const (
	UserRoleApplicant UserRole = "APPLICANT"
	UserRoleAdmin     UserRole = "ADMIN"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }
