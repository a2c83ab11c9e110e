package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/visago/visago-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedDraft creates a draft application owned by a fresh user with the given
// form fields. Returns a filled domain.Application.
func SeedDraft(t *testing.T, pool *pgxpool.Pool, fields domain.FormValues) domain.Application {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	if fields == nil {
		fields = domain.FormValues{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("testhelper: SeedDraft marshal fields: %v", err)
	}

	app := domain.Application{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Email:          "applicant-" + suffix + "@example.com",
		Status:         domain.ApplicationStatusDraft,
		Fields:         fields,
		LastAutosaveAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO applications (id, user_id, email, status, fields, last_autosave_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.UserID, app.Email, app.Status.String(), fieldsJSON, app.LastAutosaveAt, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDraft insert application: %v", err)
	}

	return app
}

// SeedDocument attaches a document of the given type to an application.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, app domain.Application, docType domain.DocumentType) domain.Document {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc := domain.Document{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		UserID:        app.UserID,
		Type:          docType,
		FilePath:      "uploads/" + suffix + "/" + docType.String() + ".jpg",
		FileName:      docType.String() + "-" + suffix + ".jpg",
		ContentType:   "image/jpeg",
		SizeBytes:     2048,
		CreatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO documents (id, application_id, user_id, doc_type, file_path, file_name, content_type, size_bytes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.ID, doc.ApplicationID, doc.UserID, doc.Type.String(), doc.FilePath, doc.FileName, doc.ContentType, doc.SizeBytes, doc.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert document: %v", err)
	}

	return doc
}

// SeedBooking creates a booking with one traveler for a fresh user.
func SeedBooking(t *testing.T, pool *pgxpool.Pool) domain.Booking {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	bk := domain.Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ContactEmail:  "booking-" + suffix + "@example.com",
		ContactPhone:  "+15550000000",
		VisaType:      "tourist",
		AmountCents:   4900,
		Currency:      "USD",
		PaymentStatus: domain.PaymentStatusInitiated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO bookings (id, user_id, contact_email, contact_phone, visa_type, amount_cents, currency, payment_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		bk.ID, bk.UserID, bk.ContactEmail, bk.ContactPhone, bk.VisaType, bk.AmountCents, bk.Currency, bk.PaymentStatus.String(), bk.CreatedAt, bk.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBooking insert booking: %v", err)
	}

	traveler := domain.Traveler{
		ID:             uuid.New(),
		BookingID:      bk.ID,
		GivenNames:     "Alex",
		Surname:        "Traveler-" + suffix,
		PassportNumber: "P" + suffix,
		DateOfBirth:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:         "male",
		Nationality:    "USA",
		Status:         domain.TravelerStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO travelers (id, booking_id, given_names, surname, passport_number, date_of_birth, gender, nationality, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		traveler.ID, traveler.BookingID, traveler.GivenNames, traveler.Surname, traveler.PassportNumber,
		traveler.DateOfBirth, traveler.Gender, traveler.Nationality, traveler.Status.String(), traveler.CreatedAt, traveler.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBooking insert traveler: %v", err)
	}

	bk.Travelers = []*domain.Traveler{&traveler}
	return bk
}

// SeedPayment creates a payment in the given status for a fresh user,
// optionally tied to an application.
func SeedPayment(t *testing.T, pool *pgxpool.Pool, status domain.PaymentStatus, applicationID *uuid.UUID) domain.Payment {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	p := domain.Payment{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		OrderID:       "order-" + suffix,
		ApplicationID: applicationID,
		AmountCents:   4900,
		Currency:      "USD",
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO payments (id, user_id, order_id, application_id, amount_cents, currency, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.UserID, p.OrderID, p.ApplicationID, p.AmountCents, p.Currency, p.Status.String(), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPayment insert payment: %v", err)
	}

	return p
}

// SeedCredit mints an available credit for userID funded by a fresh
// completed payment.
func SeedCredit(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.ApplicationCredit {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	paymentID := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO payments (id, user_id, order_id, amount_cents, currency, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		paymentID, userID, "order-"+suffix, 4900, "USD", domain.PaymentStatusCompleted.String(), now, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCredit insert payment: %v", err)
	}

	c := domain.ApplicationCredit{
		ID:        uuid.New(),
		UserID:    userID,
		PaymentID: paymentID,
		Status:    domain.CreditStatusAvailable,
		CreatedAt: now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO application_credits (id, user_id, payment_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.UserID, c.PaymentID, c.Status.String(), c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCredit insert credit: %v", err)
	}

	return c
}
