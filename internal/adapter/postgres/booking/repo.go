// Package booking implements the Booking repository using PostgreSQL.
// A booking and its travelers are created in one call; the service runs it
// inside a transaction so a failed traveler insert rolls back the booking.
package booking

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/visago/visago-backend/internal/adapter/postgres"
	"github.com/visago/visago-backend/internal/domain"
)

// Repo provides booking and traveler persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new booking repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const bookingColumns = `
    id, user_id, contact_email, contact_phone, visa_type,
    amount_cents, currency, payment_status, created_at, updated_at`

const travelerColumns = `
    id, booking_id, given_names, surname, passport_number,
    date_of_birth, gender, nationality, status, created_at, updated_at`

const getBookingSQL = `
SELECT` + bookingColumns + `
FROM bookings
WHERE id = $1`

const listTravelersSQL = `
SELECT` + travelerColumns + `
FROM travelers
WHERE booking_id = $1
ORDER BY created_at`

const createBookingSQL = `
INSERT INTO bookings (user_id, contact_email, contact_phone, visa_type, amount_cents, currency)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING` + bookingColumns

const createTravelerSQL = `
INSERT INTO travelers (booking_id, given_names, surname, passport_number, date_of_birth, gender, nationality)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING` + travelerColumns

const updatePaymentStatusSQL = `
UPDATE bookings
SET payment_status = $2,
    updated_at     = now()
WHERE id = $1
RETURNING` + bookingColumns

const getTravelerSQL = `
SELECT` + travelerColumns + `
FROM travelers
WHERE id = $1`

const updateTravelerStatusSQL = `
UPDATE travelers
SET status     = $3,
    updated_at = now()
WHERE id = $1 AND status = $2
RETURNING` + travelerColumns

// GetByID returns a booking with its travelers loaded.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	bk, err := scanBooking(querier.QueryRow(ctx, getBookingSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "booking", id)
	}

	travelers, err := r.listTravelers(ctx, id)
	if err != nil {
		return nil, err
	}
	bk.Travelers = travelers

	return bk, nil
}

// List returns bookings matching the filter, newest first, without their
// travelers loaded. GetByID loads travelers for a single booking.
func (r *Repo) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(
		"id", "user_id", "contact_email", "contact_phone", "visa_type",
		"amount_cents", "currency", "payment_status", "created_at", "updated_at",
	).
		From("bookings").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.PaymentStatus != nil {
		builder = builder.Where(sq.Eq{"payment_status": filter.PaymentStatus.String()})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*domain.Booking{}
	for rows.Next() {
		bk, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w", err)
		}
		bookings = append(bookings, bk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}

// Create inserts the booking row and one traveler row per entry, in order.
// Must run inside a transaction: a failed traveler insert leaves a headless
// booking otherwise.
func (r *Repo) Create(ctx context.Context, bk *domain.Booking) (*domain.Booking, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanBooking(querier.QueryRow(ctx, createBookingSQL,
		bk.UserID, bk.ContactEmail, bk.ContactPhone, bk.VisaType,
		bk.AmountCents, bk.Currency,
	))
	if err != nil {
		return nil, postgres.MapError(err, "booking", uuid.Nil)
	}

	for _, t := range bk.Travelers {
		traveler, err := scanTraveler(querier.QueryRow(ctx, createTravelerSQL,
			created.ID, t.GivenNames, t.Surname, t.PassportNumber,
			t.DateOfBirth, t.Gender, t.Nationality,
		))
		if err != nil {
			return nil, postgres.MapError(err, "traveler", created.ID)
		}
		created.Travelers = append(created.Travelers, traveler)
	}

	return created, nil
}

// UpdatePaymentStatus sets the booking's payment status unconditionally;
// payment resolution owns the ordering guarantees.
func (r *Repo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Booking, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	bk, err := scanBooking(querier.QueryRow(ctx, updatePaymentStatusSQL, id, status.String()))
	if err != nil {
		return nil, postgres.MapError(err, "booking", id)
	}
	return bk, nil
}

// GetTraveler returns a single traveler by primary key.
func (r *Repo) GetTraveler(ctx context.Context, id uuid.UUID) (*domain.Traveler, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTraveler(querier.QueryRow(ctx, getTravelerSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "traveler", id)
	}
	return t, nil
}

// UpdateTravelerStatus performs an admin review transition on one traveler.
// The from status is part of the predicate so concurrent transitions cannot
// both apply; zero rows is domain.ErrInvalidState.
func (r *Repo) UpdateTravelerStatus(ctx context.Context, id uuid.UUID, from, to domain.TravelerStatus) (*domain.Traveler, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTraveler(querier.QueryRow(ctx, updateTravelerStatusSQL, id, from.String(), to.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("traveler %s: %w", id, domain.ErrInvalidState)
		}
		return nil, postgres.MapError(err, "traveler", id)
	}
	return t, nil
}

func (r *Repo) listTravelers(ctx context.Context, bookingID uuid.UUID) ([]*domain.Traveler, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listTravelersSQL, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list travelers: %w", err)
	}
	defer rows.Close()

	travelers := []*domain.Traveler{}
	for rows.Next() {
		t, err := scanTraveler(rows)
		if err != nil {
			return nil, fmt.Errorf("list travelers: %w", err)
		}
		travelers = append(travelers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list travelers: %w", err)
	}

	return travelers, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		bk     domain.Booking
		status string
	)

	err := row.Scan(
		&bk.ID, &bk.UserID, &bk.ContactEmail, &bk.ContactPhone, &bk.VisaType,
		&bk.AmountCents, &bk.Currency, &status, &bk.CreatedAt, &bk.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	bk.PaymentStatus = domain.PaymentStatus(status)
	return &bk, nil
}

func scanTraveler(row pgx.Row) (*domain.Traveler, error) {
	var (
		t      domain.Traveler
		status string
	)

	err := row.Scan(
		&t.ID, &t.BookingID, &t.GivenNames, &t.Surname, &t.PassportNumber,
		&t.DateOfBirth, &t.Gender, &t.Nationality, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TravelerStatus(status)
	return &t, nil
}
