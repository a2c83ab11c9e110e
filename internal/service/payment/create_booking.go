package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

// CreateBooking validates and persists a booking with its travelers. The
// amount is priced server-side from the configured per-traveler fee; the
// client never supplies it. Booking and travelers commit in one transaction.
func (s *Service) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:        userID,
		ContactEmail:  strings.TrimSpace(input.ContactEmail),
		ContactPhone:  strings.TrimSpace(input.ContactPhone),
		VisaType:      strings.TrimSpace(input.VisaType),
		AmountCents:   s.cfg.PerTravelerFee * int64(len(input.Travelers)),
		Currency:      s.cfg.Currency,
		PaymentStatus: domain.PaymentStatusInitiated,
	}
	for _, t := range input.Travelers {
		dob, _ := time.Parse(dateLayout, t.DateOfBirth) // validated above
		booking.Travelers = append(booking.Travelers, &domain.Traveler{
			GivenNames:     strings.TrimSpace(t.GivenNames),
			Surname:        strings.TrimSpace(t.Surname),
			PassportNumber: strings.TrimSpace(t.PassportNumber),
			DateOfBirth:    dob,
			Gender:         strings.TrimSpace(t.Gender),
			Nationality:    strings.TrimSpace(t.Nationality),
			Status:         domain.TravelerStatusPending,
		})
	}

	var created *domain.Booking
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.bookings.Create(txCtx, booking)
		if createErr != nil {
			return fmt.Errorf("create booking: %w", createErr)
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeBooking,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"travelers": len(created.Travelers), "amount_cents": created.AmountCents},
		})
		if auditErr != nil {
			return fmt.Errorf("audit booking: %w", auditErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("booking created",
		"booking_id", created.ID, "user_id", userID, "travelers", len(created.Travelers))
	return created, nil
}
