package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/service/payment"
)

// paymentService defines the minimal interface needed by PaymentHandler.
type paymentService interface {
	CreateBooking(ctx context.Context, input payment.CreateBookingInput) (*domain.Booking, error)
	InitiatePayment(ctx context.Context, input payment.InitiatePaymentInput) (*domain.Payment, error)
	ResolvePayment(ctx context.Context, orderID string, observed domain.PaymentStatus) (*domain.Payment, error)
	GetPaymentStatus(ctx context.Context, orderID string) (*domain.Payment, error)
	RedeemCredit(ctx context.Context, email string) (*domain.Application, error)
	ListCredits(ctx context.Context) ([]*domain.ApplicationCredit, error)
}

// PaymentHandler serves the booking, payment and credit endpoints.
type PaymentHandler struct {
	svc paymentService
	log *slog.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc paymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, log: logger.With("handler", "payments")}
}

type travelerRequest struct {
	GivenNames     string `json:"givenNames"`
	Surname        string `json:"surname"`
	PassportNumber string `json:"passportNumber"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
}

type createBookingRequest struct {
	ContactEmail string            `json:"contactEmail"`
	ContactPhone string            `json:"contactPhone"`
	VisaType     string            `json:"visaType"`
	Travelers    []travelerRequest `json:"travelers"`
}

type initiatePaymentRequest struct {
	BookingID     *string `json:"bookingId" validate:"omitempty,uuid4"`
	ApplicationID *string `json:"applicationId" validate:"omitempty,uuid4"`
}

type resolvePaymentRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=pending completed failed refunded"`
}

type redeemCreditRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type bookingResponse struct {
	ID            string             `json:"id"`
	ContactEmail  string             `json:"contactEmail"`
	ContactPhone  string             `json:"contactPhone"`
	VisaType      string             `json:"visaType"`
	AmountCents   int64              `json:"amountCents"`
	Currency      string             `json:"currency"`
	PaymentStatus string             `json:"paymentStatus"`
	Travelers     []travelerResponse `json:"travelers"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type travelerResponse struct {
	ID             string `json:"id"`
	GivenNames     string `json:"givenNames"`
	Surname        string `json:"surname"`
	PassportNumber string `json:"passportNumber"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	Status         string `json:"status"`
}

type paymentResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	BookingID     *string   `json:"bookingId,omitempty"`
	ApplicationID *string   `json:"applicationId,omitempty"`
	AmountCents   int64     `json:"amountCents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type creditResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBooking handles POST /api/v1/bookings.
func (h *PaymentHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	travelers := make([]payment.TravelerInput, 0, len(req.Travelers))
	for _, t := range req.Travelers {
		travelers = append(travelers, payment.TravelerInput{
			GivenNames:     t.GivenNames,
			Surname:        t.Surname,
			PassportNumber: t.PassportNumber,
			DateOfBirth:    t.DateOfBirth,
			Gender:         t.Gender,
			Nationality:    t.Nationality,
		})
	}

	booking, err := h.svc.CreateBooking(r.Context(), payment.CreateBookingInput{
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		VisaType:     req.VisaType,
		Travelers:    travelers,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, toBookingResponse(booking))
}

// InitiatePayment handles POST /api/v1/payments.
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	var req initiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	var input payment.InitiatePaymentInput
	if req.BookingID != nil {
		id := uuid.MustParse(*req.BookingID)
		input.BookingID = &id
	}
	if req.ApplicationID != nil {
		id := uuid.MustParse(*req.ApplicationID)
		input.ApplicationID = &id
	}

	p, err := h.svc.InitiatePayment(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, toPaymentResponse(p))
}

// ResolvePayment handles POST /api/v1/payments/resolve, the processor
// callback reporting the outcome of an order.
func (h *PaymentHandler) ResolvePayment(w http.ResponseWriter, r *http.Request) {
	var req resolvePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	p, err := h.svc.ResolvePayment(r.Context(), req.OrderID, domain.PaymentStatus(req.Status))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toPaymentResponse(p))
}

// GetStatus handles GET /api/v1/payments/status/{orderID}.
func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	p, err := h.svc.GetPaymentStatus(r.Context(), orderID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toPaymentResponse(p))
}

// RedeemCredit handles POST /api/v1/credits/redeem.
func (h *PaymentHandler) RedeemCredit(w http.ResponseWriter, r *http.Request) {
	var req redeemCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	app, err := h.svc.RedeemCredit(r.Context(), req.Email)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, toApplicationResponse(app))
}

// ListCredits handles GET /api/v1/credits.
func (h *PaymentHandler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.svc.ListCredits(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]creditResponse, 0, len(credits))
	for _, c := range credits {
		out = append(out, creditResponse{
			ID:        c.ID.String(),
			Status:    c.Status.String(),
			CreatedAt: c.CreatedAt,
		})
	}
	writeSuccess(w, http.StatusOK, out)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	travelers := make([]travelerResponse, 0, len(b.Travelers))
	for _, t := range b.Travelers {
		travelers = append(travelers, toTravelerResponse(t))
	}
	return bookingResponse{
		ID:            b.ID.String(),
		ContactEmail:  b.ContactEmail,
		ContactPhone:  b.ContactPhone,
		VisaType:      b.VisaType,
		AmountCents:   b.AmountCents,
		Currency:      b.Currency,
		PaymentStatus: b.PaymentStatus.String(),
		Travelers:     travelers,
		CreatedAt:     b.CreatedAt,
	}
}

func toTravelerResponse(t *domain.Traveler) travelerResponse {
	return travelerResponse{
		ID:             t.ID.String(),
		GivenNames:     t.GivenNames,
		Surname:        t.Surname,
		PassportNumber: t.PassportNumber,
		DateOfBirth:    t.DateOfBirth.Format("2006-01-02"),
		Gender:         t.Gender,
		Nationality:    t.Nationality,
		Status:         t.Status.String(),
	}
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	resp := paymentResponse{
		ID:          p.ID.String(),
		OrderID:     p.OrderID,
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		Status:      p.Status.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.BookingID != nil {
		s := p.BookingID.String()
		resp.BookingID = &s
	}
	if p.ApplicationID != nil {
		s := p.ApplicationID.String()
		resp.ApplicationID = &s
	}
	return resp
}
