package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"spa-booking/internal/data/entity"
	"spa-booking/internal/data/repository"
	"spa-booking/internal/dto/request"
	"spa-booking/internal/dto/response"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/payment"
	"spa-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService dispatches a committed booking into one of the payment
// channels and folds provider callbacks back into bookings. All channels
// funnel through the same transition function.
type PaymentService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	RetryCheckout(ctx context.Context, customerID, bookingID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	CompleteCheckout(ctx context.Context, sessionID string) ([]string, error)
	UploadProof(ctx context.Context, bookingID, customerID uuid.UUID, filename string, data []byte) (*response.BookingResponse, error)
}

type paymentService struct {
	repo        *repository.Repository
	bookings    BookingService
	provider    payment.CheckoutProvider
	notify      *notifier
	mockEnabled bool
	log         *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	bookings BookingService,
	provider payment.CheckoutProvider,
	notify *notifier,
	mockEnabled bool,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:        repo,
		bookings:    bookings,
		provider:    provider,
		notify:      notify,
		mockEnabled: mockEnabled,
		log:         log.With(zap.String("service", "payment")),
	}
}

// Checkout materializes the customer's draft and dispatches the chosen
// channel: qr waits for a manual receipt, stripe opens a hosted session, mock
// synthesizes the success event when the config gate is open.
func (s *paymentService) Checkout(ctx context.Context, customerID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}
	if req.Method == "mock" && !s.mockEnabled {
		return nil, ErrMockDisabled
	}

	committed, err := s.bookings.Commit(ctx, customerID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByRef(ctx, committed.BookingRef)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	return s.dispatch(ctx, booking, req.Method)
}

// RetryCheckout re-opens a payment channel for a booking whose earlier
// checkout was abandoned. The draft is gone by then; the committed booking
// itself carries everything a new session needs.
func (s *paymentService) RetryCheckout(ctx context.Context, customerID, bookingID uuid.UUID, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout retry validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}
	if req.Method == "mock" && !s.mockEnabled {
		return nil, ErrMockDisabled
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotOwner
	}
	if !booking.Status.IsActive() {
		return nil, ErrCannotEnd
	}

	return s.dispatch(ctx, booking, req.Method)
}

// dispatch routes a committed booking into the requested payment channel.
// Paid bookings are rejected by the transition function before any channel
// side effect runs.
func (s *paymentService) dispatch(ctx context.Context, booking *entity.Booking, method string) (*response.CheckoutResponse, error) {
	resp := &response.CheckoutResponse{
		BookingRefs: []string{booking.BookingRef},
		Method:      method,
	}

	switch method {
	case "qr":
		// Nothing to open; the proof upload drives the transition.
		return resp, nil

	case "stripe":
		if err := applyPaymentEvent(booking, EventCheckoutOpened); err != nil {
			return nil, err
		}

		sess, err := s.provider.CreateSession(DepositMinorUnits(booking.DepositAmount), resp.BookingRefs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
		}
		if err := s.repo.Booking.SetCheckoutSession(ctx, booking.ID, sess.ID); err != nil {
			return nil, fmt.Errorf("store checkout session: %w", err)
		}

		resp.SessionID = sess.ID
		resp.CheckoutURL = sess.URL
		return resp, nil

	case "mock":
		if err := applyPaymentEvent(booking, EventCheckoutPaid); err != nil {
			return nil, err
		}

		// The mock channel imitates the card flow end to end, so it records
		// the same method and a synthetic session id.
		sessionID := "mock_" + booking.BookingRef
		if err := s.repo.Booking.SetCheckoutSession(ctx, booking.ID, sessionID); err != nil {
			return nil, fmt.Errorf("store checkout session: %w", err)
		}
		paid, err := s.repo.Booking.MarkPaid(ctx, s.repo.DB, booking.ID, booking.Status)
		if err != nil {
			return nil, fmt.Errorf("mark paid: %w", err)
		}
		if paid {
			s.notify.finalize(ctx, booking, mailer.KindConfirmed)
		}

		s.log.Info("Mock checkout completed", zap.String("booking_ref", booking.BookingRef))
		resp.SessionID = sessionID
		return resp, nil

	default:
		return nil, fmt.Errorf("%w: unknown method %s", ErrInvalidInput, method)
	}
}

// CompleteCheckout resolves the provider session named in the success
// callback and confirms every booking it covers. Already-paid bookings are
// skipped so a replayed callback is harmless.
func (s *paymentService) CompleteCheckout(ctx context.Context, sessionID string) ([]string, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidInput)
	}

	result, err := s.provider.ResolveSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	if !result.Paid {
		return nil, fmt.Errorf("%w: session %s is not paid", ErrPaymentProvider, sessionID)
	}

	var confirmed []string
	for _, ref := range result.BookingRefs {
		booking, err := s.repo.Booking.FindByRef(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("find booking %s: %w", ref, err)
		}
		if booking == nil {
			s.log.Warn("Checkout session references unknown booking",
				zap.String("session_id", sessionID),
				zap.String("booking_ref", ref),
			)
			continue
		}

		if err := applyPaymentEvent(booking, EventCheckoutPaid); err != nil {
			if errors.Is(err, ErrAlreadyPaid) {
				confirmed = append(confirmed, ref)
				continue
			}
			return nil, err
		}

		paid, err := s.repo.Booking.MarkPaid(ctx, s.repo.DB, booking.ID, booking.Status)
		if err != nil {
			return nil, fmt.Errorf("mark paid: %w", err)
		}
		if !paid {
			// A concurrent replay of the callback won the conditional
			// update; it already sent the notifications.
			confirmed = append(confirmed, ref)
			continue
		}
		s.notify.finalize(ctx, booking, mailer.KindConfirmed)
		confirmed = append(confirmed, ref)
	}

	s.log.Info("Checkout session completed",
		zap.String("session_id", sessionID),
		zap.Strings("booking_refs", confirmed),
	)

	return confirmed, nil
}

// UploadProof attaches a manual payment receipt to a qr booking and parks it
// as pending review. It never pays the booking; staff verification does.
func (s *paymentService) UploadProof(ctx context.Context, bookingID, customerID uuid.UUID, filename string, data []byte) (*response.BookingResponse, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty receipt file", ErrInvalidInput)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotOwner
	}

	if err := applyPaymentEvent(booking, EventProofUploaded); err != nil {
		return nil, err
	}

	stored := fmt.Sprintf("%s-proof%s", booking.BookingRef, filepath.Ext(filename))
	path, err := s.notify.files.Save("proofs", stored, data)
	if err != nil {
		return nil, fmt.Errorf("store proof: %w", err)
	}

	if err := s.repo.Booking.AttachProof(ctx, booking.ID, path); err != nil {
		return nil, fmt.Errorf("attach proof: %w", err)
	}
	booking.ProofReference = &path

	s.notify.finalize(ctx, booking, mailer.KindPendingReview)

	s.log.Info("Payment proof uploaded",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("proof", path),
	)

	return response.BookingToResponse(booking), nil
}
