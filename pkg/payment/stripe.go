package payment

import (
	"fmt"
	"strings"

	"spa-booking/pkg/utils"

	"github.com/stripe/stripe-go/v76"
	checkout "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

const metadataBookingRefs = "booking_refs"

// CheckoutSession is the provider-side handle for a hosted card payment.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutResult resolves a session id back to its metadata and outcome.
type CheckoutResult struct {
	BookingRefs []string
	Paid        bool
}

// CheckoutProvider is the external card-checkout collaborator: it takes a
// minor-unit deposit amount plus opaque booking refs and hands back a hosted
// payment page; a later lookup resolves the outcome.
type CheckoutProvider interface {
	CreateSession(amountMinor int64, bookingRefs []string) (*CheckoutSession, error)
	ResolveSession(sessionID string) (*CheckoutResult, error)
}

type stripeProvider struct {
	currency   string
	successURL string
	cancelURL  string
	log        *zap.Logger
}

// NewStripeProvider configures the package-level stripe client. Key handling
// follows stripe-go convention: one key per process.
func NewStripeProvider(config utils.PaymentConfig, baseURL string, log *zap.Logger) CheckoutProvider {
	stripe.Key = config.StripeKey

	return &stripeProvider{
		currency:   config.Currency,
		successURL: baseURL + "/api/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  baseURL + "/api/checkout/cancel",
		log:        log.With(zap.String("component", "stripe")),
	}
}

func (p *stripeProvider) CreateSession(amountMinor int64, bookingRefs []string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Booking deposit"),
					},
					UnitAmount: stripe.Int64(amountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
	}
	params.AddMetadata(metadataBookingRefs, strings.Join(bookingRefs, ","))

	sess, err := checkout.New(params)
	if err != nil {
		p.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.Int64("amount_minor", amountMinor),
			zap.Strings("booking_refs", bookingRefs),
		)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	p.log.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.Int64("amount_minor", amountMinor),
	)

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (p *stripeProvider) ResolveSession(sessionID string) (*CheckoutResult, error) {
	sess, err := checkout.Get(sessionID, nil)
	if err != nil {
		p.log.Error("Failed to resolve checkout session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("resolve checkout session %s: %w", sessionID, err)
	}

	var refs []string
	if raw := sess.Metadata[metadataBookingRefs]; raw != "" {
		refs = strings.Split(raw, ",")
	}

	return &CheckoutResult{
		BookingRefs: refs,
		Paid:        sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}, nil
}
