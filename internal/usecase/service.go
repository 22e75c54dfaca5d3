package usecase

import (
	"spa-booking/internal/data/repository"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/payment"
	"spa-booking/pkg/storage"
	"spa-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles the use-case layer for wiring.
type Service struct {
	Cart         CartService
	Availability AvailabilityService
	Catalog      CatalogService
	Booking      BookingService
	Payment      PaymentService
	Assignment   AssignmentService
}

func NewService(
	repo *repository.Repository,
	drafts repository.DraftStore,
	provider payment.CheckoutProvider,
	files storage.FileStore,
	sender mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	rates := DefaultPricingRates()
	if config.Payment.DepositRateBP > 0 {
		rates.DepositBP = config.Payment.DepositRateBP
	}
	if config.Payment.MemberDiscountBP > 0 {
		rates.MemberDiscountBP = config.Payment.MemberDiscountBP
	}

	notify := newNotifier(repo, files, sender, log)
	booking := NewBookingService(repo, drafts, rates, log)

	return &Service{
		Cart:         NewCartService(repo, drafts, rates, log),
		Availability: NewAvailabilityService(repo, log),
		Catalog:      NewCatalogService(repo, log),
		Booking:      booking,
		Payment:      NewPaymentService(repo, booking, provider, notify, config.Payment.MockCheckout, log),
		Assignment:   NewAssignmentService(repo, notify, log),
	}
}
