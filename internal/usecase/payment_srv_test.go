package usecase

import (
	"context"
	"testing"

	"spa-booking/internal/data/entity"
	"spa-booking/internal/dto/request"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	*testFixture
	provider *fakeProvider
	files    *fakeFiles
	sender   *fakeSender
	payments PaymentService
}

func newPaymentFixture(t *testing.T, mockEnabled bool) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		testFixture: newTestFixture(),
		provider: &fakeProvider{
			session: &payment.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.example/cs_test_123"},
		},
		files:  newFakeFiles(),
		sender: &fakeSender{},
	}

	notify := newNotifier(f.repo, f.files, f.sender, testLogger())
	bookings := NewBookingService(f.repo, f.drafts, DefaultPricingRates(), testLogger())
	f.payments = NewPaymentService(f.repo, bookings, f.provider, notify, mockEnabled, testLogger())
	return f
}

func (f *paymentFixture) committedBooking(t *testing.T, method string) *entity.Booking {
	t.Helper()

	customerID := seedCustomer(f.testFixture, true)
	serviceID := seedService(f.testFixture, 100.00)
	slotID := seedSlot(f.testFixture, serviceID, entity.SlotStatusAvailable)
	seedDraft(f.testFixture, customerID, serviceID, slotID)

	resp, err := f.payments.Checkout(context.Background(), customerID, &request.CheckoutRequest{Method: method})
	require.NoError(t, err)
	require.Len(t, resp.BookingRefs, 1)

	booking, err := f.bookings.FindByRef(context.Background(), resp.BookingRefs[0])
	require.NoError(t, err)
	require.NotNil(t, booking)
	return booking
}

func TestCheckoutQRWaitsForProof(t *testing.T) {
	f := newPaymentFixture(t, false)

	booking := f.committedBooking(t, "qr")

	assert.Equal(t, entity.PaymentStatusUnpaid, booking.PaymentStatus)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Empty(t, f.provider.created)
}

func TestCheckoutStripeOpensSession(t *testing.T) {
	f := newPaymentFixture(t, false)

	customerID := seedCustomer(f.testFixture, true)
	serviceID := seedService(f.testFixture, 100.00)
	slotID := seedSlot(f.testFixture, serviceID, entity.SlotStatusAvailable)
	seedDraft(f.testFixture, customerID, serviceID, slotID)

	resp, err := f.payments.Checkout(context.Background(), customerID, &request.CheckoutRequest{Method: "stripe"})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "https://checkout.example/cs_test_123", resp.CheckoutURL)
	// Deposit for 2 member participants at RM100: 54.00 -> 5400 minor units.
	require.Len(t, f.provider.created, 1)
	assert.Equal(t, int64(5400), f.provider.created[0])

	booking, err := f.bookings.FindByRef(context.Background(), resp.BookingRefs[0])
	require.NoError(t, err)
	require.NotNil(t, booking.ExternalSessionID)
	assert.Equal(t, "cs_test_123", *booking.ExternalSessionID)
	assert.Equal(t, entity.PaymentStatusUnpaid, booking.PaymentStatus)
}

func TestCheckoutMockGate(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newPaymentFixture(t, false)
		customerID := seedCustomer(f.testFixture, false)

		_, err := f.payments.Checkout(context.Background(), customerID, &request.CheckoutRequest{Method: "mock"})
		assert.ErrorIs(t, err, ErrMockDisabled)
	})

	t.Run("enabled synthesizes the paid event", func(t *testing.T) {
		f := newPaymentFixture(t, true)

		booking := f.committedBooking(t, "mock")

		assert.Equal(t, entity.PaymentStatusPaid, booking.PaymentStatus)
		assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
		assert.NotNil(t, booking.DigitalReceipt)
		assert.NotEmpty(t, f.sender.sent)

		// The mock channel records the card method and a synthetic session,
		// so a paid booking never ends up without a payment method.
		require.NotNil(t, booking.PaymentMethod)
		assert.Equal(t, entity.PaymentMethodStripe, *booking.PaymentMethod)
		require.NotNil(t, booking.ExternalSessionID)
		assert.Equal(t, "mock_"+booking.BookingRef, *booking.ExternalSessionID)
	})
}

func TestRetryCheckout(t *testing.T) {
	t.Run("reopens a session for an unpaid booking", func(t *testing.T) {
		f := newPaymentFixture(t, false)
		booking := f.committedBooking(t, "qr")

		// The draft is cleared at commit; the retry works off the booking
		// alone.
		resp, err := f.payments.RetryCheckout(context.Background(), booking.CustomerID, booking.ID, &request.CheckoutRequest{Method: "stripe"})
		require.NoError(t, err)

		assert.Equal(t, "cs_test_123", resp.SessionID)
		assert.Equal(t, []string{booking.BookingRef}, resp.BookingRefs)
		require.NotNil(t, booking.ExternalSessionID)
		assert.Equal(t, "cs_test_123", *booking.ExternalSessionID)
		assert.Equal(t, entity.PaymentStatusUnpaid, booking.PaymentStatus)
	})

	t.Run("rejects someone else's booking", func(t *testing.T) {
		f := newPaymentFixture(t, false)
		booking := f.committedBooking(t, "qr")

		_, err := f.payments.RetryCheckout(context.Background(), uuid.New(), booking.ID, &request.CheckoutRequest{Method: "stripe"})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejects a paid booking", func(t *testing.T) {
		f := newPaymentFixture(t, false)
		booking := f.committedBooking(t, "qr")
		booking.PaymentStatus = entity.PaymentStatusPaid

		_, err := f.payments.RetryCheckout(context.Background(), booking.CustomerID, booking.ID, &request.CheckoutRequest{Method: "stripe"})
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("rejects a cancelled booking", func(t *testing.T) {
		f := newPaymentFixture(t, false)
		booking := f.committedBooking(t, "qr")
		booking.Status = entity.BookingStatusCancelled

		_, err := f.payments.RetryCheckout(context.Background(), booking.CustomerID, booking.ID, &request.CheckoutRequest{Method: "stripe"})
		assert.ErrorIs(t, err, ErrCannotEnd)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		_, err := f.payments.RetryCheckout(context.Background(), uuid.New(), uuid.New(), &request.CheckoutRequest{Method: "stripe"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCompleteCheckout(t *testing.T) {
	f := newPaymentFixture(t, false)

	booking := f.committedBooking(t, "stripe")
	f.provider.result = &payment.CheckoutResult{BookingRefs: []string{booking.BookingRef}, Paid: true}

	refs, err := f.payments.CompleteCheckout(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, []string{booking.BookingRef}, refs)

	assert.Equal(t, entity.PaymentStatusPaid, booking.PaymentStatus)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)

	// Customer and guest get one mail each, the duplicate self email does not.
	assert.Len(t, f.sender.sent, 2)

	// A replayed callback is a harmless no-op.
	sentBefore := len(f.sender.sent)
	refs, err = f.payments.CompleteCheckout(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, []string{booking.BookingRef}, refs)
	assert.Len(t, f.sender.sent, sentBefore)
}

func TestCompleteCheckoutConcurrentReplay(t *testing.T) {
	f := newPaymentFixture(t, false)

	booking := f.committedBooking(t, "stripe")
	f.provider.result = &payment.CheckoutResult{BookingRefs: []string{booking.BookingRef}, Paid: true}

	// Another callback confirmed the stored row after this one loaded its
	// copy. The conditional update must lose quietly instead of sending a
	// second round of notifications.
	f.bookings.paid[booking.ID] = true

	refs, err := f.payments.CompleteCheckout(context.Background(), "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, []string{booking.BookingRef}, refs)
	assert.Empty(t, f.sender.sent)
}

func TestCompleteCheckoutUnpaidSession(t *testing.T) {
	f := newPaymentFixture(t, false)

	booking := f.committedBooking(t, "stripe")
	f.provider.result = &payment.CheckoutResult{BookingRefs: []string{booking.BookingRef}, Paid: false}

	_, err := f.payments.CompleteCheckout(context.Background(), "cs_test_123")
	assert.ErrorIs(t, err, ErrPaymentProvider)
	assert.Equal(t, entity.PaymentStatusUnpaid, booking.PaymentStatus)
}

func TestUploadProof(t *testing.T) {
	f := newPaymentFixture(t, false)

	booking := f.committedBooking(t, "qr")

	resp, err := f.payments.UploadProof(context.Background(), booking.ID, booking.CustomerID, "bank-transfer.jpg", []byte("image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, "qr", resp.PaymentMethod)
	assert.NotEmpty(t, resp.ProofReference)
	assert.Contains(t, f.files.saved, "proofs/"+booking.BookingRef+"-proof.jpg")

	// Pending-review notification went out.
	require.NotEmpty(t, f.sender.sent)
	assert.Equal(t, mailer.KindPendingReview, f.sender.sent[0].kind)
}

func TestUploadProofOwnershipAndState(t *testing.T) {
	f := newPaymentFixture(t, false)

	booking := f.committedBooking(t, "qr")

	_, err := f.payments.UploadProof(context.Background(), booking.ID, uuid.New(), "proof.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrNotOwner)

	booking.PaymentStatus = entity.PaymentStatusPaid
	_, err = f.payments.UploadProof(context.Background(), booking.ID, booking.CustomerID, "proof.jpg", []byte("x"))
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = f.payments.UploadProof(context.Background(), booking.ID, booking.CustomerID, "proof.jpg", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
