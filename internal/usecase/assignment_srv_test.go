package usecase

import (
	"context"
	"testing"

	"spa-booking/internal/data/entity"
	"spa-booking/internal/data/repository"
	"spa-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignmentFixture struct {
	*paymentFixture
	assignment AssignmentService
	staffID    uuid.UUID
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	pf := newPaymentFixture(t, false)
	notify := newNotifier(pf.repo, pf.files, pf.sender, testLogger())

	staffID := uuid.New()
	pf.staff.staff[staffID] = &entity.Staff{
		Base:   entity.Base{ID: staffID},
		Name:   "Siti Aminah",
		Active: true,
	}

	return &assignmentFixture{
		paymentFixture: pf,
		assignment:     NewAssignmentService(pf.repo, notify, testLogger()),
		staffID:        staffID,
	}
}

// pendingQRBooking commits a booking on the manual channel and uploads its
// payment proof, leaving it pending review.
func (f *assignmentFixture) pendingQRBooking(t *testing.T) *entity.Booking {
	t.Helper()

	booking := f.committedBooking(t, "qr")
	_, err := f.payments.UploadProof(context.Background(), booking.ID, booking.CustomerID, "transfer.jpg", []byte("img"))
	require.NoError(t, err)
	return booking
}

func TestVerifyAndAssign(t *testing.T) {
	f := newAssignmentFixture(t)
	booking := f.pendingQRBooking(t)

	resp, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
		StaffID: f.staffID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, entity.BookingStatusAccepted, resp.Status)
	assert.Equal(t, "Siti Aminah", resp.StaffName)

	slot := f.slots.slots[booking.SlotID]
	require.NotNil(t, slot.StaffID)
	assert.Equal(t, f.staffID, *slot.StaffID)
	assert.Equal(t, entity.SlotStatusBooked, slot.Status)

	// Receipt written and confirmation fanned out.
	assert.NotNil(t, booking.DigitalReceipt)
	assert.NotEmpty(t, f.sender.sent)
}

func TestVerifyAndAssignWithRoom(t *testing.T) {
	f := newAssignmentFixture(t)
	booking := f.pendingQRBooking(t)

	roomID := uuid.New()
	f.rooms.rooms[roomID] = &entity.Room{
		Base:     entity.Base{ID: roomID},
		Name:     "Lavender Suite",
		Category: "massage",
		Active:   true,
	}

	resp, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
		StaffID: f.staffID.String(),
		RoomID:  roomID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Lavender Suite", resp.RoomName)
	slot := f.slots.slots[booking.SlotID]
	require.NotNil(t, slot.RoomID)
	assert.Equal(t, roomID, *slot.RoomID)
}

func TestVerifyAndAssignPreconditionOrder(t *testing.T) {
	t.Run("no proof beats staff conflict", func(t *testing.T) {
		f := newAssignmentFixture(t)
		booking := f.committedBooking(t, "qr")

		// Force the manual channel into pending without a stored proof, and
		// make the staff busy. The proof failure must win.
		method := entity.PaymentMethodQR
		booking.PaymentMethod = &method
		booking.PaymentStatus = entity.PaymentStatusPending
		f.bookings.markBusy(repository.ResourceStaff, testSlotDate, "10:30", "11:30")

		_, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
		})
		assert.ErrorIs(t, err, ErrMissingProof)
	})

	t.Run("staff busy", func(t *testing.T) {
		f := newAssignmentFixture(t)
		booking := f.pendingQRBooking(t)
		f.bookings.markBusy(repository.ResourceStaff, testSlotDate, "10:30", "11:30")

		_, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
		})
		assert.ErrorIs(t, err, ErrStaffBusy)
	})

	t.Run("back-to-back staff slot is not a conflict", func(t *testing.T) {
		f := newAssignmentFixture(t)
		booking := f.pendingQRBooking(t)
		// Adjacent booking ends exactly when this slot starts and another
		// begins exactly when it ends; half-open ranges touch but never
		// overlap.
		f.bookings.markBusy(repository.ResourceStaff, testSlotDate, "09:00", "10:00")
		f.bookings.markBusy(repository.ResourceStaff, testSlotDate, "11:00", "12:00")

		_, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
		})
		require.NoError(t, err)
	})

	t.Run("room category mismatch", func(t *testing.T) {
		f := newAssignmentFixture(t)
		booking := f.pendingQRBooking(t)

		roomID := uuid.New()
		f.rooms.rooms[roomID] = &entity.Room{
			Base:     entity.Base{ID: roomID},
			Name:     "Sauna Cabin",
			Category: "sauna",
			Active:   true,
		}

		_, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
			RoomID:  roomID.String(),
		})
		assert.ErrorIs(t, err, ErrRoomIncompatible)
	})

	t.Run("room busy", func(t *testing.T) {
		f := newAssignmentFixture(t)
		booking := f.pendingQRBooking(t)

		roomID := uuid.New()
		f.rooms.rooms[roomID] = &entity.Room{
			Base:     entity.Base{ID: roomID},
			Name:     "Lavender Suite",
			Category: "massage",
			Active:   true,
		}
		f.bookings.markBusy(repository.ResourceRoom, testSlotDate, "10:00", "11:00")

		_, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
			RoomID:  roomID.String(),
		})
		assert.ErrorIs(t, err, ErrRoomBusy)
	})
}

func TestVerifyAndAssignRejections(t *testing.T) {
	t.Run("card booking", func(t *testing.T) {
		f := newAssignmentFixture(t)
		booking := f.committedBooking(t, "stripe")

		_, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
		})
		assert.ErrorIs(t, err, ErrNotManualPayment)
	})

	t.Run("re-verify paid is rejected without side effects", func(t *testing.T) {
		f := newAssignmentFixture(t)
		booking := f.pendingQRBooking(t)

		_, err := f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
		})
		require.NoError(t, err)

		sentBefore := len(f.sender.sent)
		_, err = f.assignment.VerifyAndAssign(context.Background(), booking.ID, &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
		})
		assert.ErrorIs(t, err, ErrAlreadyPaid)
		assert.Len(t, f.sender.sent, sentBefore)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newAssignmentFixture(t)

		_, err := f.assignment.VerifyAndAssign(context.Background(), uuid.New(), &request.VerifyAssignRequest{
			StaffID: f.staffID.String(),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
