package usecase

import (
	"context"
	"testing"
	"time"

	"spa-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAvailableDates(t *testing.T) {
	f := newTestFixture()
	serviceID := seedService(f, 100.00)

	seedSlot(f, serviceID, entity.SlotStatusAvailable)
	seedSlot(f, serviceID, entity.SlotStatusBooked)

	// A slot in another month must not show up.
	otherID := seedSlot(f, serviceID, entity.SlotStatusAvailable)
	f.slots.slots[otherID].SlotDate = time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)

	availability := NewAvailabilityService(f.repo, testLogger())

	resp, err := availability.GetAvailableDates(context.Background(), serviceID, 2026, 9)
	require.NoError(t, err)

	assert.Equal(t, "2026-09", resp.Month)
	assert.Equal(t, []string{"2026-09-15"}, resp.Dates)
}

func TestGetAvailableDatesValidatesMonth(t *testing.T) {
	f := newTestFixture()
	serviceID := seedService(f, 100.00)

	availability := NewAvailabilityService(f.repo, testLogger())

	_, err := availability.GetAvailableDates(context.Background(), serviceID, 2026, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = availability.GetAvailableDates(context.Background(), serviceID, 2026, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetAvailableSlots(t *testing.T) {
	f := newTestFixture()
	serviceID := seedService(f, 100.00)
	slotID := seedSlot(f, serviceID, entity.SlotStatusAvailable)
	seedSlot(f, serviceID, entity.SlotStatusBlocked)

	availability := NewAvailabilityService(f.repo, testLogger())

	slots, err := availability.GetAvailableSlots(context.Background(), serviceID, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, slotID.String(), slots[0].ID)
	assert.Equal(t, "10:00", slots[0].StartTime)
}

func TestAvailabilityUnknownService(t *testing.T) {
	f := newTestFixture()

	availability := NewAvailabilityService(f.repo, testLogger())

	_, err := availability.GetAvailableSlots(context.Background(), seedService(f, 1), time.Now())
	require.NoError(t, err)

	_, err = availability.GetAvailableDates(context.Background(), uuid.New(), 2026, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
