package usecase

import (
	"context"
	"time"

	"spa-booking/internal/data/entity"
	"spa-booking/internal/data/repository"
	"spa-booking/pkg/database"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/payment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// In-memory collaborators for service tests. Unimplemented methods on the
// embedded interfaces panic, which is the point: a test reaching them is
// exercising a path it did not mean to.

type fakeDraftStore struct {
	drafts map[uuid.UUID]*entity.Draft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[uuid.UUID]*entity.Draft)}
}

func (s *fakeDraftStore) Get(_ context.Context, customerID uuid.UUID) (*entity.Draft, error) {
	return s.drafts[customerID], nil
}

func (s *fakeDraftStore) Save(_ context.Context, draft *entity.Draft) error {
	draft.UpdatedAt = time.Now()
	s.drafts[draft.CustomerID] = draft
	return nil
}

func (s *fakeDraftStore) Delete(_ context.Context, customerID uuid.UUID) error {
	delete(s.drafts, customerID)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	return r.services[id], nil
}

func (r *fakeServiceRepo) FindActiveByID(_ context.Context, _ repository.Querier, id uuid.UUID) (*entity.Service, error) {
	svc := r.services[id]
	if svc == nil || !svc.Active {
		return nil, nil
	}
	return svc, nil
}

func (r *fakeServiceRepo) FindAllActive(context.Context) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, svc := range r.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	staff map[uuid.UUID]*entity.Staff
}

func (r *fakeStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	return r.staff[id], nil
}

type fakeRoomRepo struct {
	rooms map[uuid.UUID]*entity.Room
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.rooms[id], nil
}

type fakeSlotRepo struct {
	slots map[uuid.UUID]*entity.Slot
}

func (r *fakeSlotRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Slot, error) {
	return r.slots[id], nil
}

func (r *fakeSlotRepo) FindByIDForUpdate(_ context.Context, _ repository.Querier, id uuid.UUID) (*entity.Slot, error) {
	return r.slots[id], nil
}

func (r *fakeSlotRepo) FindAvailableByServiceAndDate(_ context.Context, serviceID uuid.UUID, date time.Time) ([]*entity.Slot, error) {
	var out []*entity.Slot
	for _, slot := range r.slots {
		if slot.ServiceID == serviceID && slot.SlotDate.Equal(date) && slot.Status == entity.SlotStatusAvailable {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) FindAvailableDatesForMonth(_ context.Context, serviceID uuid.UUID, monthStart, monthEnd time.Time) ([]time.Time, error) {
	seen := make(map[time.Time]struct{})
	var out []time.Time
	for _, slot := range r.slots {
		if slot.ServiceID != serviceID || slot.Status != entity.SlotStatusAvailable {
			continue
		}
		if slot.SlotDate.Before(monthStart) || !slot.SlotDate.Before(monthEnd) {
			continue
		}
		if _, ok := seen[slot.SlotDate]; ok {
			continue
		}
		seen[slot.SlotDate] = struct{}{}
		out = append(out, slot.SlotDate)
	}
	return out, nil
}

func (r *fakeSlotRepo) UpdateStatus(_ context.Context, _ repository.Querier, slotID uuid.UUID, status entity.SlotStatus) error {
	if slot := r.slots[slotID]; slot != nil {
		slot.Status = status
	}
	return nil
}

func (r *fakeSlotRepo) BindResources(_ context.Context, _ repository.Querier, slotID uuid.UUID, staffID uuid.UUID, roomID *uuid.UUID) error {
	if slot := r.slots[slotID]; slot != nil {
		slot.StaffID = &staffID
		slot.RoomID = roomID
		slot.Status = entity.SlotStatusBooked
	}
	return nil
}

// testSlotDate is the date every seeded slot lands on.
var testSlotDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

// busyInterval marks a resource occupied on a date so conflict probes can
// report collisions with the same half-open comparison the SQL uses.
type busyInterval struct {
	date       time.Time
	start, end string
}

type fakeBookingRepo struct {
	repository.BookingRepository

	bookings map[uuid.UUID]*entity.Booking
	busy     map[repository.ResourceKind][]busyInterval
	// paid tracks the stored row's payment state separately from the shared
	// entity pointer, the way the database row is separate from a loaded
	// copy. MarkPaid's conditional update reads this, not the entity.
	paid map[uuid.UUID]bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		busy:     make(map[repository.ResourceKind][]busyInterval),
		paid:     make(map[uuid.UUID]bool),
	}
}

func (r *fakeBookingRepo) markBusy(kind repository.ResourceKind, date time.Time, start, end string) {
	r.busy[kind] = append(r.busy[kind], busyInterval{date: date, start: start, end: end})
}

func (r *fakeBookingRepo) CreateTx(_ context.Context, _ repository.Querier, booking *entity.Booking) error {
	for _, existing := range r.bookings {
		if existing.SlotID != booking.SlotID {
			continue
		}
		// Only live rows hold the slot claim, mirroring the partial unique
		// index on bookings.slot_id.
		if existing.Status == entity.BookingStatusCancelled || existing.DeletedAt != nil {
			continue
		}
		return repository.ErrSlotTaken
	}
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) FindByRef(_ context.Context, ref string) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if b.BookingRef == ref {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) MarkPaid(_ context.Context, _ repository.Querier, id uuid.UUID, status entity.BookingStatus) (bool, error) {
	b := r.bookings[id]
	if b == nil || r.paid[id] {
		return false, nil
	}
	r.paid[id] = true
	b.PaymentStatus = entity.PaymentStatusPaid
	b.Status = status
	return true, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	if b := r.bookings[id]; b != nil {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) SetCheckoutSession(_ context.Context, id uuid.UUID, sessionID string) error {
	if b := r.bookings[id]; b != nil {
		method := entity.PaymentMethodStripe
		b.PaymentMethod = &method
		b.ExternalSessionID = &sessionID
	}
	return nil
}

func (r *fakeBookingRepo) AttachProof(_ context.Context, id uuid.UUID, proofPath string) error {
	if b := r.bookings[id]; b != nil {
		method := entity.PaymentMethodQR
		b.PaymentMethod = &method
		b.ProofReference = &proofPath
		b.PaymentStatus = entity.PaymentStatusPending
	}
	return nil
}

func (r *fakeBookingRepo) AttachReceipt(_ context.Context, id uuid.UUID, receiptPath string) error {
	if b := r.bookings[id]; b != nil {
		b.DigitalReceipt = &receiptPath
	}
	return nil
}

func (r *fakeBookingRepo) CountActiveResourceOverlaps(_ context.Context, _ repository.Querier, kind repository.ResourceKind, _ uuid.UUID, date time.Time, startTime, endTime string, _ *uuid.UUID) (int64, error) {
	var count int64
	for _, iv := range r.busy[kind] {
		if iv.date.Equal(date) && repository.IntervalsOverlap(iv.start, iv.end, startTime, endTime) {
			count++
		}
	}
	return count, nil
}

type fakeParticipantRepo struct {
	byBooking map[uuid.UUID][]*entity.Participant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byBooking: make(map[uuid.UUID][]*entity.Participant)}
}

func (r *fakeParticipantRepo) CreateBatchTx(_ context.Context, _ repository.Querier, participants []*entity.Participant) error {
	for _, p := range participants {
		p.ID = uuid.New()
		r.byBooking[p.BookingID] = append(r.byBooking[p.BookingID], p)
	}
	return nil
}

func (r *fakeParticipantRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Participant, error) {
	return r.byBooking[bookingID], nil
}

// fakeDB satisfies the pool interface far enough to hand out no-op
// transactions.
type fakeDB struct {
	database.PgxIface
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{}, nil
}

type fakeTx struct {
	pgx.Tx
}

func (tx *fakeTx) Commit(context.Context) error   { return nil }
func (tx *fakeTx) Rollback(context.Context) error { return nil }

type fakeProvider struct {
	created []int64
	session *payment.CheckoutSession
	result  *payment.CheckoutResult
	err     error
}

func (p *fakeProvider) CreateSession(amountMinor int64, _ []string) (*payment.CheckoutSession, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.created = append(p.created, amountMinor)
	return p.session, nil
}

func (p *fakeProvider) ResolveSession(string) (*payment.CheckoutResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

type fakeFiles struct {
	saved map[string][]byte
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{saved: make(map[string][]byte)}
}

func (f *fakeFiles) Save(category, filename string, data []byte) (string, error) {
	path := category + "/" + filename
	f.saved[path] = data
	return path, nil
}

type sentMail struct {
	email string
	kind  mailer.Kind
}

type fakeSender struct {
	sent []sentMail
}

func (s *fakeSender) Send(email, _ string, msg mailer.Message) error {
	s.sent = append(s.sent, sentMail{email: email, kind: msg.Kind})
	return nil
}

type testFixture struct {
	repo      *repository.Repository
	drafts    *fakeDraftStore
	customers *fakeCustomerRepo
	services  *fakeServiceRepo
	slots     *fakeSlotRepo
	staff     *fakeStaffRepo
	rooms     *fakeRoomRepo
	bookings  *fakeBookingRepo
	people    *fakeParticipantRepo
}

func newTestFixture() *testFixture {
	f := &testFixture{
		drafts:    newFakeDraftStore(),
		customers: &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)},
		services:  &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)},
		slots:     &fakeSlotRepo{slots: make(map[uuid.UUID]*entity.Slot)},
		staff:     &fakeStaffRepo{staff: make(map[uuid.UUID]*entity.Staff)},
		rooms:     &fakeRoomRepo{rooms: make(map[uuid.UUID]*entity.Room)},
		bookings:  newFakeBookingRepo(),
		people:    newFakeParticipantRepo(),
	}
	f.repo = &repository.Repository{
		DB:          &fakeDB{},
		Customer:    f.customers,
		Service:     f.services,
		Slot:        f.slots,
		Staff:       f.staff,
		Room:        f.rooms,
		Booking:     f.bookings,
		Participant: f.people,
	}
	return f
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
