package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotelbooking/internal/bookings/validator"
	"hotelbooking/internal/events"
	roomsservice "hotelbooking/internal/rooms/service"
	roomsvalidator "hotelbooking/internal/rooms/validator"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customerDirectory map[int64]bool

func (c customerDirectory) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if !c[id] {
		return nil, apperrors.NotFoundWithID("Customer", id)
	}
	return &model.Customer{ID: id, Name: "Jane Roe"}, nil
}

func (c customerDirectory) Hold(ctx context.Context, id int64) error {
	if !inTransaction(ctx) {
		return errors.New("customer held outside a transaction")
	}
	if !c[id] {
		return apperrors.NotFoundWithID("Customer", id)
	}
	return nil
}

// vanishingCustomers finds every customer but loses them before the booking
// transaction holds them, as when a delete commits in between.
type vanishingCustomers struct{}

func (vanishingCustomers) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return &model.Customer{ID: id}, nil
}

func (vanishingCustomers) Hold(ctx context.Context, id int64) error {
	return apperrors.NotFoundWithID("Customer", id)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(evt events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store     *memStore
	publisher *recordingPublisher
	rooms     roomsservice.RoomService
	service   BookingService
}

// txCheckingReferences fails the test when the room delete guard runs
// outside the delete's transaction.
type txCheckingReferences struct {
	*memBookingRepository
	t *testing.T
}

func (r txCheckingReferences) ExistsForRoom(ctx context.Context, roomID int64) (bool, error) {
	assert.True(r.t, inTransaction(ctx), "booking lookup for room %d outside a transaction", roomID)
	return r.memBookingRepository.ExistsForRoom(ctx, roomID)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCustomers(t, customerDirectory{1: true, 2: true})
}

func newFixtureWithCustomers(t *testing.T, customers CustomerFinder) *fixture {
	t.Helper()

	cfg := &config.Config{
		Log:          logger.Discard(),
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	store := newMemStore()
	roomRepo := &memRoomRepository{store: store}
	bookingRepo := &memBookingRepository{store: store}
	publisher := &recordingPublisher{}

	references := txCheckingReferences{memBookingRepository: bookingRepo, t: t}
	rooms := roomsservice.NewRoomService(roomRepo, references, roomsvalidator.NewRoomValidator(cfg.Log), cfg)
	svc := NewBookingService(
		bookingRepo,
		rooms,
		customers,
		roomsservice.NewAvailabilityManager(roomRepo, cfg),
		publisher,
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)

	return &fixture{store: store, publisher: publisher, rooms: rooms, service: svc}
}

func ptr[T any](v T) *T { return &v }

func createInput(roomID int64) *model.BookingCreate {
	return &model.BookingCreate{
		RoomID:       ptr(roomID),
		CustomerID:   ptr(int64(1)),
		CheckInDate:  ptr("2024-01-31"),
		CheckOutDate: ptr("2024-02-02"),
		TotalPrice:   ptr(200.0),
	}
}

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, status, appErr.StatusCode())
	assert.Equal(t, message, appErr.Message)
}

func TestCreate_ReservesRoom(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	stored, ok := f.store.booking(booking.ID)
	require.True(t, ok)
	assert.Equal(t, int64(1), stored.RoomID)
	assert.Equal(t, int64(1), stored.CustomerID)
	assert.Equal(t, "2024-01-31", stored.CheckInDate)
	assert.Equal(t, "2024-02-02", stored.CheckOutDate)
	assert.Equal(t, 200.0, stored.TotalPrice)
	assert.Equal(t, model.RoomStatusBooked, f.store.roomStatus(1))
	assert.Equal(t, []string{events.TypeBookingMade}, f.publisher.types())
}

func TestCreate_NormalizesTimestampDates(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	input := createInput(1)
	input.CheckInDate = ptr("2024-01-31T14:00:00Z")
	booking, err := f.service.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", booking.CheckInDate)
}

func TestCreate_RoomNotAvailable(t *testing.T) {
	for _, status := range []string{model.RoomStatusBooked, model.RoomStatusMaintenance} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)
			f.store.addRoom(1, status)

			_, err := f.service.Create(context.Background(), createInput(1))
			requireAppError(t, err, http.StatusBadRequest, "Room not available")
			assert.Equal(t, 0, f.store.bookingCount())
			assert.Equal(t, status, f.store.roomStatus(1))
			assert.Empty(t, f.publisher.types())
		})
	}
}

func TestCreate_MissingReferences(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	_, err := f.service.Create(context.Background(), createInput(99))
	requireAppError(t, err, http.StatusNotFound, "Room not found")

	input := createInput(1)
	input.CustomerID = ptr(int64(99))
	_, err = f.service.Create(context.Background(), input)
	requireAppError(t, err, http.StatusNotFound, "Customer not found")

	assert.Equal(t, 0, f.store.bookingCount())
	assert.Equal(t, model.RoomStatusAvailable, f.store.roomStatus(1))
}

func TestCreate_ValidationRunsFirst(t *testing.T) {
	f := newFixture(t)

	input := createInput(99)
	input.CheckOutDate = ptr("2024-01-31")
	_, err := f.service.Create(context.Background(), input)

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, []string{"The check-out date must be after the check-in date."}, appErr.Fields["check_out_date"])
}

// staleRooms reports every room as available regardless of the store, which
// reproduces a concurrent request taking the room between check and reserve.
type staleRooms struct{}

func (staleRooms) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	return &model.Room{ID: id, Status: model.RoomStatusAvailable}, nil
}

func TestCreate_LostReservationRollsBack(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusBooked)

	svc := f.service.(*bookingService)
	svc.rooms = staleRooms{}

	_, err := svc.Create(context.Background(), createInput(1))
	requireAppError(t, err, http.StatusBadRequest, "Room not available")
	assert.Equal(t, 0, f.store.bookingCount())
	assert.Empty(t, f.publisher.types())
}

func TestCreate_CustomerDeletedBeforeCommitRollsBack(t *testing.T) {
	f := newFixtureWithCustomers(t, vanishingCustomers{})
	f.store.addRoom(1, model.RoomStatusAvailable)

	_, err := f.service.Create(context.Background(), createInput(1))
	requireAppError(t, err, http.StatusNotFound, "Customer not found")
	assert.Equal(t, 0, f.store.bookingCount())
	assert.Equal(t, model.RoomStatusAvailable, f.store.roomStatus(1))
	assert.Empty(t, f.publisher.types())
}

func TestRoomDelete_RefusedWhileBooked(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)
	ctx := context.Background()

	booking, err := f.service.Create(ctx, createInput(1))
	require.NoError(t, err)

	requireAppError(t, f.rooms.Delete(ctx, 1), http.StatusConflict, "Room has bookings")
	assert.True(t, f.store.roomExists(1))

	require.NoError(t, f.service.Delete(ctx, booking.ID))
	require.NoError(t, f.rooms.Delete(ctx, 1))
	assert.False(t, f.store.roomExists(1))
}

func TestRoomDelete_RacingBookingNeverOrphaned(t *testing.T) {
	const rooms = 25

	f := newFixture(t)
	for id := int64(1); id <= rooms; id++ {
		f.store.addRoom(id, model.RoomStatusAvailable)
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	for id := int64(1); id <= rooms; id++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			_, _ = f.service.Create(ctx, createInput(id))
		}(id)
		go func(id int64) {
			defer wg.Done()
			err := f.rooms.Delete(ctx, id)
			if err != nil {
				assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict), err)
			}
		}(id)
	}
	wg.Wait()

	for _, b := range f.store.allBookings() {
		assert.True(t, f.store.roomExists(b.RoomID), "booking %d points at deleted room %d", b.ID, b.RoomID)
		assert.Equal(t, model.RoomStatusBooked, f.store.roomStatus(b.RoomID))
	}
}

func TestCreate_ConcurrentRequestsBookRoomOnce(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Create(context.Background(), createInput(1))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.HasCode(err, apperrors.CodeRoomUnavailable), err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.bookingCount())
}

func TestDelete_ReleasesRoom(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), booking.ID))
	assert.Equal(t, model.RoomStatusAvailable, f.store.roomStatus(1))
	assert.Equal(t, 0, f.store.bookingCount())
	assert.Equal(t, []string{events.TypeBookingMade, events.TypeBookingCanceled}, f.publisher.types())

	err = f.service.Delete(context.Background(), booking.ID)
	requireAppError(t, err, http.StatusNotFound, "Booking not found")
	assert.Len(t, f.publisher.types(), 2)
}

func TestDelete_RoomAlreadyGone(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	f.store.mu.Lock()
	delete(f.store.rooms, 1)
	f.store.mu.Unlock()

	require.NoError(t, f.service.Delete(context.Background(), booking.ID))
	assert.Equal(t, 0, f.store.bookingCount())
}

func TestUpdate_RoomReassignment(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)
	f.store.addRoom(2, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), booking.ID, &model.BookingUpdate{RoomID: ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.RoomID)
	assert.Equal(t, "2024-01-31", updated.CheckInDate)
	assert.Equal(t, model.RoomStatusAvailable, f.store.roomStatus(1))
	assert.Equal(t, model.RoomStatusBooked, f.store.roomStatus(2))
}

func TestUpdate_OtherFieldsLeaveRoomsAlone(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)
	f.store.addRoom(2, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), booking.ID, &model.BookingUpdate{
		CustomerID:   ptr(int64(2)),
		CheckOutDate: ptr("2024-02-05"),
		TotalPrice:   ptr(350.0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.CustomerID)
	assert.Equal(t, "2024-02-05", updated.CheckOutDate)
	assert.Equal(t, model.RoomStatusBooked, f.store.roomStatus(1))
	assert.Equal(t, model.RoomStatusAvailable, f.store.roomStatus(2))
}

func TestUpdate_ResuppliedCurrentRoomIsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	_, err = f.service.Update(context.Background(), booking.ID, &model.BookingUpdate{RoomID: ptr(int64(1))})
	requireAppError(t, err, http.StatusBadRequest, "Room not available")
	assert.Equal(t, model.RoomStatusBooked, f.store.roomStatus(1))
}

func TestUpdate_CheckOutComparedWithStoredCheckIn(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	_, err = f.service.Update(context.Background(), booking.ID, &model.BookingUpdate{CheckOutDate: ptr("2024-01-30")})
	require.Error(t, err)
	assert.True(t, apperrors.AsAppError(err).Fields.Has("check_out_date"))

	stored, _ := f.store.booking(booking.ID)
	assert.Equal(t, "2024-02-02", stored.CheckOutDate)
}

func TestUpdate_ErrorPrecedence(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusBooked)
	f.store.addRoom(2, model.RoomStatusAvailable)

	const missingBooking = int64(404)
	tests := []struct {
		name    string
		input   model.BookingUpdate
		status  int
		message string
	}{
		{
			name:    "missing room wins",
			input:   model.BookingUpdate{RoomID: ptr(int64(99)), CustomerID: ptr(int64(99))},
			status:  http.StatusNotFound,
			message: "Room not found",
		},
		{
			name:    "unavailable room before customer",
			input:   model.BookingUpdate{RoomID: ptr(int64(1)), CustomerID: ptr(int64(99))},
			status:  http.StatusBadRequest,
			message: "Room not available",
		},
		{
			name:    "missing customer before booking",
			input:   model.BookingUpdate{RoomID: ptr(int64(2)), CustomerID: ptr(int64(99))},
			status:  http.StatusNotFound,
			message: "Customer not found",
		},
		{
			name:    "missing booking last",
			input:   model.BookingUpdate{RoomID: ptr(int64(2)), CustomerID: ptr(int64(1))},
			status:  http.StatusNotFound,
			message: "Booking not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Update(context.Background(), missingBooking, &tt.input)
			requireAppError(t, err, tt.status, tt.message)
		})
	}
	assert.Equal(t, model.RoomStatusAvailable, f.store.roomStatus(2))
}

func TestGetAll(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)
	f.store.addRoom(2, model.RoomStatusAvailable)

	for _, room := range []int64{1, 2} {
		_, err := f.service.Create(context.Background(), createInput(room))
		require.NoError(t, err)
	}

	bookings, total, err := f.service.GetAll(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bookings, 2)
}

func TestBookingLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	f.store.addRoom(1, model.RoomStatusAvailable)

	booking, err := f.service.Create(context.Background(), &model.BookingCreate{
		RoomID:       ptr(int64(1)),
		CustomerID:   ptr(int64(1)),
		CheckInDate:  ptr("2024-01-31"),
		CheckOutDate: ptr("2024-02-02"),
		TotalPrice:   ptr(200.00),
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusBooked, f.store.roomStatus(1))

	got, err := f.service.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	require.NoError(t, f.service.Delete(context.Background(), booking.ID))
	assert.Equal(t, model.RoomStatusAvailable, f.store.roomStatus(1))
}
