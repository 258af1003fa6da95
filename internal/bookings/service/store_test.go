package service

import (
	"context"
	"sync"

	bookingserrors "hotelbooking/internal/bookings/errors"
	roomserrors "hotelbooking/internal/rooms/errors"
	mongotx "hotelbooking/pkg/db/mongo"
	"hotelbooking/pkg/model"
)

// memStore backs both the room and booking fakes so that a failed
// transaction can roll back writes to either.
type memStore struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	rooms    map[int64]model.Room
	bookings map[int64]model.Booking
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		rooms:    map[int64]model.Room{},
		bookings: map[int64]model.Booking{},
	}
}

func (s *memStore) addRoom(id int64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[id] = model.Room{ID: id, Number: 100 + id, Type: "Double", PricePerNight: 100, Status: status}
}

func (s *memStore) roomStatus(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[id].Status
}

func (s *memStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *memStore) booking(id int64) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

type txKey struct{}

func inTransaction(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func (s *memStore) roomExists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[id]
	return ok
}

func (s *memStore) allBookings() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out
}

func (s *memStore) executeTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	rooms := make(map[int64]model.Room, len(s.rooms))
	for k, v := range s.rooms {
		rooms[k] = v
	}
	bookings := make(map[int64]model.Booking, len(s.bookings))
	for k, v := range s.bookings {
		bookings[k] = v
	}
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.rooms = rooms
		s.bookings = bookings
		s.mu.Unlock()
		return err
	}
	return nil
}

type memRoomRepository struct{ store *memStore }

func (r *memRoomRepository) Create(ctx context.Context, room *model.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepository) FindByID(ctx context.Context, id int64) (*model.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	room, ok := r.store.rooms[id]
	if !ok {
		return nil, roomserrors.ErrNotFound
	}
	return &room, nil
}

func (r *memRoomRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Room, error) {
	return nil, nil
}

func (r *memRoomRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.rooms)), nil
}

func (r *memRoomRepository) ExistsByNumber(ctx context.Context, number int64, excludeID int64) (bool, error) {
	return false, nil
}

func (r *memRoomRepository) Update(ctx context.Context, id int64, room *model.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.rooms[id]; !ok {
		return roomserrors.ErrNotFound
	}
	r.store.rooms[id] = *room
	return nil
}

func (r *memRoomRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.rooms[id]; !ok {
		return roomserrors.ErrNotFound
	}
	delete(r.store.rooms, id)
	return nil
}

func (r *memRoomRepository) CompareAndSetStatus(ctx context.Context, id int64, from, to string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	room, ok := r.store.rooms[id]
	if !ok || room.Status != from {
		return roomserrors.ErrUnavailable
	}
	room.Status = to
	r.store.rooms[id] = room
	return nil
}

func (r *memRoomRepository) SetStatus(ctx context.Context, id int64, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	room, ok := r.store.rooms[id]
	if !ok {
		return roomserrors.ErrNotFound
	}
	room.Status = status
	r.store.rooms[id] = room
	return nil
}

func (r *memRoomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.store.executeTransaction(ctx, fn)
}

type memBookingRepository struct{ store *memStore }

func (r *memBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextID++
	booking.ID = r.store.nextID
	r.store.bookings[booking.ID] = *booking
	return nil
}

func (r *memBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return &b, nil
}

func (r *memBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*model.Booking, 0, len(r.store.bookings))
	for _, b := range r.store.bookings {
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (r *memBookingRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.bookings)), nil
}

func (r *memBookingRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.store.booking(id)
	return ok, nil
}

func (r *memBookingRepository) ExistsForRoom(ctx context.Context, roomID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepository) ExistsForCustomer(ctx context.Context, customerID int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepository) Update(ctx context.Context, id int64, booking *model.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[id]; !ok {
		return bookingserrors.ErrNotFound
	}
	r.store.bookings[id] = *booking
	return nil
}

func (r *memBookingRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[id]; !ok {
		return bookingserrors.ErrNotFound
	}
	delete(r.store.bookings, id)
	return nil
}

func (r *memBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.store.executeTransaction(ctx, fn)
}
