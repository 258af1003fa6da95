package service

import (
	"context"
	"errors"
	"sync"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/bookings/validator"
	"hotelbooking/internal/events"
	roomsservice "hotelbooking/internal/rooms/service"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/middleware"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
	"hotelbooking/pkg/validation"
)

// RoomFinder resolves a room or fails with "Room not found".
type RoomFinder interface {
	GetByID(ctx context.Context, id int64) (*model.Room, error)
}

// CustomerFinder resolves a customer or fails with "Customer not found".
// Hold writes the customer inside the booking's transaction so that a
// concurrent customer delete cannot commit alongside it.
type CustomerFinder interface {
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Hold(ctx context.Context, id int64) error
}

type BookingService interface {
	Create(ctx context.Context, input *model.BookingCreate) (*model.Booking, error)
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id int64, input *model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type bookingService struct {
	repo         repository.BookingRepository
	rooms        RoomFinder
	customers    CustomerFinder
	availability roomsservice.AvailabilityManager
	events       events.Publisher
	validator    *validator.BookingValidator
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	rooms RoomFinder,
	customers CustomerFinder,
	availability roomsservice.AvailabilityManager,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		rooms:        rooms,
		customers:    customers,
		availability: availability,
		events:       publisher,
		validator:    validator,
		cfg:          cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, input *model.BookingCreate) (*model.Booking, error) {
	s.sanitizeCreate(input)
	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, err
	}

	if _, err := s.resolveAvailableRoom(ctx, *input.RoomID); err != nil {
		return nil, err
	}
	if _, err := s.customers.GetByID(ctx, *input.CustomerID); err != nil {
		return nil, err
	}

	booking := input.Booking()
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		if err := s.availability.Reserve(txCtx, booking.RoomID); err != nil {
			return err
		}
		return s.customers.Hold(txCtx, booking.CustomerID)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return nil, asAppError(err, "Failed to create booking")
	}

	s.events.Publish(events.NewBookingMade(booking, middleware.RequestIDFromContext(ctx)))

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"customer_id", booking.CustomerID,
		"check_in_date", booking.CheckInDate,
		"check_out_date", booking.CheckOutDate,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// Update resolves its dependencies in a fixed order so that the first missing
// one decides the error: the new room, its availability, the new customer,
// then the booking itself.
func (s *bookingService) Update(ctx context.Context, id int64, input *model.BookingUpdate) (*model.Booking, error) {
	s.sanitizeUpdate(input)
	if err := s.validator.ValidateUpdate(input); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, err
	}

	if input.RoomID != nil {
		if _, err := s.resolveAvailableRoom(ctx, *input.RoomID); err != nil {
			return nil, err
		}
	}
	if input.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousRoomID := booking.RoomID
	input.Apply(booking)
	if err := s.validator.ValidateStay(booking); err != nil {
		return nil, err
	}
	roomChanged := booking.RoomID != previousRoomID

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, id, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		if roomChanged {
			if err := s.availability.Reserve(txCtx, booking.RoomID); err != nil {
				return err
			}
			if err := s.releaseIfPresent(txCtx, previousRoomID); err != nil {
				return err
			}
		}
		if input.CustomerID != nil {
			return s.customers.Hold(txCtx, booking.CustomerID)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, asAppError(err, "Failed to update booking")
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", id,
		"room_id", booking.RoomID,
		"previous_room_id", previousRoomID,
	)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id int64) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		room, err := s.rooms.GetByID(txCtx, booking.RoomID)
		switch {
		case apperrors.HasCode(err, apperrors.CodeNotFound):
			// room already gone
		case err != nil:
			return err
		case !room.IsAvailable():
			if err := s.availability.Release(txCtx, room.ID); err != nil {
				return err
			}
		}

		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return asAppError(err, "Failed to delete booking")
	}

	s.events.Publish(events.NewBookingCanceled(booking, middleware.RequestIDFromContext(ctx)))

	s.cfg.Log.Info("Booking deleted successfully", "id", id, "room_id", booking.RoomID)
	return nil
}

func (s *bookingService) resolveAvailableRoom(ctx context.Context, roomID int64) (*model.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsAvailable() {
		s.cfg.Log.Warn("Room not available for booking", "room_id", roomID, "status", room.Status)
		return nil, apperrors.RoomUnavailable()
	}
	return room, nil
}

// releaseIfPresent frees the room a booking moved away from. A room that no
// longer exists has nothing to release.
func (s *bookingService) releaseIfPresent(ctx context.Context, roomID int64) error {
	err := s.availability.Release(ctx, roomID)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		s.cfg.Log.Warn("Previous room missing on reassignment", "room_id", roomID)
		return nil
	}
	return err
}

func (s *bookingService) sanitizeCreate(input *model.BookingCreate) {
	validation.NormalizeDate(input.CheckInDate)
	validation.NormalizeDate(input.CheckOutDate)
	sanitizer.NormalizeMoneyPtr(input.TotalPrice)
}

func (s *bookingService) sanitizeUpdate(input *model.BookingUpdate) {
	validation.NormalizeDate(input.CheckInDate)
	validation.NormalizeDate(input.CheckOutDate)
	sanitizer.NormalizeMoneyPtr(input.TotalPrice)
}

func asAppError(err error, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal(message, err)
}
