package service

import (
	"context"
	"errors"
	"sync"

	roomserrors "hotelbooking/internal/rooms/errors"
	"hotelbooking/internal/rooms/repository"
	"hotelbooking/internal/rooms/validator"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
)

const MsgRoomHasBookings = "Room has bookings"

// BookingReferences answers whether any booking still points at a room.
type BookingReferences interface {
	ExistsForRoom(ctx context.Context, roomID int64) (bool, error)
}

type RoomService interface {
	Create(ctx context.Context, input *model.RoomCreate) (*model.Room, error)
	GetByID(ctx context.Context, id int64) (*model.Room, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, id int64, input *model.RoomUpdate) (*model.Room, error)
	Delete(ctx context.Context, id int64) error
}

type roomService struct {
	repo      repository.RoomRepository
	bookings  BookingReferences
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	bookings BookingReferences,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, input *model.RoomCreate) (*model.Room, error) {
	s.sanitizeCreate(input)
	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return nil, err
	}

	if err := s.verifyNumberAvailable(ctx, *input.Number, 0); err != nil {
		return nil, err
	}

	room := input.Room()
	if err := s.repo.Create(ctx, room); err != nil {
		if errors.Is(err, roomserrors.ErrDuplicateNumber) {
			return nil, validator.DuplicateNumber()
		}
		s.cfg.Log.Error("Failed to create room", "error", err)
		return nil, apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created successfully",
		"id", room.ID,
		"number", room.Number,
		"status", room.Status,
	)
	return room, nil
}

func (s *roomService) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookup(err, id)
	}
	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error) {
	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Update(ctx context.Context, id int64, input *model.RoomUpdate) (*model.Room, error) {
	s.sanitizeUpdate(input)
	if err := s.validator.ValidateUpdate(input); err != nil {
		s.cfg.Log.Warn("Room update validation failed", "id", id, "error", err)
		return nil, err
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookup(err, id)
	}

	if input.Number != nil && *input.Number != room.Number {
		if err := s.verifyNumberAvailable(ctx, *input.Number, id); err != nil {
			return nil, err
		}
	}

	input.Apply(room)
	if err := s.repo.Update(ctx, id, room); err != nil {
		switch {
		case errors.Is(err, roomserrors.ErrDuplicateNumber):
			return nil, validator.DuplicateNumber()
		case errors.Is(err, roomserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id, "status", room.Status)
	return room, nil
}

// Delete checks for referencing bookings and removes the room in one
// transaction. A concurrent reservation writes the same room document, so
// it either commits first and is seen here or aborts.
func (s *roomService) Delete(ctx context.Context, id int64) error {
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.FindByID(txCtx, id); err != nil {
			return s.translateLookup(err, id)
		}

		referenced, err := s.bookings.ExistsForRoom(txCtx, id)
		if err != nil {
			s.cfg.Log.Error("Failed to check room bookings", "id", id, "error", err)
			return apperrors.Internal("Failed to delete room", err)
		}
		if referenced {
			s.cfg.Log.Warn("Refusing to delete room with bookings", "id", id)
			return apperrors.Conflict(MsgRoomHasBookings)
		}

		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, roomserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Room", id)
			}
			s.cfg.Log.Error("Failed to delete room", "id", id, "error", err)
			return apperrors.Internal("Failed to delete room", err)
		}
		return nil
	})
	if err != nil {
		return apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Room deleted successfully", "id", id)
	return nil
}

func (s *roomService) verifyNumberAvailable(ctx context.Context, number, excludeID int64) error {
	taken, err := s.repo.ExistsByNumber(ctx, number, excludeID)
	if err != nil {
		s.cfg.Log.Error("Failed to check room number", "number", number, "error", err)
		return apperrors.Internal("Failed to check room number", err)
	}
	if taken {
		s.cfg.Log.Warn("Room number already in use", "number", number)
		return validator.DuplicateNumber()
	}
	return nil
}

func (s *roomService) translateLookup(err error, id int64) error {
	if errors.Is(err, roomserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Room", id)
	}
	s.cfg.Log.Error("Failed to retrieve room", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve room", err)
}

func (s *roomService) sanitizeCreate(input *model.RoomCreate) {
	sanitizer.NormalizeStringPtr(input.Type, sanitizer.TrimAndNormalize)
	sanitizer.NormalizeStringPtr(input.Status, sanitizer.NormalizeKeyword)
	sanitizer.NormalizeMoneyPtr(input.PricePerNight)
}

func (s *roomService) sanitizeUpdate(input *model.RoomUpdate) {
	sanitizer.NormalizeStringPtr(input.Type, sanitizer.TrimAndNormalize)
	sanitizer.NormalizeStringPtr(input.Status, sanitizer.NormalizeKeyword)
	sanitizer.NormalizeMoneyPtr(input.PricePerNight)
}
