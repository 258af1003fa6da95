package service

import (
	"context"
	"errors"

	roomserrors "hotelbooking/internal/rooms/errors"
	"hotelbooking/internal/rooms/repository"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
)

// AvailabilityManager keeps a room's status in step with the bookings that
// occupy it. Both calls join the caller's transaction when ctx carries one.
type AvailabilityManager interface {
	// Reserve moves an available room to booked. Any other current status
	// yields RoomUnavailable.
	Reserve(ctx context.Context, roomID int64) error
	// Release marks the room available whatever its current status.
	Release(ctx context.Context, roomID int64) error
}

type availabilityManager struct {
	repo repository.RoomRepository
	cfg  *config.Config
}

func NewAvailabilityManager(repo repository.RoomRepository, cfg *config.Config) AvailabilityManager {
	return &availabilityManager{
		repo: repo,
		cfg:  cfg,
	}
}

func (m *availabilityManager) Reserve(ctx context.Context, roomID int64) error {
	err := m.repo.CompareAndSetStatus(ctx, roomID, model.RoomStatusAvailable, model.RoomStatusBooked)
	if err != nil {
		if errors.Is(err, roomserrors.ErrUnavailable) {
			m.cfg.Log.Warn("Room reservation rejected", "room_id", roomID)
			return apperrors.RoomUnavailable()
		}
		m.cfg.Log.Error("Failed to reserve room", "room_id", roomID, "error", err)
		return apperrors.Internal("Failed to reserve room", err)
	}

	m.cfg.Log.Debug("Room reserved", "room_id", roomID)
	return nil
}

func (m *availabilityManager) Release(ctx context.Context, roomID int64) error {
	if err := m.repo.SetStatus(ctx, roomID, model.RoomStatusAvailable); err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Room", roomID)
		}
		m.cfg.Log.Error("Failed to release room", "room_id", roomID, "error", err)
		return apperrors.Internal("Failed to release room", err)
	}

	m.cfg.Log.Debug("Room released", "room_id", roomID)
	return nil
}
