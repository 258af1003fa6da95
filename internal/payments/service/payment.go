package service

import (
	"context"
	"errors"
	"sync"

	paymentserrors "hotelbooking/internal/payments/errors"
	"hotelbooking/internal/payments/repository"
	"hotelbooking/internal/payments/validator"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
	"hotelbooking/pkg/validation"
)

// BookingChecker reports whether a booking exists.
type BookingChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type PaymentService interface {
	Create(ctx context.Context, input *model.PaymentCreate) (*model.Payment, error)
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Payment, int64, error)
	Update(ctx context.Context, id int64, input *model.PaymentUpdate) (*model.Payment, error)
	Delete(ctx context.Context, id int64) error
}

type paymentService struct {
	repo      repository.PaymentRepository
	bookings  BookingChecker
	validator *validator.PaymentValidator
	cfg       *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookings BookingChecker,
	validator *validator.PaymentValidator,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *paymentService) Create(ctx context.Context, input *model.PaymentCreate) (*model.Payment, error) {
	validation.NormalizeDate(input.PaymentDate)
	sanitizer.NormalizeStringPtr(input.Status, sanitizer.NormalizeKeyword)
	sanitizer.NormalizeMoneyPtr(input.Amount)

	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Payment validation failed", "error", err)
		return nil, err
	}
	if err := s.verifyBooking(ctx, *input.BookingID); err != nil {
		return nil, err
	}

	payment := input.Payment()
	if err := s.repo.Create(ctx, payment); err != nil {
		s.cfg.Log.Error("Failed to create payment", "booking_id", payment.BookingID, "error", err)
		return nil, apperrors.Internal("Failed to create payment", err)
	}

	s.cfg.Log.Info("Payment created successfully",
		"id", payment.ID,
		"booking_id", payment.BookingID,
		"status", payment.Status,
	)
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Payment", id)
		}
		s.cfg.Log.Error("Failed to retrieve payment", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve payment", err)
	}
	return payment, nil
}

func (s *paymentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Payment, int64, error) {
	var count int64
	var payments []*model.Payment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		payments, errFind = s.repo.FindAll(ctx, limit, offset)
	}()

	wg.Wait()
	if err := errors.Join(errCount, errFind); err != nil {
		s.cfg.Log.Error("Failed to list payments", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve payments", err)
	}
	return payments, count, nil
}

func (s *paymentService) Update(ctx context.Context, id int64, input *model.PaymentUpdate) (*model.Payment, error) {
	validation.NormalizeDate(input.PaymentDate)
	sanitizer.NormalizeStringPtr(input.Status, sanitizer.NormalizeKeyword)
	sanitizer.NormalizeMoneyPtr(input.Amount)

	if err := s.validator.ValidateUpdate(input); err != nil {
		s.cfg.Log.Warn("Payment update validation failed", "id", id, "error", err)
		return nil, err
	}
	if input.BookingID != nil {
		if err := s.verifyBooking(ctx, *input.BookingID); err != nil {
			return nil, err
		}
	}

	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.Apply(payment)
	if err := s.repo.Update(ctx, id, payment); err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Payment", id)
		}
		s.cfg.Log.Error("Failed to update payment", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update payment", err)
	}

	s.cfg.Log.Info("Payment updated successfully", "id", id, "status", payment.Status)
	return payment, nil
}

func (s *paymentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Payment", id)
		}
		s.cfg.Log.Error("Failed to delete payment", "id", id, "error", err)
		return apperrors.Internal("Failed to delete payment", err)
	}

	s.cfg.Log.Info("Payment deleted successfully", "id", id)
	return nil
}

func (s *paymentService) verifyBooking(ctx context.Context, bookingID int64) error {
	exists, err := s.bookings.Exists(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to check booking", "booking_id", bookingID, "error", err)
		return apperrors.Internal("Failed to check booking", err)
	}
	if !exists {
		return apperrors.NotFoundWithID("Booking", bookingID)
	}
	return nil
}
