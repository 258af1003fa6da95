package service

import (
	"context"
	"errors"
	"sync"

	customerserrors "hotelbooking/internal/customers/errors"
	"hotelbooking/internal/customers/repository"
	"hotelbooking/internal/customers/validator"
	"hotelbooking/pkg/config"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/sanitizer"
)

const MsgCustomerHasBookings = "Customer has bookings"

type BookingReferences interface {
	ExistsForCustomer(ctx context.Context, customerID int64) (bool, error)
}

type CustomerService interface {
	Create(ctx context.Context, input *model.CustomerCreate) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error)
	Update(ctx context.Context, id int64, input *model.CustomerUpdate) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
	Hold(ctx context.Context, id int64) error
}

type customerService struct {
	repo      repository.CustomerRepository
	bookings  BookingReferences
	validator *validator.CustomerValidator
	cfg       *config.Config
}

func NewCustomerService(
	repo repository.CustomerRepository,
	bookings BookingReferences,
	validator *validator.CustomerValidator,
	cfg *config.Config,
) CustomerService {
	return &customerService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *customerService) Create(ctx context.Context, input *model.CustomerCreate) (*model.Customer, error) {
	sanitizer.NormalizeStringPtr(input.Name, sanitizer.NormalizeName)
	sanitizer.NormalizeStringPtr(input.Email, sanitizer.NormalizeEmail)
	sanitizer.NormalizeStringPtr(input.PhoneNumber, sanitizer.NormalizePhone)

	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Customer validation failed", "error", err)
		return nil, err
	}
	if err := s.verifyEmailAvailable(ctx, *input.Email, 0); err != nil {
		return nil, err
	}

	customer := input.Customer()
	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, customerserrors.ErrDuplicateEmail) {
			return nil, validator.DuplicateEmail()
		}
		s.cfg.Log.Error("Failed to create customer", "error", err)
		return nil, apperrors.Internal("Failed to create customer", err)
	}

	s.cfg.Log.Info("Customer created successfully", "id", customer.ID)
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Customer", id)
		}
		s.cfg.Log.Error("Failed to retrieve customer", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve customer", err)
	}
	return customer, nil
}

func (s *customerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error) {
	var count int64
	var customers []*model.Customer
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
	}()

	go func() {
		defer wg.Done()
		customers, errFind = s.repo.FindAll(ctx, limit, offset)
	}()

	wg.Wait()
	if err := errors.Join(errCount, errFind); err != nil {
		s.cfg.Log.Error("Failed to list customers", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve customers", err)
	}

	return customers, count, nil
}

func (s *customerService) Update(ctx context.Context, id int64, input *model.CustomerUpdate) (*model.Customer, error) {
	sanitizer.NormalizeStringPtr(input.Name, sanitizer.NormalizeName)
	sanitizer.NormalizeStringPtr(input.Email, sanitizer.NormalizeEmail)
	sanitizer.NormalizeStringPtr(input.PhoneNumber, sanitizer.NormalizePhone)

	if err := s.validator.ValidateUpdate(input); err != nil {
		s.cfg.Log.Warn("Customer update validation failed", "id", id, "error", err)
		return nil, err
	}

	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != customer.Email {
		if err := s.verifyEmailAvailable(ctx, *input.Email, id); err != nil {
			return nil, err
		}
	}

	input.Apply(customer)
	if err := s.repo.Update(ctx, id, customer); err != nil {
		switch {
		case errors.Is(err, customerserrors.ErrDuplicateEmail):
			return nil, validator.DuplicateEmail()
		case errors.Is(err, customerserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Customer", id)
		}
		s.cfg.Log.Error("Failed to update customer", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update customer", err)
	}

	s.cfg.Log.Info("Customer updated successfully", "id", id)
	return customer, nil
}

// Delete checks for referencing bookings and removes the customer in one
// transaction. Booking writes hold the customer inside their own transaction,
// so a booking committed concurrently either is seen here or aborts.
func (s *customerService) Delete(ctx context.Context, id int64) error {
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.GetByID(txCtx, id); err != nil {
			return err
		}

		referenced, err := s.bookings.ExistsForCustomer(txCtx, id)
		if err != nil {
			s.cfg.Log.Error("Failed to check customer bookings", "id", id, "error", err)
			return apperrors.Internal("Failed to delete customer", err)
		}
		if referenced {
			s.cfg.Log.Warn("Refusing to delete customer with bookings", "id", id)
			return apperrors.Conflict(MsgCustomerHasBookings)
		}

		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, customerserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Customer", id)
			}
			s.cfg.Log.Error("Failed to delete customer", "id", id, "error", err)
			return apperrors.Internal("Failed to delete customer", err)
		}
		return nil
	})
	if err != nil {
		return apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Customer deleted successfully", "id", id)
	return nil
}

// Hold marks the customer as written by the caller's transaction. It fails
// with "Customer not found" once the customer is gone.
func (s *customerService) Hold(ctx context.Context, id int64) error {
	if err := s.repo.Hold(ctx, id); err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Customer", id)
		}
		s.cfg.Log.Error("Failed to hold customer", "id", id, "error", err)
		return apperrors.Internal("Failed to hold customer", err)
	}
	return nil
}

func (s *customerService) verifyEmailAvailable(ctx context.Context, email string, excludeID int64) error {
	taken, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		s.cfg.Log.Error("Failed to check customer email", "error", err)
		return apperrors.Internal("Failed to check customer email", err)
	}
	if taken {
		return validator.DuplicateEmail()
	}
	return nil
}
