package service

import (
	"context"
	"errors"
	"time"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrClassNotFound    = errors.New("class not found")
	ErrTrainerNotFound  = errors.New("trainer not found")
	ErrClassHasBookings = errors.New("class has bookings and cannot be deleted")
	ErrClassValidation  = errors.New("class validation failed")
	ErrNotATrainer      = errors.New("referenced user is not a trainer")
)

// ClassInput carries the mutable fields of a class.
type ClassInput struct {
	Name            string
	Description     string
	Date            time.Time
	Time            string
	DurationMinutes int
	MaxParticipants int
	TrainerID       primitive.ObjectID
}

// --- Service Interface ---
type ClassService interface {
	CreateClass(ctx context.Context, input ClassInput) (*domain.Class, error)
	UpdateClass(ctx context.Context, classID primitive.ObjectID, input ClassInput) (*domain.Class, error)
	DeleteClass(ctx context.Context, classID primitive.ObjectID) error
	GetSchedule(ctx context.Context) ([]domain.Class, error)
}

// --- Service Implementation ---

// classService implements the ClassService interface.
type classService struct {
	classRepo   repository.ClassRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

// NewClassService creates a new instance of classService.
func NewClassService(classRepo repository.ClassRepository, bookingRepo repository.BookingRepository, userRepo repository.UserRepository) ClassService {
	return &classService{
		classRepo:   classRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// CreateClass handles the creation of a new class. The trainer reference
// must resolve to an existing user with the trainer role.
func (s *classService) CreateClass(ctx context.Context, input ClassInput) (*domain.Class, error) {
	if input.Name == "" {
		return nil, ErrClassValidation
	}
	if input.TrainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required to create a class")
	}

	if err := s.checkTrainer(ctx, input.TrainerID); err != nil {
		return nil, err
	}

	class := &domain.Class{
		TrainerID:       input.TrainerID,
		Name:            input.Name,
		Description:     input.Description,
		Date:            input.Date,
		Time:            input.Time,
		DurationMinutes: input.DurationMinutes,
		MaxParticipants: input.MaxParticipants,
	}

	classID, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, err
	}
	class.ID = classID
	// Fetch again so CreatedAt/UpdatedAt set by the repository come back populated.
	return s.classRepo.GetByID(ctx, classID)
}

// UpdateClass handles updating an existing class. A trainer reference in
// the payload is re-validated; UpdatedAt is always refreshed.
func (s *classService) UpdateClass(ctx context.Context, classID primitive.ObjectID, input ClassInput) (*domain.Class, error) {
	if input.Name == "" {
		return nil, ErrClassValidation
	}

	existing, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	if input.TrainerID != primitive.NilObjectID && input.TrainerID != existing.TrainerID {
		if err := s.checkTrainer(ctx, input.TrainerID); err != nil {
			return nil, err
		}
		existing.TrainerID = input.TrainerID
	}

	existing.Name = input.Name
	existing.Description = input.Description
	if !input.Date.IsZero() {
		existing.Date = input.Date
	}
	if input.Time != "" {
		existing.Time = input.Time
	}
	if input.DurationMinutes > 0 {
		existing.DurationMinutes = input.DurationMinutes
	}
	if input.MaxParticipants > 0 {
		existing.MaxParticipants = input.MaxParticipants
	}

	err = s.classRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return s.classRepo.GetByID(ctx, classID)
}

// DeleteClass removes a class, refusing while any booking references it.
func (s *classService) DeleteClass(ctx context.Context, classID primitive.ObjectID) error {
	if classID == primitive.NilObjectID {
		return errors.New("class ID is required")
	}

	count, err := s.bookingRepo.CountByClassID(ctx, classID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrClassHasBookings
	}

	err = s.classRepo.Delete(ctx, classID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassNotFound
	}
	return err
}

// GetSchedule returns all classes on or after the start of the current day,
// sorted ascending by (date, time). Date is day-granular; the start time
// lives in the separate Time field.
func (s *classService) GetSchedule(ctx context.Context) ([]domain.Class, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.classRepo.GetUpcoming(ctx, startOfDay)
}

// checkTrainer verifies the id resolves to an existing user with the trainer role.
func (s *classService) checkTrainer(ctx context.Context, trainerID primitive.ObjectID) error {
	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}
	if !trainer.IsTrainer() {
		return ErrNotATrainer
	}
	return nil
}
