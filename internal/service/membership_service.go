package service

import (
	"context"
	"errors"
	"time"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPaymentValidation = errors.New("payment validation failed")
)

// --- Service Interface ---
type MembershipService interface {
	// RecordMonthlyPayment records a completed payment and activates the
	// user's membership for one calendar month.
	RecordMonthlyPayment(ctx context.Context, userID primitive.ObjectID, amount float64, paymentMethod string) (*domain.Payment, error)
	GetPaymentsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error)
	SetMembership(ctx context.Context, userID primitive.ObjectID, status domain.MembershipStatus, expiry *time.Time) (*domain.User, error)
	BlockUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdateAvailability(ctx context.Context, trainerID primitive.ObjectID, availability []string) (*domain.User, error)
}

// --- Service Implementation ---

// membershipService implements the MembershipService interface.
type membershipService struct {
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
}

// NewMembershipService creates a new instance of membershipService.
func NewMembershipService(userRepo repository.UserRepository, paymentRepo repository.PaymentRepository) MembershipService {
	return &membershipService{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
	}
}

// RecordMonthlyPayment records the payment and then activates the membership.
// The two writes are sequential and non-transactional: a crash between them
// leaves the payment recorded without the membership activated.
func (s *membershipService) RecordMonthlyPayment(ctx context.Context, userID primitive.ObjectID, amount float64, paymentMethod string) (*domain.Payment, error) {
	if amount <= 0 || paymentMethod == "" {
		return nil, ErrPaymentValidation
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	expiresAt := now.AddDate(0, 1, 0) // One calendar month out

	payment := &domain.Payment{
		UserID:        userID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Status:        domain.PaymentCompleted,
		Reference:     uuid.NewString(),
		PaymentDate:   now,
		ExpiresAt:     expiresAt,
	}

	paymentID, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = paymentID

	if err := s.userRepo.UpdateMembership(ctx, userID, domain.MembershipActive, &expiresAt); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetPaymentsForUser lists a user's payment history, newest first.
func (s *membershipService) GetPaymentsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.paymentRepo.GetByUserID(ctx, userID)
}

// SetMembership is the admin's direct membership-field update.
func (s *membershipService) SetMembership(ctx context.Context, userID primitive.ObjectID, status domain.MembershipStatus, expiry *time.Time) (*domain.User, error) {
	if status != domain.MembershipActive && status != domain.MembershipInactive {
		return nil, errors.New("membership status must be active or inactive")
	}

	err := s.userRepo.UpdateMembership(ctx, userID, status, expiry)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.sanitized(ctx, userID)
}

// BlockUser flips isActive off for the target user. The auth middleware
// rejects blocked subjects, so existing tokens stop working immediately.
func (s *membershipService) BlockUser(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	err := s.userRepo.SetActive(ctx, userID, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.sanitized(ctx, userID)
}

// UpdateAvailability replaces a trainer's availability list wholesale.
func (s *membershipService) UpdateAvailability(ctx context.Context, trainerID primitive.ObjectID, availability []string) (*domain.User, error) {
	if availability == nil {
		return nil, errors.New("availability must be an array")
	}

	err := s.userRepo.UpdateAvailability(ctx, trainerID, availability)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return s.sanitized(ctx, trainerID)
}

func (s *membershipService) sanitized(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
