package repository

import (
	"context" // Standard for request-scoped deadlines, cancellation signals, etc.
	"time"

	"studiofit/booking-app/internal/domain" // Import our defined domain models

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer (optional but good practice)
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	// Add more specific errors as needed
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	UpdateMembership(ctx context.Context, id primitive.ObjectID, status domain.MembershipStatus, expiry *time.Time) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	UpdateAvailability(ctx context.Context, trainerID primitive.ObjectID, availability []string) error
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// ClassRepository defines the interface for interacting with class data.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Class, error)
	GetUpcoming(ctx context.Context, from time.Time) ([]domain.Class, error)
	Update(ctx context.Context, class *domain.Class) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BookingRepository defines the interface for interacting with booking data.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error)
	GetByUserAndClass(ctx context.Context, userID, classID primitive.ObjectID) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Booking, error)
	GetByClassIDs(ctx context.Context, classIDs []primitive.ObjectID) ([]domain.Booking, error)
	CountByClassID(ctx context.Context, classID primitive.ObjectID) (int64, error)
}

// PaymentRepository defines the interface for interacting with payment data.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error)
}
