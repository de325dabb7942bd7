package service

import (
	"context"
	"errors"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var ErrDuplicateBooking = errors.New("booking already exists for this user and class")

// RosterEntry is one distinct (member, class) pair from a trainer's bookings.
// Shaped output: the raw join ids stay internal.
type RosterEntry struct {
	MemberName  string `json:"memberName"`
	MemberEmail string `json:"memberEmail"`
	ClassName   string `json:"className"`
	ClassDate   string `json:"classDate"`
	ClassTime   string `json:"classTime"`
}

// --- Service Interface ---
type BookingService interface {
	CreateBooking(ctx context.Context, userID, classID primitive.ObjectID) (*domain.Booking, error)
	GetBookingsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Booking, error)
	GetTrainerRoster(ctx context.Context, trainerID primitive.ObjectID) ([]RosterEntry, error)
}

// --- Service Implementation ---

// bookingService implements the BookingService interface.
type bookingService struct {
	bookingRepo repository.BookingRepository
	classRepo   repository.ClassRepository
	userRepo    repository.UserRepository
}

// NewBookingService creates a new instance of bookingService.
func NewBookingService(bookingRepo repository.BookingRepository, classRepo repository.ClassRepository, userRepo repository.UserRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		classRepo:   classRepo,
		userRepo:    userRepo,
	}
}

// CreateBooking books a user into a class. Both referents must exist and
// the (user, class) pair must not already hold a booking.
func (s *bookingService) CreateBooking(ctx context.Context, userID, classID primitive.ObjectID) (*domain.Booking, error) {
	if userID == primitive.NilObjectID || classID == primitive.NilObjectID {
		return nil, errors.New("user ID and class ID are required")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	// Early duplicate check for a clear error; the unique index on
	// (userId, classId) remains the authoritative guard under concurrency.
	_, err := s.bookingRepo.GetByUserAndClass(ctx, userID, classID)
	if err == nil {
		return nil, ErrDuplicateBooking
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:  userID,
		ClassID: classID,
		Status:  domain.BookingBooked,
	}

	bookingID, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}
	booking.ID = bookingID
	return booking, nil
}

// GetBookingsForUser lists a user's own bookings, newest first.
func (s *bookingService) GetBookingsForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Booking, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.bookingRepo.GetByUserID(ctx, userID)
}

// GetTrainerRoster returns the distinct (member, class) pairs from bookings
// whose class belongs to the given trainer, joined against the class and
// user collections.
func (s *bookingService) GetTrainerRoster(ctx context.Context, trainerID primitive.ObjectID) ([]RosterEntry, error) {
	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.IsTrainer() {
		return nil, ErrNotATrainer
	}

	classes, err := s.classRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return []RosterEntry{}, nil
	}

	classByID := make(map[primitive.ObjectID]domain.Class, len(classes))
	classIDs := make([]primitive.ObjectID, 0, len(classes))
	for _, c := range classes {
		classByID[c.ID] = c
		classIDs = append(classIDs, c.ID)
	}

	bookings, err := s.bookingRepo.GetByClassIDs(ctx, classIDs)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return []RosterEntry{}, nil
	}

	// Deduplicate (user, class) pairs and collect the member ids to fetch.
	type pair struct{ userID, classID primitive.ObjectID }
	seen := make(map[pair]bool, len(bookings))
	userIDSet := make(map[primitive.ObjectID]bool)
	var pairs []pair
	for _, b := range bookings {
		p := pair{b.UserID, b.ClassID}
		if seen[p] {
			continue
		}
		seen[p] = true
		pairs = append(pairs, p)
		userIDSet[b.UserID] = true
	}

	userIDs := make([]primitive.ObjectID, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	users, err := s.userRepo.GetManyByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[primitive.ObjectID]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	roster := make([]RosterEntry, 0, len(pairs))
	for _, p := range pairs {
		member, ok := userByID[p.userID]
		if !ok {
			continue // booking references a since-deleted user
		}
		class := classByID[p.classID]
		roster = append(roster, RosterEntry{
			MemberName:  member.Name,
			MemberEmail: member.Email,
			ClassName:   class.Name,
			ClassDate:   class.Date.Format("2006-01-02"),
			ClassTime:   class.Time,
		})
	}
	return roster, nil
}
