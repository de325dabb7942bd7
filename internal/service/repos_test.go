package service

// In-memory repository fakes shared by the service tests.

import (
	"context"
	"sort"
	"time"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateMembership(ctx context.Context, id primitive.ObjectID, status domain.MembershipStatus, expiry *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.MembershipStatus = status
	if expiry != nil {
		e := *expiry
		u.MembershipExpiry = &e
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memUserRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memUserRepo) UpdateAvailability(ctx context.Context, trainerID primitive.ObjectID, availability []string) error {
	u, ok := r.users[trainerID]
	if !ok || u.Role != domain.RoleTrainer {
		return repository.ErrNotFound
	}
	u.Availability = availability
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

type memClassRepo struct {
	classes map[primitive.ObjectID]*domain.Class
}

func newMemClassRepo() *memClassRepo {
	return &memClassRepo{classes: make(map[primitive.ObjectID]*domain.Class)}
}

func (r *memClassRepo) Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error) {
	class.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now
	copied := *class
	r.classes[class.ID] = &copied
	return class.ID, nil
}

func (r *memClassRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memClassRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Class, error) {
	var out []domain.Class
	for _, c := range r.classes {
		if c.TrainerID == trainerID {
			out = append(out, *c)
		}
	}
	sortClasses(out)
	return out, nil
}

func (r *memClassRepo) GetUpcoming(ctx context.Context, from time.Time) ([]domain.Class, error) {
	var out []domain.Class
	for _, c := range r.classes {
		if !c.Date.Before(from) {
			out = append(out, *c)
		}
	}
	sortClasses(out)
	return out, nil
}

func sortClasses(classes []domain.Class) {
	sort.Slice(classes, func(i, j int) bool {
		if !classes[i].Date.Equal(classes[j].Date) {
			return classes[i].Date.Before(classes[j].Date)
		}
		return classes[i].Time < classes[j].Time
	})
}

func (r *memClassRepo) Update(ctx context.Context, class *domain.Class) error {
	if _, ok := r.classes[class.ID]; !ok {
		return repository.ErrNotFound
	}
	class.UpdatedAt = time.Now().UTC()
	copied := *class
	r.classes[class.ID] = &copied
	return nil
}

func (r *memClassRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.classes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.classes, id)
	return nil
}

type memBookingRepo struct {
	bookings []*domain.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{}
}

func (r *memBookingRepo) Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error) {
	for _, b := range r.bookings {
		if b.UserID == booking.UserID && b.ClassID == booking.ClassID {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	booking.ID = primitive.NewObjectID()
	booking.BookedAt = time.Now().UTC()
	if booking.Status == "" {
		booking.Status = domain.BookingBooked
	}
	copied := *booking
	r.bookings = append(r.bookings, &copied)
	return booking.ID, nil
}

func (r *memBookingRepo) GetByUserAndClass(ctx context.Context, userID, classID primitive.ObjectID) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.UserID == userID && b.ClassID == classID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) GetByClassIDs(ctx context.Context, classIDs []primitive.ObjectID) ([]domain.Booking, error) {
	wanted := make(map[primitive.ObjectID]bool, len(classIDs))
	for _, id := range classIDs {
		wanted[id] = true
	}
	var out []domain.Booking
	for _, b := range r.bookings {
		if wanted[b.ClassID] {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) CountByClassID(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.ClassID == classID {
			n++
		}
	}
	return n, nil
}

type memPaymentRepo struct {
	payments []*domain.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{}
}

func (r *memPaymentRepo) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	payment.ID = primitive.NewObjectID()
	copied := *payment
	r.payments = append(r.payments, &copied)
	return payment.ID, nil
}

func (r *memPaymentRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}
