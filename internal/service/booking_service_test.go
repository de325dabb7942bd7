package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiofit/booking-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingFixture struct {
	userRepo    *memUserRepo
	classRepo   *memClassRepo
	bookingRepo *memBookingRepo
	svc         BookingService
}

func newBookingFixture() *bookingFixture {
	userRepo := newMemUserRepo()
	classRepo := newMemClassRepo()
	bookingRepo := newMemBookingRepo()
	return &bookingFixture{
		userRepo:    userRepo,
		classRepo:   classRepo,
		bookingRepo: bookingRepo,
		svc:         NewBookingService(bookingRepo, classRepo, userRepo),
	}
}

func (f *bookingFixture) addUser(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email, PasswordHash: "x", Role: role, IsActive: true}
	if _, err := f.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *bookingFixture) addClass(t *testing.T, name string, trainerID primitive.ObjectID, date time.Time, at string) *domain.Class {
	t.Helper()
	class := &domain.Class{Name: name, TrainerID: trainerID, Date: date, Time: at, DurationMinutes: 60, MaxParticipants: 10}
	if _, err := f.classRepo.Create(context.Background(), class); err != nil {
		t.Fatalf("create class: %v", err)
	}
	return class
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	trainer := f.addUser(t, "T", "t@example.com", domain.RoleTrainer)
	member := f.addUser(t, "M", "m@example.com", domain.RoleMember)
	class := f.addClass(t, "Reformer Basics", trainer.ID, time.Now().AddDate(0, 0, 1), "10:00")

	booking, err := f.svc.CreateBooking(ctx, member.ID, class.ID)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Status != domain.BookingBooked {
		t.Fatalf("expected status booked, got %s", booking.Status)
	}

	// Second booking for the same pair is a duplicate.
	_, err = f.svc.CreateBooking(ctx, member.ID, class.ID)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}
}

func TestCreateBookingMissingReferences(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	trainer := f.addUser(t, "T", "t@example.com", domain.RoleTrainer)
	member := f.addUser(t, "M", "m@example.com", domain.RoleMember)
	class := f.addClass(t, "Mat Flow", trainer.ID, time.Now().AddDate(0, 0, 1), "09:00")

	if _, err := f.svc.CreateBooking(ctx, primitive.NewObjectID(), class.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := f.svc.CreateBooking(ctx, member.ID, primitive.NewObjectID()); !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

func TestTrainerRoster(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	trainer := f.addUser(t, "Tina", "tina@example.com", domain.RoleTrainer)
	otherTrainer := f.addUser(t, "Omar", "omar@example.com", domain.RoleTrainer)
	member := f.addUser(t, "Mia", "mia@example.com", domain.RoleMember)

	class := f.addClass(t, "Reformer Basics", trainer.ID, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "10:00")
	otherClass := f.addClass(t, "Power Mat", otherTrainer.ID, time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), "11:00")

	if _, err := f.svc.CreateBooking(ctx, member.ID, class.ID); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := f.svc.CreateBooking(ctx, member.ID, otherClass.ID); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	roster, err := f.svc.GetTrainerRoster(ctx, trainer.ID)
	if err != nil {
		t.Fatalf("roster error: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected exactly one roster row, got %d", len(roster))
	}
	row := roster[0]
	if row.MemberName != "Mia" || row.ClassName != "Reformer Basics" {
		t.Fatalf("unexpected roster row: %+v", row)
	}
	if row.ClassDate != "2026-09-10" || row.ClassTime != "10:00" {
		t.Fatalf("unexpected roster class slot: %+v", row)
	}
}

func TestTrainerRosterRejectsNonTrainer(t *testing.T) {
	f := newBookingFixture()
	member := f.addUser(t, "M", "m@example.com", domain.RoleMember)

	if _, err := f.svc.GetTrainerRoster(context.Background(), member.ID); !errors.Is(err, ErrNotATrainer) {
		t.Fatalf("expected ErrNotATrainer, got %v", err)
	}
	if _, err := f.svc.GetTrainerRoster(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrTrainerNotFound) {
		t.Fatalf("expected ErrTrainerNotFound, got %v", err)
	}
}

func TestTrainerRosterEmpty(t *testing.T) {
	f := newBookingFixture()
	trainer := f.addUser(t, "T", "t@example.com", domain.RoleTrainer)

	roster, err := f.svc.GetTrainerRoster(context.Background(), trainer.ID)
	if err != nil {
		t.Fatalf("roster error: %v", err)
	}
	if len(roster) != 0 {
		t.Fatalf("expected no roster rows, got %d", len(roster))
	}
}
