package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus type for booking lifecycle
type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking connects a member to a Class. At most one booking may exist
// per (UserID, ClassID) pair; the bookings collection carries a unique
// compound index enforcing this.
type Booking struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassID  primitive.ObjectID `bson:"classId" json:"classId"` // Link to the Class
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`   // Link to the booking member
	Status   BookingStatus      `bson:"status" json:"status"`
	BookedAt time.Time          `bson:"bookedAt" json:"bookedAt"`
}
