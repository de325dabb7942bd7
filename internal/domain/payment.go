package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus type for payment state
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
)

// Payment records a membership payment made by a user. A completed
// payment activates the user's membership until ExpiresAt.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"` // Link to the paying user
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"` // e.g. "card", "cash"
	Status        PaymentStatus      `bson:"status" json:"status"`
	Reference     string             `bson:"reference" json:"reference"` // Receipt reference shown to the member
	PaymentDate   time.Time          `bson:"paymentDate" json:"paymentDate"`
	ExpiresAt     time.Time          `bson:"expiresAt" json:"expiresAt"` // One calendar month after PaymentDate
}
