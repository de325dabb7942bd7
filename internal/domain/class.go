// internal/domain/class.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class represents a single scheduled studio class.
type Class struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Link to the Trainer who runs this class
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Date            time.Time `bson:"date" json:"date"`                       // Calendar day of the class
	Time            string    `bson:"time" json:"time"`                       // Start time within the day, "HH:MM"
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"` // e.g. 45, 60
	MaxParticipants int       `bson:"maxParticipants" json:"maxParticipants"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
