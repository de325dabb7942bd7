package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// MembershipStatus reflects whether a user currently has paid access.
type MembershipStatus string

const (
	MembershipInactive MembershipStatus = "inactive"
	MembershipActive   MembershipStatus = "active"
)

// User represents a user in the system (Member, Trainer or Admin).
// All three roles live in a single collection, distinguished by Role.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Membership (members) ---
	MembershipStatus MembershipStatus `bson:"membershipStatus,omitempty" json:"membershipStatus,omitempty"`
	MembershipExpiry *time.Time       `bson:"membershipExpiry,omitempty" json:"membershipExpiry,omitempty"`

	// --- Trainer-specific ---
	Specialization string   `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Availability   []string `bson:"availability,omitempty" json:"availability,omitempty"`
}

// Helper methods (Optional but can be useful)
func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
