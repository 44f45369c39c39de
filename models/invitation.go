package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// StaffInvitation is an owner-issued, single-use grant letting one
// email address create a STAFF account. Accepted and expired rows are
// kept as an audit trail, never deleted.
type StaffInvitation struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Email        string      `json:"email" gorm:"not null"`
	RestaurantID *uint       `json:"restaurant_id"`
	Restaurant   *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Token        string      `json:"token" gorm:"uniqueIndex;not null"`
	InvitedByID  uint        `json:"invited_by_id" gorm:"not null"`
	InvitedBy    User        `json:"invited_by,omitempty" gorm:"foreignKey:InvitedByID"`
	Role         Role        `json:"role" gorm:"not null;default:'STAFF'"`
	ExpiresAt    time.Time   `json:"expires_at" gorm:"not null"`
	AcceptedAt   *time.Time  `json:"accepted_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewInviteToken returns 48 hex chars of CSPRNG material.
func NewInviteToken() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		panic("invitation token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// IsExpired reports whether the invitation is past its expiry.
func (i *StaffInvitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsAccepted reports whether the invitation has already been consumed.
func (i *StaffInvitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}

// IsValid reports whether the invitation can still be accepted.
func (i *StaffInvitation) IsValid(now time.Time) bool {
	return !i.IsAccepted() && !i.IsExpired(now)
}
