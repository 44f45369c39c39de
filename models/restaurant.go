package models

import "time"

// DayHours is one weekday's opening window. Open/close ordering is
// not validated; hours are stored as submitted.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours maps weekday name to hours. Partial weeks are fine; a
// missing day means closed.
type OpeningHours map[string]DayHours

type Restaurant struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	OwnerID      uint         `json:"owner_id" gorm:"uniqueIndex;not null"`
	Owner        User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name         string       `json:"name" gorm:"not null"`
	Address      string       `json:"address"`
	Cuisine      string       `json:"cuisine"`
	Capacity     int          `json:"capacity" gorm:"not null"`
	Description  string       `json:"description"`
	OpeningHours OpeningHours `json:"opening_hours" gorm:"serializer:json"`
	Rating       float64      `json:"rating" gorm:"default:0"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
