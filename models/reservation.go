package models

import "time"

// ReservationStatus represents the states of a booking request
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusDeclined  ReservationStatus = "DECLINED"
)

// Wire layouts for the date and time columns. Both sort correctly as
// plain strings, which the dashboard ordering relies on.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Reservation struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	RestaurantID    uint              `json:"restaurant_id" gorm:"not null"`
	Restaurant      Restaurant        `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	CustomerID      uint              `json:"customer_id" gorm:"not null"`
	Customer        User              `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ReservationDate string            `json:"reservation_date" gorm:"not null"`
	ReservationTime string            `json:"reservation_time" gorm:"not null"`
	PartySize       int               `json:"party_size" gorm:"not null"`
	Status          ReservationStatus `json:"status" gorm:"not null;default:'PENDING'"`
	Notes           string            `json:"notes"`
	StatusHistory   []ReservationStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:ReservationID"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SlotTime combines the date and time columns into a local timestamp.
func (r *Reservation) SlotTime() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, r.ReservationDate+" "+r.ReservationTime, time.Local)
}

// ReservationStatusHistory records every status change for audit
type ReservationStatusHistory struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	ReservationID uint              `json:"reservation_id" gorm:"not null"`
	FromStatus    ReservationStatus `json:"from_status"`
	ToStatus      ReservationStatus `json:"to_status" gorm:"not null"`
	ChangedBy     uint              `json:"changed_by"`
	Note          string            `json:"note"`
	CreatedAt     time.Time         `json:"created_at"`
}
