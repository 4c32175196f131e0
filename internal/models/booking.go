package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// bookingTransitions lists the statuses reachable from each status.
// completed and cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking keeps a copy of the requester and model details as they were when
// the booking was made. UserID and ModelID are not enforced references.
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"userId"`
	UserName      string        `gorm:"size:100;not null" json:"userName"`
	Company       string        `gorm:"size:100;not null" json:"company"`
	Event         string        `gorm:"size:200;not null" json:"event"`
	EventDate     string        `gorm:"size:20;not null" json:"eventDate"`
	EventTime     string        `gorm:"size:20;not null" json:"eventTime"`
	Location      string        `gorm:"size:200" json:"location,omitempty"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
	ModelID       string        `gorm:"size:36;not null;index" json:"modelId"`
	ModelName     string        `gorm:"size:100;not null" json:"modelName"`
	ModelCategory Category      `gorm:"size:10;not null" json:"modelCategory"`
	Status        BookingStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}
