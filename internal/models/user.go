package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RoleUser = "user"

// User is a registered end-user of the client application.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Password    string    `gorm:"not null" json:"-"`
	FirstName   string    `gorm:"size:50;not null" json:"firstName"`
	LastName    string    `gorm:"size:50;not null" json:"lastName"`
	Email       string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phoneNumber"`
	Age         int       `gorm:"not null" json:"age"`
	Role        string    `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
