package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a dashboard operator account. Patients and doctors are managed
// records, not login users.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"column:username;size:100;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	Role         string    `gorm:"column:role;size:50;not null;default:'Admin'" json:"role"`
	Avatar       string    `gorm:"column:avatar;size:255" json:"avatar"`
	Age          int       `gorm:"column:age" json:"age,omitempty"`
	Birthplace   string    `gorm:"column:birthplace;size:255" json:"birthplace,omitempty"`
	Email        string    `gorm:"column:email;size:255" json:"email,omitempty"`
	PhoneNumber  string    `gorm:"column:phone_number;size:20" json:"phone_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
