package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	Age         int       `gorm:"column:age;not null" json:"age"`
	Gender      string    `gorm:"column:gender;size:10;not null" json:"gender"`
	BloodGroup  string    `gorm:"column:blood_group;size:10" json:"blood_group"`
	PhoneNumber string    `gorm:"column:phone_number;size:20" json:"phone_number"`
	Email       string    `gorm:"column:email;size:255" json:"email"`
	Avatar      string    `gorm:"column:avatar;size:255" json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p Patient) EntityID() string       { return p.ID }
func (p *Patient) SetEntityID(id string) { p.ID = id }
