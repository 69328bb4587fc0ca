package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Name           string    `gorm:"column:name;size:255;not null" json:"name"`
	Specialization string    `gorm:"column:specialization;size:255;not null" json:"specialization"`
	Qualification  string    `gorm:"column:qualification;size:255" json:"qualification"`
	PhoneNumber    string    `gorm:"column:phone_number;size:20" json:"phone_number"`
	FloorRoom      string    `gorm:"column:floor_room;size:50" json:"floor_room"`
	DayOff         string    `gorm:"column:day_off;size:100" json:"day_off"`
	Gender         string    `gorm:"column:gender;size:10" json:"gender"`
	Age            int       `gorm:"column:age" json:"age"`
	Avatar         string    `gorm:"column:avatar;size:255" json:"avatar"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (d Doctor) EntityID() string       { return d.ID }
func (d *Doctor) SetEntityID(id string) { d.ID = id }
