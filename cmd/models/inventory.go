package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicineProduct struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	Type         string    `gorm:"column:type;size:100" json:"type"`
	Price        float64   `gorm:"column:price;not null" json:"price"`
	Stock        int       `gorm:"column:stock;not null;default:0" json:"stock"`
	Unit         string    `gorm:"column:unit;size:50" json:"unit"`
	ExpiryDate   string    `gorm:"column:expiry_date;size:20" json:"expiry_date"`
	Manufacturer string    `gorm:"column:manufacturer;size:255" json:"manufacturer"`
	Category     string    `gorm:"column:category;size:100" json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *MedicineProduct) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m MedicineProduct) EntityID() string       { return m.ID }
func (m *MedicineProduct) SetEntityID(id string) { m.ID = id }
