package models

import "time"

const (
	FeePending = "pending"
	FeePaid    = "paid"
)

// PatientFee is one fee event for a patient. It has no public id of its
// own; fee operations are keyed by patient id.
type PatientFee struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PatientID string    `gorm:"column:patient_id;size:36;not null;index" json:"patient_id"`
	Amount    float64   `gorm:"column:amount;not null" json:"amount"`
	Status    string    `gorm:"column:status;size:20;not null;default:'pending'" json:"status"`
	Date      string    `gorm:"column:date;size:20" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PatientFee) TableName() string {
	return "patient_fees"
}
