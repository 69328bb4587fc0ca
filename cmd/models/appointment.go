package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"

	FeeStatusPaid   = "Paid"
	FeeStatusUnpaid = "Unpaid"
)

// Appointment references its patient and doctor by id only. The references
// are weak: deleting a patient or doctor does not cascade.
type Appointment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PatientID string    `gorm:"column:patient_id;size:36;not null;index" json:"patient_id"`
	DoctorID  string    `gorm:"column:doctor_id;size:36;not null;index" json:"doctor_id"`
	Time      string    `gorm:"column:time;size:20;not null" json:"time"`
	Date      string    `gorm:"column:date;size:20;not null" json:"date"`
	Status    string    `gorm:"column:status;size:20;not null;default:'Scheduled'" json:"status"`
	FeeStatus string    `gorm:"column:fee_status;size:20;not null;default:'Unpaid'" json:"fee_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a Appointment) EntityID() string       { return a.ID }
func (a *Appointment) SetEntityID(id string) { a.ID = id }
