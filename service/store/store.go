// Package store defines the data-provider interfaces the list and form
// handlers depend on, with interchangeable backing implementations: gorm
// over Postgres for production, an in-memory store for tests/demo, and a
// remote HTTP client for deployments where another service owns the data.
package store

import (
	"context"
	"errors"

	"github.com/medicore-labs/hms-server/cmd/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrRemote   = errors.New("remote provider error")
)

// Entity is any record addressed by an opaque string id. Ids are assigned
// by the backing store at creation time and never reused.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
}

// Store is the CRUD surface shared by every list screen's entity type.
type Store[T any] interface {
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

type (
	PatientStore     = Store[models.Patient]
	DoctorStore      = Store[models.Doctor]
	AppointmentStore = Store[models.Appointment]
	ProductStore     = Store[models.MedicineProduct]
)

// EducationStore adds the replace-only assignment edge to patients.
type EducationStore interface {
	Store[models.EducationContent]
	Assign(ctx context.Context, contentID string, patientIDs []string) error
}

// FeeStore manages fee events, which are keyed by patient rather than by
// their own id.
type FeeStore interface {
	All(ctx context.Context) ([]models.PatientFee, error)
	ForPatient(ctx context.Context, patientID string) ([]models.PatientFee, error)
	Create(ctx context.Context, fee *models.PatientFee) error
	// UpdateStatus sets the status of every fee event of one patient.
	UpdateStatus(ctx context.Context, patientID, status string) error
}

// MessageStore manages direct messages. A conversation is every message
// between two ids, in send order.
type MessageStore interface {
	All(ctx context.Context) ([]models.Message, error)
	Conversation(ctx context.Context, a, b string) ([]models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
	// MarkRead flags everything sent from `from` to `to` as read.
	MarkRead(ctx context.Context, from, to string) error
}

// UserStore manages dashboard operator accounts.
type UserStore interface {
	ByUsername(ctx context.Context, username string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}
