package store

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/medicore-labs/hms-server/cmd/models"
)

// GormStore is the Postgres-backed provider for one entity type. All reads
// come back in creation order so the list view engine sees a stable
// collection order.
type GormStore[T any, PT interface {
	*T
	Entity
}] struct {
	db *gorm.DB
}

func NewGormStore[T any, PT interface {
	*T
	Entity
}](db *gorm.DB) *GormStore[T, PT] {
	return &GormStore[T, PT]{db: db}
}

func (s *GormStore[T, PT]) All(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GormStore[T, PT]) Create(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *GormStore[T, PT]) Update(ctx context.Context, item *T) error {
	id := PT(item).EntityID()
	var existing T
	err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *GormStore[T, PT]) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func NewGormPatientStore(db *gorm.DB) PatientStore {
	return NewGormStore[models.Patient, *models.Patient](db)
}

func NewGormDoctorStore(db *gorm.DB) DoctorStore {
	return NewGormStore[models.Doctor, *models.Doctor](db)
}

func NewGormAppointmentStore(db *gorm.DB) AppointmentStore {
	return NewGormStore[models.Appointment, *models.Appointment](db)
}

func NewGormProductStore(db *gorm.DB) ProductStore {
	return NewGormStore[models.MedicineProduct, *models.MedicineProduct](db)
}

// GormEducationStore adds the assignment edge on top of the generic CRUD.
type GormEducationStore struct {
	*GormStore[models.EducationContent, *models.EducationContent]
	db *gorm.DB
}

func NewGormEducationStore(db *gorm.DB) *GormEducationStore {
	return &GormEducationStore{
		GormStore: NewGormStore[models.EducationContent, *models.EducationContent](db),
		db:        db,
	}
}

func (s *GormEducationStore) Assign(ctx context.Context, contentID string, patientIDs []string) error {
	result := s.db.WithContext(ctx).Model(&models.EducationContent{}).
		Where("id = ?", contentID).
		Update("assigned_to", pq.StringArray(patientIDs))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormFeeStore struct {
	db *gorm.DB
}

func NewGormFeeStore(db *gorm.DB) *GormFeeStore {
	return &GormFeeStore{db: db}
}

func (s *GormFeeStore) All(ctx context.Context) ([]models.PatientFee, error) {
	var fees []models.PatientFee
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *GormFeeStore) ForPatient(ctx context.Context, patientID string) ([]models.PatientFee, error) {
	var fees []models.PatientFee
	if err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).
		Order("created_at asc").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *GormFeeStore) Create(ctx context.Context, fee *models.PatientFee) error {
	return s.db.WithContext(ctx).Create(fee).Error
}

func (s *GormFeeStore) UpdateStatus(ctx context.Context, patientID, status string) error {
	result := s.db.WithContext(ctx).Model(&models.PatientFee{}).
		Where("patient_id = ?", patientID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormMessageStore struct {
	db *gorm.DB
}

func NewGormMessageStore(db *gorm.DB) *GormMessageStore {
	return &GormMessageStore{db: db}
}

func (s *GormMessageStore) All(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.WithContext(ctx).Order("timestamp asc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormMessageStore) Conversation(ctx context.Context, a, b string) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.WithContext(ctx).Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		a, b, b, a,
	).Order("timestamp asc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormMessageStore) Create(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *GormMessageStore) MarkRead(ctx context.Context, from, to string) error {
	return s.db.WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", from, to, false).
		Update("read", true).Error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormUserStore) Update(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}
