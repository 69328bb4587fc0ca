package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medicore-labs/hms-server/cmd/models"
)

// MemoryStore keeps one entity collection in insertion order. It backs the
// handler tests and the demo mode; it is safe for concurrent use.
type MemoryStore[T any, PT interface {
	*T
	Entity
}] struct {
	mu    sync.RWMutex
	items []T
}

func NewMemoryStore[T any, PT interface {
	*T
	Entity
}]() *MemoryStore[T, PT] {
	return &MemoryStore[T, PT]{}
}

func (s *MemoryStore[T, PT]) All(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if PT(&s.items[i]).EntityID() == id {
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore[T, PT]) Create(ctx context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if PT(item).EntityID() == "" {
		PT(item).SetEntityID(uuid.NewString())
	}
	s.items = append(s.items, *item)
	return nil
}

func (s *MemoryStore[T, PT]) Update(ctx context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := PT(item).EntityID()
	for i := range s.items {
		if PT(&s.items[i]).EntityID() == id {
			s.items[i] = *item
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore[T, PT]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if PT(&s.items[i]).EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func NewMemoryPatientStore() PatientStore {
	return NewMemoryStore[models.Patient, *models.Patient]()
}

func NewMemoryDoctorStore() DoctorStore {
	return NewMemoryStore[models.Doctor, *models.Doctor]()
}

func NewMemoryAppointmentStore() AppointmentStore {
	return NewMemoryStore[models.Appointment, *models.Appointment]()
}

func NewMemoryProductStore() ProductStore {
	return NewMemoryStore[models.MedicineProduct, *models.MedicineProduct]()
}

// MemoryEducationStore pairs the generic collection with the assignment
// edge.
type MemoryEducationStore struct {
	*MemoryStore[models.EducationContent, *models.EducationContent]
}

func NewMemoryEducationStore() *MemoryEducationStore {
	return &MemoryEducationStore{
		MemoryStore: NewMemoryStore[models.EducationContent, *models.EducationContent](),
	}
}

func (s *MemoryEducationStore) Assign(ctx context.Context, contentID string, patientIDs []string) error {
	content, err := s.Get(ctx, contentID)
	if err != nil {
		return err
	}
	content.AssignedTo = append(content.AssignedTo[:0:0], patientIDs...)
	return s.Update(ctx, content)
}

type MemoryFeeStore struct {
	mu   sync.RWMutex
	fees []models.PatientFee
}

func NewMemoryFeeStore() *MemoryFeeStore {
	return &MemoryFeeStore{}
}

func (s *MemoryFeeStore) All(ctx context.Context) ([]models.PatientFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PatientFee, len(s.fees))
	copy(out, s.fees)
	return out, nil
}

func (s *MemoryFeeStore) ForPatient(ctx context.Context, patientID string) ([]models.PatientFee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PatientFee
	for _, fee := range s.fees {
		if fee.PatientID == patientID {
			out = append(out, fee)
		}
	}
	return out, nil
}

func (s *MemoryFeeStore) Create(ctx context.Context, fee *models.PatientFee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fee.ID = uint(len(s.fees) + 1)
	s.fees = append(s.fees, *fee)
	return nil
}

func (s *MemoryFeeStore) UpdateStatus(ctx context.Context, patientID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := false
	for i := range s.fees {
		if s.fees[i].PatientID == patientID {
			s.fees[i].Status = status
			updated = true
		}
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

type MemoryMessageStore struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{}
}

func (s *MemoryMessageStore) All(ctx context.Context) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (s *MemoryMessageStore) Conversation(ctx context.Context, a, b string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Message
	for _, msg := range s.messages {
		if (msg.SenderID == a && msg.ReceiverID == b) || (msg.SenderID == b && msg.ReceiverID == a) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (s *MemoryMessageStore) Create(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *MemoryMessageStore) MarkRead(ctx context.Context, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].SenderID == from && s.messages[i].ReceiverID == to {
			s.messages[i].Read = true
		}
	}
	return nil
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Username == username {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryUserStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}
