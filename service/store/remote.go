package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/medicore-labs/hms-server/cmd/models"
)

// RemoteConfig carries everything the HTTP-backed provider needs. The base
// URL and credential are injected here instead of being embedded in call
// sites.
type RemoteConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// RemoteStore talks to a REST-ish data provider: JSON arrays for list,
// JSON objects for get/create/update. Every call runs through a circuit
// breaker so a dead upstream fails fast instead of hanging each screen.
type RemoteStore[T any, PT interface {
	*T
	Entity
}] struct {
	client  *http.Client
	baseURL string
	token   string
	path    string
	breaker *gobreaker.CircuitBreaker
}

func NewRemoteStore[T any, PT interface {
	*T
	Entity
}](cfg RemoteConfig, path string) *RemoteStore[T, PT] {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &RemoteStore[T, PT]{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		path:    path,
		breaker: newProviderBreaker(path),
	}
}

func newProviderBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

func (s *RemoteStore[T, PT]) do(ctx context.Context, method, url string, body, out interface{}) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if s.token != "" {
			req.Header.Set("Authorization", "Bearer "+s.token)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %s returned %d", ErrRemote, url, resp.StatusCode)
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("%w: decoding %s: %v", ErrRemote, url, err)
			}
		}
		return nil, nil
	})
	return err
}

func (s *RemoteStore[T, PT]) All(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.do(ctx, http.MethodGet, s.baseURL+s.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RemoteStore[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := s.do(ctx, http.MethodGet, s.baseURL+s.path+"/"+id, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *RemoteStore[T, PT]) Create(ctx context.Context, item *T) error {
	return s.do(ctx, http.MethodPost, s.baseURL+s.path, item, item)
}

func (s *RemoteStore[T, PT]) Update(ctx context.Context, item *T) error {
	id := PT(item).EntityID()
	return s.do(ctx, http.MethodPut, s.baseURL+s.path+"/"+id, item, item)
}

func (s *RemoteStore[T, PT]) Delete(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, s.baseURL+s.path+"/"+id, nil, nil)
}

func NewRemotePatientStore(cfg RemoteConfig) PatientStore {
	return NewRemoteStore[models.Patient, *models.Patient](cfg, "/patients")
}

func NewRemoteDoctorStore(cfg RemoteConfig) DoctorStore {
	return NewRemoteStore[models.Doctor, *models.Doctor](cfg, "/doctors")
}

func NewRemoteAppointmentStore(cfg RemoteConfig) AppointmentStore {
	return NewRemoteStore[models.Appointment, *models.Appointment](cfg, "/appointments")
}

func NewRemoteProductStore(cfg RemoteConfig) ProductStore {
	return NewRemoteStore[models.MedicineProduct, *models.MedicineProduct](cfg, "/products")
}
