package doctor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/service/listview"
	"github.com/medicore-labs/hms-server/service/store"
)

// Free text covers name, specialization and qualification so "cardio"
// finds cardiologists without a structured filter.
var listDefinition = listview.Definition[models.Doctor]{
	SearchFields: func(d models.Doctor) []string {
		return []string{d.Name, d.Specialization, d.Qualification}
	},
	Filters: map[string]listview.Predicate[models.Doctor]{
		"specialization": func(d models.Doctor, v string) bool {
			return strings.EqualFold(d.Specialization, v)
		},
		"gender": func(d models.Doctor, v string) bool {
			return strings.EqualFold(d.Gender, v)
		},
	},
}

type Handler struct {
	doctors store.DoctorStore
}

func NewHandler(doctors store.DoctorStore) *Handler {
	return &Handler{doctors: doctors}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/doctors", h.GetDoctors).Methods("GET")
	router.HandleFunc("/doctors", h.CreateDoctor).Methods("POST")
	router.HandleFunc("/doctors/{id}", h.GetDoctor).Methods("GET")
	router.HandleFunc("/doctors/{id}", h.UpdateDoctor).Methods("PUT")
	router.HandleFunc("/doctors/{id}", h.DeleteDoctor).Methods("DELETE")
}

func (h *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctors.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving doctors", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	page, pageSize := listview.PageParams(query, listview.DefaultPageSize)
	result := listDefinition.View(doctors, query.Get("q"), listview.FiltersFromQuery(query), page, pageSize)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"doctors":     result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctor, err := h.doctors.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Doctor not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving doctor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doctor)
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if doctor.Name == "" || doctor.Specialization == "" {
		http.Error(w, "Name and specialization are required", http.StatusBadRequest)
		return
	}

	doctor.ID = ""
	if err := h.doctors.Create(r.Context(), &doctor); err != nil {
		http.Error(w, "Error creating doctor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doctor)
}

func (h *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	existing, err := h.doctors.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Doctor not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving doctor", http.StatusInternalServerError)
		return
	}

	var updated models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if updated.Name == "" || updated.Specialization == "" {
		http.Error(w, "Name and specialization are required", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := h.doctors.Update(r.Context(), &updated); err != nil {
		http.Error(w, "Error updating doctor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.doctors.Delete(r.Context(), vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Doctor not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting doctor", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
