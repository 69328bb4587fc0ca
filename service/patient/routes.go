package patient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/cmd/utils"
	"github.com/medicore-labs/hms-server/service/listview"
	"github.com/medicore-labs/hms-server/service/store"
)

// listDefinition drives the patient list screen: free text matches name
// and email, structured filters narrow by gender and blood group.
var listDefinition = listview.Definition[models.Patient]{
	SearchFields: func(p models.Patient) []string {
		return []string{p.Name, p.Email}
	},
	Filters: map[string]listview.Predicate[models.Patient]{
		"gender": func(p models.Patient, v string) bool {
			return strings.EqualFold(p.Gender, v)
		},
		"blood_group": func(p models.Patient, v string) bool {
			return strings.EqualFold(p.BloodGroup, v)
		},
	},
}

type Handler struct {
	patients store.PatientStore
}

func NewHandler(patients store.PatientStore) *Handler {
	return &Handler{patients: patients}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/patients", h.GetPatients).Methods("GET")
	router.HandleFunc("/patients", h.CreatePatient).Methods("POST")
	router.HandleFunc("/patients/{id}", h.GetPatient).Methods("GET")
	router.HandleFunc("/patients/{id}", h.UpdatePatient).Methods("PUT")
	router.HandleFunc("/patients/{id}", h.DeletePatient).Methods("DELETE")
	router.HandleFunc("/patients/{id}/avatar", h.UploadAvatar).Methods("POST")
}

func (h *Handler) GetPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patients.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving patients", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	page, pageSize := listview.PageParams(query, listview.DefaultPageSize)
	result := listDefinition.View(patients, query.Get("q"), listview.FiltersFromQuery(query), page, pageSize)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"patients":    result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patient, err := h.patients.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient)
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if patient.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if patient.Email != "" && !utils.IsValidEmail(patient.Email) {
		http.Error(w, "Invalid email address", http.StatusBadRequest)
		return
	}
	if patient.PhoneNumber != "" && !utils.IsValidPhone(patient.PhoneNumber) {
		http.Error(w, "Invalid phone number", http.StatusBadRequest)
		return
	}

	patient.ID = ""
	if err := h.patients.Create(r.Context(), &patient); err != nil {
		http.Error(w, "Error creating patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(patient)
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	existing, err := h.patients.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving patient", http.StatusInternalServerError)
		return
	}

	var updated models.Patient
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if updated.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if updated.Email != "" && !utils.IsValidEmail(updated.Email) {
		http.Error(w, "Invalid email address", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := h.patients.Update(r.Context(), &updated); err != nil {
		http.Error(w, "Error updating patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patient, err := h.patients.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving patient", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(utils.MaxImageSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := utils.SaveAvatar(file, header)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if patient.Avatar != "" && patient.Avatar != "/placeholder.svg" {
		utils.DeleteAvatar(patient.Avatar)
	}
	patient.Avatar = url
	if err := h.patients.Update(r.Context(), patient); err != nil {
		http.Error(w, "Error updating patient", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"avatar": url})
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.patients.Delete(r.Context(), vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting patient", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
