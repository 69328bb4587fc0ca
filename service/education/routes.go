package education

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

// The education library renders a card grid rather than a table, so its
// default page is larger than the table screens.
const defaultPageSize = 8

var listDefinition = listview.Definition[models.EducationContent]{
	SearchFields: func(c models.EducationContent) []string {
		return []string{c.Title, c.Description, c.Author}
	},
	Filters: map[string]listview.Predicate[models.EducationContent]{
		"category": func(c models.EducationContent, v string) bool {
			return strings.EqualFold(c.Category, v)
		},
		"assigned_to": func(c models.EducationContent, v string) bool {
			for _, id := range c.AssignedTo {
				if id == v {
					return true
				}
			}
			return false
		},
	},
}

type Handler struct {
	contents store.EducationStore
	patients store.PatientStore
}

func NewHandler(contents store.EducationStore, patients store.PatientStore) *Handler {
	return &Handler{contents: contents, patients: patients}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/education", h.GetContents).Methods("GET")
	router.HandleFunc("/education", h.CreateContent).Methods("POST")
	router.HandleFunc("/education/{id}", h.GetContent).Methods("GET")
	router.HandleFunc("/education/{id}", h.UpdateContent).Methods("PUT")
	router.HandleFunc("/education/{id}", h.DeleteContent).Methods("DELETE")
	router.HandleFunc("/education/{id}/assign", h.AssignContent).Methods("POST")
}

func (h *Handler) GetContents(w http.ResponseWriter, r *http.Request) {
	contents, err := h.contents.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving education contents", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	page, pageSize := listview.PageParams(query, defaultPageSize)
	result := listDefinition.View(contents, query.Get("q"), listview.FiltersFromQuery(query), page, pageSize)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"contents":    result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	content, err := h.contents.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving content", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(content)
}

func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var content models.EducationContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if content.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	content.ID = ""
	if err := h.contents.Create(r.Context(), &content); err != nil {
		http.Error(w, "Error creating content", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(content)
}

func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	existing, err := h.contents.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving content", http.StatusInternalServerError)
		return
	}

	var updated models.EducationContent
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if updated.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	// Assignments change only through the assign endpoint; an edit form
	// that omits them must not wipe them.
	updated.AssignedTo = existing.AssignedTo
	if err := h.contents.Update(r.Context(), &updated); err != nil {
		http.Error(w, "Error updating content", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// AssignContent replaces the content's assignment list wholesale. Every
// referenced patient must exist.
func (h *Handler) AssignContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var assignRequest struct {
		PatientIDs []string `json:"patient_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&assignRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, patientID := range assignRequest.PatientIDs {
		if _, err := h.patients.Get(r.Context(), patientID); err != nil {
			http.Error(w, "Patient not found: "+patientID, http.StatusNotFound)
			return
		}
	}

	if err := h.contents.Assign(r.Context(), vars["id"], assignRequest.PatientIDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error assigning content", http.StatusInternalServerError)
		return
	}

	content, err := h.contents.Get(r.Context(), vars["id"])
	if err != nil {
		http.Error(w, "Error retrieving content", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(content)
}

func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.contents.Delete(r.Context(), vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting content", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
