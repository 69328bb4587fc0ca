package appointment

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

// View is an appointment with its patient and doctor names resolved, which
// is what the schedule table renders and searches over.
type View struct {
	models.Appointment
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}

var listDefinition = listview.Definition[View]{
	SearchFields: func(v View) []string {
		return []string{v.PatientName, v.DoctorName}
	},
	Filters: map[string]listview.Predicate[View]{
		"status": func(v View, value string) bool {
			return strings.EqualFold(v.Status, value)
		},
		"fee_status": func(v View, value string) bool {
			return strings.EqualFold(v.FeeStatus, value)
		},
		"date": func(v View, value string) bool {
			return v.Date == value
		},
	},
}

type Handler struct {
	appointments store.AppointmentStore
	patients     store.PatientStore
	doctors      store.DoctorStore
}

func NewHandler(appointments store.AppointmentStore, patients store.PatientStore, doctors store.DoctorStore) *Handler {
	return &Handler{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments", h.GetAppointments).Methods("GET")
	router.HandleFunc("/appointments", h.CreateAppointment).Methods("POST")
	router.HandleFunc("/appointments/{id}", h.GetAppointment).Methods("GET")
	router.HandleFunc("/appointments/{id}/status", h.UpdateStatus).Methods("PATCH")
	router.HandleFunc("/appointments/{id}/fee", h.UpdateFeeStatus).Methods("PATCH")
	router.HandleFunc("/appointments/{id}", h.DeleteAppointment).Methods("DELETE")
}

func (h *Handler) resolveViews(r *http.Request, appointments []models.Appointment) ([]View, error) {
	patients, err := h.patients.All(r.Context())
	if err != nil {
		return nil, err
	}
	doctors, err := h.doctors.All(r.Context())
	if err != nil {
		return nil, err
	}

	patientNames := make(map[string]string, len(patients))
	for _, p := range patients {
		patientNames[p.ID] = p.Name
	}
	doctorNames := make(map[string]string, len(doctors))
	for _, d := range doctors {
		doctorNames[d.ID] = d.Name
	}

	views := make([]View, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, View{
			Appointment: a,
			PatientName: patientNames[a.PatientID],
			DoctorName:  doctorNames[a.DoctorID],
		})
	}
	return views, nil
}

func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointments.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	views, err := h.resolveViews(r, appointments)
	if err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	page, pageSize := listview.PageParams(query, listview.DefaultPageSize)
	result := listDefinition.View(views, query.Get("q"), listview.FiltersFromQuery(query), page, pageSize)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointments": result.Items,
		"total":        result.Total,
		"page":         result.Page,
		"page_size":    result.PageSize,
		"total_pages":  result.TotalPages,
	})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointment, err := h.appointments.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving appointment", http.StatusInternalServerError)
		return
	}

	views, err := h.resolveViews(r, []models.Appointment{*appointment})
	if err != nil {
		http.Error(w, "Error retrieving appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views[0])
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var bookingRequest struct {
		PatientID string `json:"patient_id"`
		DoctorID  string `json:"doctor_id"`
		Time      string `json:"time"`
		Date      string `json:"date"`
		FeeStatus string `json:"fee_status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&bookingRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if bookingRequest.PatientID == "" || bookingRequest.DoctorID == "" || bookingRequest.Date == "" || bookingRequest.Time == "" {
		http.Error(w, "patient_id, doctor_id, date and time are required", http.StatusBadRequest)
		return
	}

	if _, err := h.patients.Get(r.Context(), bookingRequest.PatientID); err != nil {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}
	if _, err := h.doctors.Get(r.Context(), bookingRequest.DoctorID); err != nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}

	feeStatus := bookingRequest.FeeStatus
	if feeStatus == "" {
		feeStatus = models.FeeStatusUnpaid
	}
	if !utils.IsOneOf(feeStatus, models.FeeStatusPaid, models.FeeStatusUnpaid) {
		http.Error(w, "Invalid fee status", http.StatusBadRequest)
		return
	}

	appointment := models.Appointment{
		PatientID: bookingRequest.PatientID,
		DoctorID:  bookingRequest.DoctorID,
		Time:      bookingRequest.Time,
		Date:      bookingRequest.Date,
		Status:    models.AppointmentScheduled,
		FeeStatus: feeStatus,
	}

	if err := h.appointments.Create(r.Context(), &appointment); err != nil {
		http.Error(w, "Error creating appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appointment)
}

// UpdateStatus moves a scheduled appointment to Completed or Cancelled.
// Both end states are terminal.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var statusRequest struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !utils.IsOneOf(statusRequest.Status, models.AppointmentCompleted, models.AppointmentCancelled) {
		http.Error(w, "Status must be Completed or Cancelled", http.StatusBadRequest)
		return
	}

	appointment, err := h.appointments.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving appointment", http.StatusInternalServerError)
		return
	}

	if appointment.Status != models.AppointmentScheduled {
		http.Error(w, "Only scheduled appointments can change status", http.StatusConflict)
		return
	}

	appointment.Status = statusRequest.Status
	if err := h.appointments.Update(r.Context(), appointment); err != nil {
		http.Error(w, "Error updating appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointment)
}

// UpdateFeeStatus marks an unpaid appointment fee as paid. Paid fees never
// go back to unpaid.
func (h *Handler) UpdateFeeStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointment, err := h.appointments.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving appointment", http.StatusInternalServerError)
		return
	}

	if appointment.FeeStatus == models.FeeStatusPaid {
		http.Error(w, "Fee already paid", http.StatusConflict)
		return
	}

	appointment.FeeStatus = models.FeeStatusPaid
	if err := h.appointments.Update(r.Context(), appointment); err != nil {
		http.Error(w, "Error updating appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointment)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.appointments.Delete(r.Context(), vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting appointment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
