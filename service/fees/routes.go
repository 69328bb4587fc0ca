package fees

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/logger"
	"github.com/medicore-labs/hms-server/service/listview"
	"github.com/medicore-labs/hms-server/service/store"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// FeeView is a fee event with the patient name resolved for the fees table.
type FeeView struct {
	models.PatientFee
	PatientName string `json:"patient_name"`
}

var listDefinition = listview.Definition[FeeView]{
	SearchFields: func(v FeeView) []string {
		return []string{v.PatientName}
	},
	Filters: map[string]listview.Predicate[FeeView]{
		"status": func(v FeeView, value string) bool {
			return v.Status == value
		},
	},
}

type Handler struct {
	fees     store.FeeStore
	patients store.PatientStore
}

func NewHandler(fees store.FeeStore, patients store.PatientStore) *Handler {
	return &Handler{fees: fees, patients: patients}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/fees", h.GetFees).Methods("GET")
	router.HandleFunc("/fees", h.CreateFee).Methods("POST")
	router.HandleFunc("/fees/{patientId}", h.MarkPaid).Methods("PATCH")
	router.HandleFunc("/patients/{id}/fees", h.GetPatientFees).Methods("GET")
}

func (h *Handler) GetFees(w http.ResponseWriter, r *http.Request) {
	fees, err := h.fees.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving fees", http.StatusInternalServerError)
		return
	}

	patients, err := h.patients.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving fees", http.StatusInternalServerError)
		return
	}
	names := make(map[string]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.Name
	}

	views := make([]FeeView, 0, len(fees))
	for _, fee := range fees {
		views = append(views, FeeView{PatientFee: fee, PatientName: names[fee.PatientID]})
	}

	query := r.URL.Query()
	page, pageSize := listview.PageParams(query, listview.DefaultPageSize)
	result := listDefinition.View(views, query.Get("q"), listview.FiltersFromQuery(query), page, pageSize)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"fees":        result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

func (h *Handler) GetPatientFees(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if _, err := h.patients.Get(r.Context(), vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving patient", http.StatusInternalServerError)
		return
	}

	fees, err := h.fees.ForPatient(r.Context(), vars["id"])
	if err != nil {
		http.Error(w, "Error retrieving fees", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"fees": fees,
	})
}

func (h *Handler) CreateFee(w http.ResponseWriter, r *http.Request) {
	var feeRequest struct {
		PatientID string  `json:"patient_id"`
		Amount    float64 `json:"amount"`
		Date      string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&feeRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if feeRequest.PatientID == "" || feeRequest.Amount <= 0 {
		http.Error(w, "patient_id and a positive amount are required", http.StatusBadRequest)
		return
	}

	patient, err := h.patients.Get(r.Context(), feeRequest.PatientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving patient", http.StatusInternalServerError)
		return
	}

	fee := models.PatientFee{
		PatientID: feeRequest.PatientID,
		Amount:    feeRequest.Amount,
		Status:    models.FeePending,
		Date:      feeRequest.Date,
	}
	if err := h.fees.Create(r.Context(), &fee); err != nil {
		http.Error(w, "Error creating fee", http.StatusInternalServerError)
		return
	}

	if patient.Email != "" {
		go func(email, name string, amount float64) {
			if err := sendFeeRequestEmail(email, name, amount); err != nil {
				logger.Log.Warn("sending fee request email", zap.String("patient_id", fee.PatientID), zap.Error(err))
			}
		}(patient.Email, patient.Name, fee.Amount)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(fee)
}

// MarkPaid settles every pending fee of a patient. Fees that are already
// paid stay paid.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["patientId"]

	fees, err := h.fees.ForPatient(r.Context(), patientID)
	if err != nil {
		http.Error(w, "Error retrieving fees", http.StatusInternalServerError)
		return
	}
	if len(fees) == 0 {
		http.Error(w, "No fees for patient", http.StatusNotFound)
		return
	}

	pending := false
	for _, fee := range fees {
		if fee.Status == models.FeePending {
			pending = true
			break
		}
	}
	if !pending {
		http.Error(w, "No pending fees for patient", http.StatusConflict)
		return
	}

	if err := h.fees.UpdateStatus(r.Context(), patientID, models.FeePaid); err != nil {
		http.Error(w, "Error updating fees", http.StatusInternalServerError)
		return
	}

	updated, err := h.fees.ForPatient(r.Context(), patientID)
	if err != nil {
		http.Error(w, "Error retrieving fees", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"fees": updated,
	})
}

// sendFeeRequestEmail notifies a patient that a fee is due
func sendFeeRequestEmail(email, name string, amount float64) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Payment Request")
	m.SetBody("text/plain", fmt.Sprintf("Dear %s,\n\nA payment of %.2f is due. Please settle it at the hospital front desk or through the patient portal.\n\nThank you.", name, amount))

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %v", err)
	}
	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return d.DialAndSend(m)
}
