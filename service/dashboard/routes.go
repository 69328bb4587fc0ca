package dashboard

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/service/store"
)

type Handler struct {
	patients     store.PatientStore
	doctors      store.DoctorStore
	appointments store.AppointmentStore
	products     store.ProductStore
}

func NewHandler(patients store.PatientStore, doctors store.DoctorStore, appointments store.AppointmentStore, products store.ProductStore) *Handler {
	return &Handler{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		products:     products,
	}
}

// DashboardStats is the activity overview block at the top of the home
// screen. Counts are live, not cached.
type DashboardStats struct {
	TotalPatients         int `json:"total_patients"`
	TotalDoctors          int `json:"total_doctors"`
	TotalAppointments     int `json:"total_appointments"`
	ScheduledAppointments int `json:"scheduled_appointments"`
	UnpaidFees            int `json:"unpaid_fees"`
	OutOfStockProducts    int `json:"out_of_stock_products"`
}

// MedicineShare is one slice of the top-medicines chart: a product
// category and its share of total inventory in percent.
type MedicineShare struct {
	Category   string `json:"category"`
	Percentage int    `json:"percentage"`
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	dashboardRouter := router.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.HandleFunc("/stats", h.GetDashboardStats).Methods("GET")
	dashboardRouter.HandleFunc("/top-medicines", h.GetTopMedicines).Methods("GET")
}

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats

	patients, err := h.patients.All(r.Context())
	if err != nil {
		http.Error(w, "Error computing stats", http.StatusInternalServerError)
		return
	}
	stats.TotalPatients = len(patients)

	doctors, err := h.doctors.All(r.Context())
	if err != nil {
		http.Error(w, "Error computing stats", http.StatusInternalServerError)
		return
	}
	stats.TotalDoctors = len(doctors)

	appointments, err := h.appointments.All(r.Context())
	if err != nil {
		http.Error(w, "Error computing stats", http.StatusInternalServerError)
		return
	}
	stats.TotalAppointments = len(appointments)
	for _, a := range appointments {
		if a.Status == models.AppointmentScheduled {
			stats.ScheduledAppointments++
		}
		if a.FeeStatus == models.FeeStatusUnpaid {
			stats.UnpaidFees++
		}
	}

	products, err := h.products.All(r.Context())
	if err != nil {
		http.Error(w, "Error computing stats", http.StatusInternalServerError)
		return
	}
	for _, p := range products {
		if p.Stock == 0 {
			stats.OutOfStockProducts++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// GetTopMedicines returns inventory share by product category, largest
// first. Percentages are rounded down, so they may not sum to 100.
func (h *Handler) GetTopMedicines(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving products", http.StatusInternalServerError)
		return
	}

	if len(products) == 0 {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"top_medicines": []MedicineShare{},
		})
		return
	}

	counts := map[string]int{}
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "OTHER"
		}
		counts[strings.ToUpper(category)]++
	}

	shares := make([]MedicineShare, 0, len(counts))
	for category, count := range counts {
		shares = append(shares, MedicineShare{
			Category:   category,
			Percentage: count * 100 / len(products),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percentage != shares[j].Percentage {
			return shares[i].Percentage > shares[j].Percentage
		}
		return shares[i].Category < shares[j].Category
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"top_medicines": shares,
	})
}
