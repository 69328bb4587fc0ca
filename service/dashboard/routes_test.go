package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/service/store"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()

	patients := store.NewMemoryPatientStore()
	doctors := store.NewMemoryDoctorStore()
	appointments := store.NewMemoryAppointmentStore()
	products := store.NewMemoryProductStore()

	for _, name := range []string{"Elizabeth Polson", "John David", "Krishtov Rajan"} {
		p := models.Patient{Name: name}
		if err := patients.Create(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}
	d := models.Doctor{Name: "Dr. Sarah", Specialization: "Pediatrician"}
	if err := doctors.Create(ctx, &d); err != nil {
		t.Fatal(err)
	}
	for _, a := range []models.Appointment{
		{PatientID: "p1", DoctorID: "d1", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusUnpaid},
		{PatientID: "p2", DoctorID: "d1", Status: models.AppointmentCompleted, FeeStatus: models.FeeStatusPaid},
	} {
		a := a
		if err := appointments.Create(ctx, &a); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range []models.MedicineProduct{
		{Name: "Aspirin 300 mg", Category: "ANALGESICS", Stock: 150},
		{Name: "Paracetamol 250mg", Category: "ANALGESICS", Stock: 200},
		{Name: "Amoxicillin 250 mg", Category: "ANTIBIOTICS", Stock: 0},
		{Name: "KZ Soap 250g", Category: "DERMATOLOGY", Stock: 55},
	} {
		p := p
		if err := products.Create(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}

	router := mux.NewRouter()
	NewHandler(patients, doctors, appointments, products).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/dashboard/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var stats DashboardStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}

	want := DashboardStats{
		TotalPatients:         3,
		TotalDoctors:          1,
		TotalAppointments:     2,
		ScheduledAppointments: 1,
		UnpaidFees:            1,
		OutOfStockProducts:    1,
	}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}

	resp, err = http.Get(srv.URL + "/dashboard/top-medicines")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var top struct {
		TopMedicines []MedicineShare `json:"top_medicines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&top); err != nil {
		t.Fatal(err)
	}
	if len(top.TopMedicines) != 3 {
		t.Fatalf("categories = %d, want 3", len(top.TopMedicines))
	}
	if top.TopMedicines[0].Category != "ANALGESICS" || top.TopMedicines[0].Percentage != 50 {
		t.Fatalf("top category = %+v", top.TopMedicines[0])
	}
}

func TestTopMedicinesEmptyInventory(t *testing.T) {
	router := mux.NewRouter()
	NewHandler(
		store.NewMemoryPatientStore(),
		store.NewMemoryDoctorStore(),
		store.NewMemoryAppointmentStore(),
		store.NewMemoryProductStore(),
	).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/dashboard/top-medicines")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var top struct {
		TopMedicines []MedicineShare `json:"top_medicines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&top); err != nil {
		t.Fatal(err)
	}
	if len(top.TopMedicines) != 0 {
		t.Fatalf("expected empty chart, got %+v", top.TopMedicines)
	}
}
