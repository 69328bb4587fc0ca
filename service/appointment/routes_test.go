package appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/service/store"
)

type fixture struct {
	srv          *httptest.Server
	appointments store.AppointmentStore
	patientID    map[string]string // name -> id
	doctorID     map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	appointments := store.NewMemoryAppointmentStore()
	patients := store.NewMemoryPatientStore()
	doctors := store.NewMemoryDoctorStore()

	f := &fixture{
		appointments: appointments,
		patientID:    map[string]string{},
		doctorID:     map[string]string{},
	}

	for _, name := range []string{"Elizabeth Polson", "John David", "Krishtov Rajan"} {
		p := models.Patient{Name: name}
		if err := patients.Create(ctx, &p); err != nil {
			t.Fatal(err)
		}
		f.patientID[name] = p.ID
	}
	for _, name := range []string{"Dr. John Paulliston", "Dr. Joel Paulliston"} {
		d := models.Doctor{Name: name, Specialization: "Cardiologist"}
		if err := doctors.Create(ctx, &d); err != nil {
			t.Fatal(err)
		}
		f.doctorID[name] = d.ID
	}

	router := mux.NewRouter()
	NewHandler(appointments, patients, doctors).RegisterRoutes(router)
	f.srv = httptest.NewServer(router)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) book(t *testing.T, patient, doctor, date, feeStatus string) models.Appointment {
	t.Helper()
	a := models.Appointment{
		PatientID: f.patientID[patient],
		DoctorID:  f.doctorID[doctor],
		Time:      "9:30 AM",
		Date:      date,
		Status:    models.AppointmentScheduled,
		FeeStatus: feeStatus,
	}
	if err := f.appointments.Create(context.Background(), &a); err != nil {
		t.Fatal(err)
	}
	return a
}

type listResponse struct {
	Appointments []View `json:"appointments"`
	Total        int    `json:"total"`
	TotalPages   int    `json:"total_pages"`
}

func (f *fixture) list(t *testing.T, params string) listResponse {
	t.Helper()
	resp, err := http.Get(f.srv.URL + "/appointments" + params)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status %d", resp.StatusCode)
	}
	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestSearchMatchesResolvedNames(t *testing.T) {
	f := newFixture(t)
	f.book(t, "Elizabeth Polson", "Dr. John Paulliston", "05/12/2022", models.FeeStatusPaid)
	f.book(t, "John David", "Dr. Joel Paulliston", "05/12/2022", models.FeeStatusUnpaid)

	// Patient name.
	got := f.list(t, "?q=eliz")
	if got.Total != 1 || got.Appointments[0].PatientName != "Elizabeth Polson" {
		t.Fatalf("patient name search failed: %+v", got)
	}

	// Doctor name matches both rows.
	got = f.list(t, "?q=paulliston")
	if got.Total != 2 {
		t.Fatalf("doctor name search: total=%d", got.Total)
	}
}

func TestStatusAndDateFilters(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "Elizabeth Polson", "Dr. John Paulliston", "05/12/2022", models.FeeStatusPaid)
	f.book(t, "John David", "Dr. Joel Paulliston", "06/12/2022", models.FeeStatusUnpaid)

	a.Status = models.AppointmentCancelled
	if err := f.appointments.Update(context.Background(), &a); err != nil {
		t.Fatal(err)
	}

	got := f.list(t, "?status=Cancelled")
	if got.Total != 1 || got.Appointments[0].ID != a.ID {
		t.Fatalf("status filter failed: %+v", got)
	}

	got = f.list(t, "?date=06/12/2022")
	if got.Total != 1 || got.Appointments[0].PatientName != "John David" {
		t.Fatalf("date filter failed: %+v", got)
	}

	// Filters are conjunctive: cancelled on the other date matches nothing.
	got = f.list(t, "?status=Cancelled&date=06/12/2022")
	if got.Total != 0 || got.TotalPages != 0 {
		t.Fatalf("conjunction failed: total=%d pages=%d", got.Total, got.TotalPages)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "Elizabeth Polson", "Dr. John Paulliston", "05/12/2022", models.FeeStatusUnpaid)

	patch := func(body string) int {
		req, _ := http.NewRequest(http.MethodPatch, f.srv.URL+"/appointments/"+a.ID+"/status", strings.NewReader(body))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if code := patch(`{"status": "Scheduled"}`); code != http.StatusBadRequest {
		t.Fatalf("scheduled is not a target state, got %d", code)
	}
	if code := patch(`{"status": "Completed"}`); code != http.StatusOK {
		t.Fatalf("completing failed: %d", code)
	}
	// Completed is terminal.
	if code := patch(`{"status": "Cancelled"}`); code != http.StatusConflict {
		t.Fatalf("expected conflict on terminal state, got %d", code)
	}
}

func TestFeeStatusIsOneWay(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "Elizabeth Polson", "Dr. John Paulliston", "05/12/2022", models.FeeStatusUnpaid)

	req, _ := http.NewRequest(http.MethodPatch, f.srv.URL+"/appointments/"+a.ID+"/fee", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("marking paid failed: %d", resp.StatusCode)
	}

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict on second payment, got %d", resp.StatusCode)
	}
}

func TestBookingUnknownPatientRejected(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Post(f.srv.URL+"/appointments", "application/json",
		strings.NewReader(`{"patient_id": "ghost", "doctor_id": "`+f.doctorID["Dr. John Paulliston"]+`", "date": "05/12/2022", "time": "9:30 AM"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
