package doctor

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

func newTestServer(t *testing.T, doctors ...models.Doctor) *httptest.Server {
	t.Helper()

	st := store.NewMemoryDoctorStore()
	for i := range doctors {
		if err := st.Create(context.Background(), &doctors[i]); err != nil {
			t.Fatalf("seeding doctor: %v", err)
		}
	}

	router := mux.NewRouter()
	NewHandler(st).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type listResponse struct {
	Doctors    []models.Doctor `json:"doctors"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func getList(t *testing.T, url string) listResponse {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return out
}

func TestSearchCoversSpecializationAndQualification(t *testing.T) {
	srv := newTestServer(t,
		models.Doctor{Name: "Dr. John Paulliston", Specialization: "Cardiologist", Qualification: "Doctor's degree in medicine (MBBS)"},
		models.Doctor{Name: "Dr. Sarah", Specialization: "Pediatrician", Qualification: "BPT (Bachelor of Physiotherapy)"},
	)

	got := getList(t, srv.URL+"/doctors?q=cardio")
	if got.Total != 1 || got.Doctors[0].Name != "Dr. John Paulliston" {
		t.Fatalf("specialization search failed: %+v", got)
	}

	got = getList(t, srv.URL+"/doctors?q=physiotherapy")
	if got.Total != 1 || got.Doctors[0].Name != "Dr. Sarah" {
		t.Fatalf("qualification search failed: %+v", got)
	}
}

func TestSpecializationFilterIsConjunctiveWithSearch(t *testing.T) {
	srv := newTestServer(t,
		models.Doctor{Name: "Dr. John Paulliston", Specialization: "Cardiologist"},
		models.Doctor{Name: "Dr. Joel Paulliston", Specialization: "Neurologist"},
	)

	// Both match the search; only one passes the filter as well.
	got := getList(t, srv.URL+"/doctors?q=paulliston&specialization=Neurologist")
	if got.Total != 1 || got.Doctors[0].Name != "Dr. Joel Paulliston" {
		t.Fatalf("conjunction failed: %+v", got)
	}
}

func TestCreateDoctorRequiresSpecialization(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/doctors", "application/json",
		strings.NewReader(`{"name": "Dr. Michael"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
