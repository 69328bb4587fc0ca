package patient

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

func newTestServer(t *testing.T, patients ...models.Patient) (*httptest.Server, store.PatientStore) {
	t.Helper()

	st := store.NewMemoryPatientStore()
	for i := range patients {
		if err := st.Create(context.Background(), &patients[i]); err != nil {
			t.Fatalf("seeding patient: %v", err)
		}
	}

	router := mux.NewRouter()
	NewHandler(st).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

type listResponse struct {
	Patients   []models.Patient `json:"patients"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
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

func TestGetPatientsSearch(t *testing.T) {
	srv, _ := newTestServer(t,
		models.Patient{Name: "Elizabeth Polson", Email: "elizabethpolson@hotmail.com", Gender: "Female"},
		models.Patient{Name: "John David", Email: "davidjohn22@gmail.com", Gender: "Male"},
		models.Patient{Name: "Krishtov Rajan", Email: "krishtovrajan2@gmail.com", Gender: "Male"},
	)

	got := getList(t, srv.URL+"/patients?q=ELIZ")
	if got.Total != 1 || len(got.Patients) != 1 {
		t.Fatalf("expected 1 match, got total=%d items=%d", got.Total, len(got.Patients))
	}
	if got.Patients[0].Name != "Elizabeth Polson" {
		t.Errorf("unexpected match: %q", got.Patients[0].Name)
	}

	// Search also covers the email field.
	got = getList(t, srv.URL+"/patients?q=davidjohn22")
	if got.Total != 1 || got.Patients[0].Name != "John David" {
		t.Fatalf("email search failed: %+v", got)
	}
}

func TestGetPatientsFilterAndUnknownFilter(t *testing.T) {
	srv, _ := newTestServer(t,
		models.Patient{Name: "Elizabeth Polson", Gender: "Female"},
		models.Patient{Name: "John David", Gender: "Male"},
	)

	got := getList(t, srv.URL+"/patients?gender=female")
	if got.Total != 1 || got.Patients[0].Name != "Elizabeth Polson" {
		t.Fatalf("gender filter failed: %+v", got)
	}

	// Unknown filter names do not restrict the result.
	got = getList(t, srv.URL+"/patients?favourite_colour=blue")
	if got.Total != 2 {
		t.Fatalf("unknown filter should be ignored, got total=%d", got.Total)
	}
}

func TestGetPatientsPagination(t *testing.T) {
	patients := make([]models.Patient, 7)
	for i := range patients {
		patients[i] = models.Patient{Name: "Patient " + string(rune('A'+i))}
	}
	srv, _ := newTestServer(t, patients...)

	page1 := getList(t, srv.URL+"/patients?page=1&page_size=5")
	if page1.TotalPages != 2 || len(page1.Patients) != 5 {
		t.Fatalf("page 1: total_pages=%d items=%d", page1.TotalPages, len(page1.Patients))
	}
	page2 := getList(t, srv.URL+"/patients?page=2&page_size=5")
	if len(page2.Patients) != 2 {
		t.Fatalf("page 2: items=%d", len(page2.Patients))
	}

	// A page past the end is empty, not an error.
	page3 := getList(t, srv.URL+"/patients?page=3&page_size=5")
	if len(page3.Patients) != 0 || page3.TotalPages != 2 {
		t.Fatalf("page 3: items=%d total_pages=%d", len(page3.Patients), page3.TotalPages)
	}
}

func TestCreatePatientValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/patients", "application/json",
		strings.NewReader(`{"age": 30}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/patients", "application/json",
		strings.NewReader(`{"name": "Jane", "email": "not-an-email"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", resp.StatusCode)
	}
}

func TestCreateAndGetPatient(t *testing.T) {
	srv, st := newTestServer(t)

	resp, err := http.Post(srv.URL+"/patients", "application/json",
		strings.NewReader(`{"name": "Elizabeth Polson", "age": 32, "gender": "Female", "email": "elizabethpolson@hotmail.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created models.Patient
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}

	stored, err := st.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("stored patient not found: %v", err)
	}
	if stored.Name != "Elizabeth Polson" {
		t.Errorf("stored name = %q", stored.Name)
	}
}

func TestGetPatientNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/patients/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeletePatient(t *testing.T) {
	srv, st := newTestServer(t, models.Patient{Name: "John David"})

	all, err := st.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/patients/"+all[0].ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	if _, err := st.Get(context.Background(), all[0].ID); err == nil {
		t.Fatal("patient still present after delete")
	}
}

func TestUploadAvatarRequiresPatientAndFile(t *testing.T) {
	srv, st := newTestServer(t, models.Patient{Name: "Elizabeth Polson"})

	resp, err := http.Post(srv.URL+"/patients/nope/avatar", "multipart/form-data", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown patient: expected 404, got %d", resp.StatusCode)
	}

	all, _ := st.All(context.Background())
	resp, err = http.Post(srv.URL+"/patients/"+all[0].ID+"/avatar", "multipart/form-data", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing file: expected 400, got %d", resp.StatusCode)
	}
}
