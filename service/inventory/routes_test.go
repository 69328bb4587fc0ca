package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/service/store"
)

func newTestServer(t *testing.T, products ...models.MedicineProduct) *httptest.Server {
	t.Helper()

	st := store.NewMemoryProductStore()
	for i := range products {
		if err := st.Create(context.Background(), &products[i]); err != nil {
			t.Fatal(err)
		}
	}

	router := mux.NewRouter()
	NewHandler(st).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type listResponse struct {
	Products   []models.MedicineProduct `json:"products"`
	Total      int                      `json:"total"`
	TotalPages int                      `json:"total_pages"`
}

func getList(t *testing.T, url string) listResponse {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestOutOfStockFilter(t *testing.T) {
	products := make([]models.MedicineProduct, 8)
	for i := range products {
		products[i] = models.MedicineProduct{
			Name:  fmt.Sprintf("Product %d", i+1),
			Type:  "Tablet",
			Stock: 50,
		}
	}
	// Three of the eight have no stock left.
	products[1].Stock = 0
	products[4].Stock = 0
	products[6].Stock = 0

	srv := newTestServer(t, products...)

	got := getList(t, srv.URL+"/products?stock=outOfStock")
	if got.Total != 3 {
		t.Fatalf("outOfStock total = %d, want 3", got.Total)
	}
	for _, p := range got.Products {
		if p.Stock != 0 {
			t.Errorf("product %s has stock %d", p.Name, p.Stock)
		}
	}

	got = getList(t, srv.URL+"/products?stock=inStock")
	if got.Total != 5 {
		t.Fatalf("inStock total = %d, want 5", got.Total)
	}
}

func TestTypeFilterAndManufacturerSearch(t *testing.T) {
	srv := newTestServer(t,
		models.MedicineProduct{Name: "Amoxicillin 250 mg", Type: "Tablet", Manufacturer: "Patheon Pvt Ltd", Stock: 28},
		models.MedicineProduct{Name: "Benadryl 500 ml", Type: "Syrup", Manufacturer: "Johnson & Johnson", Stock: 80},
		models.MedicineProduct{Name: "Aspirin 300 mg", Type: "Tablet", Manufacturer: "David's Ltd", Stock: 150},
	)

	got := getList(t, srv.URL+"/products?type=tablet")
	if got.Total != 2 {
		t.Fatalf("type filter total = %d, want 2", got.Total)
	}

	got = getList(t, srv.URL+"/products?q=johnson")
	if got.Total != 1 || got.Products[0].Name != "Benadryl 500 ml" {
		t.Fatalf("manufacturer search failed: %+v", got)
	}

	// Search and filter together.
	got = getList(t, srv.URL+"/products?q=mg&type=Tablet")
	if got.Total != 2 {
		t.Fatalf("combined search+filter total = %d, want 2", got.Total)
	}
}
