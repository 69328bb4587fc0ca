package inventory

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

// The stock filter takes "inStock" or "outOfStock"; anything else matches
// every product, the same as not filtering at all.
var listDefinition = listview.Definition[models.MedicineProduct]{
	SearchFields: func(p models.MedicineProduct) []string {
		return []string{p.Name, p.Manufacturer}
	},
	Filters: map[string]listview.Predicate[models.MedicineProduct]{
		"type": func(p models.MedicineProduct, v string) bool {
			return strings.EqualFold(p.Type, v)
		},
		"category": func(p models.MedicineProduct, v string) bool {
			return strings.EqualFold(p.Category, v)
		},
		"stock": func(p models.MedicineProduct, v string) bool {
			switch v {
			case "inStock":
				return p.Stock > 0
			case "outOfStock":
				return p.Stock == 0
			default:
				return true
			}
		},
	},
}

type Handler struct {
	products store.ProductStore
}

func NewHandler(products store.ProductStore) *Handler {
	return &Handler{products: products}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products", h.GetProducts).Methods("GET")
	router.HandleFunc("/products", h.CreateProduct).Methods("POST")
	router.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	router.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	router.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.All(r.Context())
	if err != nil {
		http.Error(w, "Error retrieving products", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	page, pageSize := listview.PageParams(query, listview.DefaultPageSize)
	result := listDefinition.View(products, query.Get("q"), listview.FiltersFromQuery(query), page, pageSize)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"products":    result.Items,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	product, err := h.products.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.MedicineProduct
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if product.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if product.Price < 0 || product.Stock < 0 {
		http.Error(w, "Price and stock must not be negative", http.StatusBadRequest)
		return
	}

	product.ID = ""
	if err := h.products.Create(r.Context(), &product); err != nil {
		http.Error(w, "Error creating product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	existing, err := h.products.Get(r.Context(), vars["id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving product", http.StatusInternalServerError)
		return
	}

	var updated models.MedicineProduct
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if updated.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if updated.Price < 0 || updated.Stock < 0 {
		http.Error(w, "Price and stock must not be negative", http.StatusBadRequest)
		return
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := h.products.Update(r.Context(), &updated); err != nil {
		http.Error(w, "Error updating product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.products.Delete(r.Context(), vars["id"]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
