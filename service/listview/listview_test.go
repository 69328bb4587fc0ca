package listview

import (
	"net/url"
	"reflect"
	"testing"
)

type product struct {
	Name         string
	Manufacturer string
	Type         string
	Stock        int
}

var productDef = Definition[product]{
	SearchFields: func(p product) []string { return []string{p.Name, p.Manufacturer} },
	Filters: map[string]Predicate[product]{
		"type": func(p product, v string) bool { return p.Type == v },
		"stock": func(p product, v string) bool {
			switch v {
			case "inStock":
				return p.Stock > 0
			case "outOfStock":
				return p.Stock == 0
			}
			return true
		},
	},
}

func sampleProducts() []product {
	return []product{
		{Name: "Paracetamol", Manufacturer: "Cipla", Type: "Tablet", Stock: 120},
		{Name: "Amoxicillin", Manufacturer: "Sun Pharma", Type: "Capsule", Stock: 0},
		{Name: "Ibuprofen", Manufacturer: "Cipla", Type: "Tablet", Stock: 45},
		{Name: "Cough Syrup", Manufacturer: "Himalaya", Type: "Syrup", Stock: 0},
		{Name: "Vitamin D3", Manufacturer: "HealthKart", Type: "Tablet", Stock: 300},
		{Name: "Insulin", Manufacturer: "Novo Nordisk", Type: "Injection", Stock: 12},
		{Name: "Aspirin", Manufacturer: "Bayer", Type: "Tablet", Stock: 0},
		{Name: "Cetirizine", Manufacturer: "Dr. Reddy's", Type: "Tablet", Stock: 80},
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	people := []struct{ Name string }{{"Elizabeth Polson"}, {"John David"}}
	def := Definition[struct{ Name string }]{
		SearchFields: func(p struct{ Name string }) []string { return []string{p.Name} },
	}

	for _, q := range []string{"eliz", "ELIZ", "Polson", "beth pol"} {
		got := def.Apply(people, q, nil)
		if len(got) != 1 || got[0].Name != "Elizabeth Polson" {
			t.Errorf("query %q: got %v, want only Elizabeth Polson", q, got)
		}
	}

	if got := def.Apply(people, "", nil); len(got) != 2 {
		t.Errorf("empty query should match everything, got %d", len(got))
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	got := productDef.Apply(sampleProducts(), "cipla", Filters{"stock": "inStock"})
	if len(got) != 2 {
		t.Fatalf("expected 2 in-stock Cipla products, got %d", len(got))
	}
	for _, p := range got {
		if p.Manufacturer != "Cipla" || p.Stock == 0 {
			t.Errorf("entity %+v fails one of the combined predicates", p)
		}
	}
}

func TestOutOfStockFilterScenario(t *testing.T) {
	// 8 products, exactly 3 with stock == 0.
	res := productDef.View(sampleProducts(), "", Filters{"stock": "outOfStock"}, 1, 2)
	if res.Total != 3 {
		t.Fatalf("expected 3 out-of-stock matches, got %d", res.Total)
	}
	if res.TotalPages != 2 {
		t.Fatalf("expected ceil(3/2)=2 pages, got %d", res.TotalPages)
	}
	if len(res.Items) != 2 {
		t.Fatalf("page 1 should hold 2 items, got %d", len(res.Items))
	}
}

func TestUnknownAndEmptyFiltersIgnored(t *testing.T) {
	items := sampleProducts()
	got := productDef.Apply(items, "", Filters{"bogus": "whatever", "stock": ""})
	if len(got) != len(items) {
		t.Errorf("unknown/inactive filters must not exclude anything: got %d of %d", len(got), len(items))
	}
}

func TestPaginationReconstructsMatches(t *testing.T) {
	items := sampleProducts()
	matched := productDef.Apply(items, "", nil)

	_, totalPages := Paginate(matched, 1, 3)
	if totalPages != 3 {
		t.Fatalf("expected ceil(8/3)=3 pages, got %d", totalPages)
	}

	var rebuilt []product
	for page := 1; page <= totalPages; page++ {
		pageItems, _ := Paginate(matched, page, 3)
		rebuilt = append(rebuilt, pageItems...)
	}
	if !reflect.DeepEqual(rebuilt, matched) {
		t.Errorf("concatenated pages differ from the match list")
	}
}

func TestPageBeyondTotalReturnsEmpty(t *testing.T) {
	pageItems, totalPages := Paginate(sampleProducts(), 99, 5)
	if totalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", totalPages)
	}
	if len(pageItems) != 0 {
		t.Errorf("page beyond the end must be empty, got %d items", len(pageItems))
	}
}

func TestZeroMatchesZeroPages(t *testing.T) {
	res := productDef.View(sampleProducts(), "no-such-medicine", nil, 1, 5)
	if res.Total != 0 || res.TotalPages != 0 || len(res.Items) != 0 {
		t.Errorf("zero matches should yield zero pages, got %+v", res)
	}
}

func TestViewIsIdempotentAndDoesNotMutate(t *testing.T) {
	items := sampleProducts()
	before := make([]product, len(items))
	copy(before, items)

	first := productDef.View(items, "tablet", Filters{"type": "Tablet"}, 1, 5)
	second := productDef.View(items, "tablet", Filters{"type": "Tablet"}, 1, 5)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results")
	}
	if !reflect.DeepEqual(items, before) {
		t.Errorf("input collection was mutated")
	}
}

func TestOrderPreserved(t *testing.T) {
	items := sampleProducts()
	got := productDef.Apply(items, "", Filters{"type": "Tablet"})
	want := []string{"Paracetamol", "Ibuprofen", "Vitamin D3", "Aspirin", "Cetirizine"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tablets, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d: got %s, want %s", i, got[i].Name, name)
		}
	}
}

func TestPageParamsAndFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("q", "asp")
	values.Set("page", "3")
	values.Set("type", "Tablet")
	values.Set("stock", "")

	page, pageSize := PageParams(values, 5)
	if page != 3 || pageSize != 5 {
		t.Errorf("got page=%d size=%d, want 3 and 5", page, pageSize)
	}

	filters := FiltersFromQuery(values)
	if _, ok := filters["q"]; ok {
		t.Errorf("reserved parameter leaked into filters")
	}
	if filters["type"] != "Tablet" {
		t.Errorf("expected type filter to survive, got %v", filters)
	}
	if _, ok := filters["stock"]; ok {
		t.Errorf("empty-valued filter should be dropped")
	}
}
