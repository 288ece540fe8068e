package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"
)

var (
	ErrPageNotFound = errors.New("page not found")
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// QueryParams holds the parameters of a catalog query. Zero values mean
// "not given" for the filter fields; Page and Limit are expected to be
// normalized by the caller (1-based page, limit in 1..100).
type QueryParams struct {
	Page  int
	Limit int

	Search string
	SortBy string
	Order  SortOrder
	Fields string

	Category           string
	Brand              string
	AvailabilityStatus string
	MinPrice           *float64
	MaxPrice           *float64
	MinRating          *float64
}

// ProductPage is one page of query results.
type ProductPage struct {
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
	Data       []domain.Product `json:"data"`
}

// ProductService answers catalog queries. All operations are pure reads over
// the immutable catalog snapshot.
type ProductService interface {
	Query(params QueryParams) (*ProductPage, error)
	GetByID(id string) (domain.Product, error)
	Categories() []string
	Brands() []string
	Count() int
}

type productService struct {
	catalog repository.CatalogRepository
}

// NewProductService creates a new ProductService
func NewProductService(catalog repository.CatalogRepository) ProductService {
	return &productService{catalog: catalog}
}

// Query runs the full pipeline over the catalog snapshot: filters, then
// search, then sort, then pagination, then field projection. The stage order
// is fixed; each stage consumes the previous stage's output.
func (s *productService) Query(params QueryParams) (*ProductPage, error) {
	filtered := s.catalog.All()

	if params.Category != "" {
		filtered = filterByField(filtered, "category", params.Category)
	}
	if params.Brand != "" {
		filtered = filterByField(filtered, "brand", params.Brand)
	}
	if params.MinPrice != nil {
		filtered = filterByNumber(filtered, "price", func(v float64) bool { return v >= *params.MinPrice })
	}
	if params.MaxPrice != nil {
		filtered = filterByNumber(filtered, "price", func(v float64) bool { return v <= *params.MaxPrice })
	}
	if params.MinRating != nil {
		filtered = filterByNumber(filtered, "rating", func(v float64) bool { return v >= *params.MinRating })
	}
	if params.AvailabilityStatus != "" {
		filtered = filterByField(filtered, "availabilityStatus", params.AvailabilityStatus)
	}
	if params.Search != "" {
		filtered = filterBySearch(filtered, params.Search)
	}

	if params.SortBy != "" {
		filtered = sortProducts(filtered, params.SortBy, params.Order == SortOrderDesc)
	}

	totalItems := len(filtered)
	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(params.Limit)))
	}

	if params.Page > totalPages && totalPages > 0 {
		return nil, fmt.Errorf("%w: requested page %d, total pages: %d", ErrPageNotFound, params.Page, totalPages)
	}

	start := (params.Page - 1) * params.Limit
	end := start + params.Limit
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}
	page := filtered[start:end]

	if params.Fields != "" {
		fields := strings.Split(params.Fields, ",")
		projected := make([]domain.Product, len(page))
		for i, p := range page {
			projected[i] = p.Project(fields)
		}
		page = projected
	}

	// Re-slice into a fresh slice so the response always marshals as an
	// array, never null.
	data := make([]domain.Product, 0, len(page))
	data = append(data, page...)

	return &ProductPage{
		Page:       params.Page,
		Limit:      params.Limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Data:       data,
	}, nil
}

// GetByID returns a single product by its id field.
func (s *productService) GetByID(id string) (domain.Product, error) {
	return s.catalog.FindByID(id)
}

func (s *productService) Categories() []string {
	return s.catalog.Categories()
}

func (s *productService) Brands() []string {
	return s.catalog.Brands()
}

func (s *productService) Count() int {
	return s.catalog.Count()
}

// filterByField keeps products whose string field contains query,
// case-insensitively. Products missing the field are excluded.
func filterByField(products []domain.Product, key, query string) []domain.Product {
	query = strings.ToLower(query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		v, ok := p.StringField(key)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), query) {
			out = append(out, p)
		}
	}
	return out
}

// filterByNumber keeps products whose numeric field satisfies keep. A missing
// or non-numeric field counts as 0.
func filterByNumber(products []domain.Product, key string, keep func(float64) bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		v, _ := p.NumberField(key)
		if keep(v) {
			out = append(out, p)
		}
	}
	return out
}

// filterBySearch keeps products where the query appears, case-insensitively,
// in the title, description, brand, or any tag.
func filterBySearch(products []domain.Product, query string) []domain.Product {
	query = strings.ToLower(query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if searchMatches(p, query) {
			out = append(out, p)
		}
	}
	return out
}

func searchMatches(p domain.Product, query string) bool {
	for _, key := range []string{"title", "description", "brand"} {
		if v, ok := p.StringField(key); ok && strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	for _, tag := range p.Tags() {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sortKey is the derived comparison key for one product. Exactly one of
// numeric/textual is meaningful, selected by isNumber; absent sort fields are
// mapped to an infinite numeric sentinel so they land at the logical end of
// the sequence in either direction.
type sortKey struct {
	isNumber bool
	number   float64
	text     string
}

// sortProducts sorts by the named field, stably. If the derived keys mix
// numeric and textual classes the records are incomparable; rather than fail,
// the pre-sort ordering is returned unchanged. Because missing fields derive
// numeric sentinels, a textual sort field with gaps also takes this fallback.
func sortProducts(products []domain.Product, sortBy string, desc bool) []domain.Product {
	keys := make([]sortKey, len(products))
	hasNumber := false
	hasText := false

	for i, p := range products {
		v, present := p[sortBy]
		if !present || v == nil {
			sentinel := math.Inf(1)
			if desc {
				sentinel = math.Inf(-1)
			}
			keys[i] = sortKey{isNumber: true, number: sentinel}
			hasNumber = true
			continue
		}
		if n, ok := p.NumberField(sortBy); ok {
			keys[i] = sortKey{isNumber: true, number: n}
			hasNumber = true
			continue
		}
		keys[i] = sortKey{text: strings.ToLower(fmt.Sprint(v))}
		hasText = true
	}

	if hasNumber && hasText {
		return products
	}

	sorted := make([]domain.Product, len(products))
	order := make([]int, len(products))
	for i := range order {
		order[i] = i
	}

	less := func(ka, kb sortKey) bool {
		if ka.isNumber {
			return ka.number < kb.number
		}
		return ka.text < kb.text
	}

	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		if desc {
			return less(kb, ka)
		}
		return less(ka, kb)
	})

	for i, idx := range order {
		sorted[i] = products[idx]
	}
	return sorted
}
