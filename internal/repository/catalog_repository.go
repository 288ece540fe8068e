package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"catalog-api/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CatalogRepository exposes the read-only product catalog. The catalog is
// loaded once at startup and never mutated, so it is safe to share across
// concurrent readers without synchronization.
type CatalogRepository interface {
	All() []domain.Product
	FindByID(id string) (domain.Product, error)
	Categories() []string
	Brands() []string
	Count() int
}

type catalogRepository struct {
	products []domain.Product
}

type catalogDocument struct {
	Products []domain.Product `json:"products"`
}

// LoadCatalog reads the catalog document from path. The catalog is a required
// dependency: a missing or malformed file is an error and the caller is
// expected to treat it as fatal.
func LoadCatalog(path string) (CatalogRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return &catalogRepository{products: doc.Products}, nil
}

// NewCatalogRepository wraps an already-loaded product list. Used by tests
// and anywhere the catalog does not come from disk.
func NewCatalogRepository(products []domain.Product) CatalogRepository {
	return &catalogRepository{products: products}
}

// All returns the catalog sequence. Callers must not mutate the returned
// slice or the records in it.
func (r *catalogRepository) All() []domain.Product {
	return r.products
}

// FindByID returns the first product whose id field matches.
func (r *catalogRepository) FindByID(id string) (domain.Product, error) {
	for _, p := range r.products {
		if p.MatchesID(id) {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Categories returns the sorted set of non-empty category values.
func (r *catalogRepository) Categories() []string {
	return r.uniqueField("category")
}

// Brands returns the sorted set of non-empty brand values.
func (r *catalogRepository) Brands() []string {
	return r.uniqueField("brand")
}

func (r *catalogRepository) Count() int {
	return len(r.products)
}

func (r *catalogRepository) uniqueField(key string) []string {
	seen := make(map[string]struct{})
	for _, p := range r.products {
		if v, ok := p.StringField(key); ok && v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
