package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoriesResponse lists the distinct catalog categories
type CategoriesResponse struct {
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
}

// BrandsResponse lists the distinct catalog brands
type BrandsResponse struct {
	Total  int      `json:"total"`
	Brands []string `json:"brands"`
}

// ProductHandler handles HTTP requests for catalog queries
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/categories", h.Categories)
		r.Get("/brands", h.Brands)
		r.Get("/{id}", h.GetByID)
	})
}

// List handles catalog queries with filtering, search, sorting, pagination,
// and field projection
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseQueryParams(r)
	if err != nil {
		h.logger.Debug("Invalid query parameters", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.productService.Query(params)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		h.logger.Error("Catalog query failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to query products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// Categories handles listing the unique catalog categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.productService.Categories()
	middleware.RespondWithJSON(w, http.StatusOK, CategoriesResponse{
		Total:      len(categories),
		Categories: categories,
	})
}

// Brands handles listing the unique catalog brands
func (h *ProductHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands := h.productService.Brands()
	middleware.RespondWithJSON(w, http.StatusOK, BrandsResponse{
		Total:  len(brands),
		Brands: brands,
	})
}

// GetByID handles single-product lookup
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productService.GetByID(id)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("product with id '%s' not found", id))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func parseQueryParams(r *http.Request) (service.QueryParams, error) {
	q := r.URL.Query()

	params := service.QueryParams{
		Page:  1,
		Limit: 10,
		Order: service.SortOrderAsc,

		Search:             q.Get("search"),
		SortBy:             q.Get("sortBy"),
		Fields:             q.Get("fields"),
		Category:           q.Get("category"),
		Brand:              q.Get("brand"),
		AvailabilityStatus: q.Get("availabilityStatus"),
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid page parameter: %q", raw)
		}
		params.Page = page
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			return params, fmt.Errorf("invalid limit parameter: %q, must be between 1 and 100", raw)
		}
		params.Limit = limit
	}

	if raw := q.Get("order"); raw != "" {
		order := service.SortOrder(raw)
		if order != service.SortOrderAsc && order != service.SortOrderDesc {
			return params, fmt.Errorf("invalid order parameter: %q, must be asc or desc", raw)
		}
		params.Order = order
	}

	var err error
	if params.MinPrice, err = parseFloatParam(q.Get("minPrice"), "minPrice"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = parseFloatParam(q.Get("maxPrice"), "maxPrice"); err != nil {
		return params, err
	}
	if params.MinRating, err = parseFloatParam(q.Get("minRating"), "minRating"); err != nil {
		return params, err
	}

	return params, nil
}

func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return &v, nil
}
