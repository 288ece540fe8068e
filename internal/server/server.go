package server

import (
	"fmt"
	"net/http"
	"time"

	"catalog-api/internal/config"
	custommiddleware "catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/service"
	"catalog-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Version reported by the metadata endpoint.
const Version = "1.0.0"

// MetadataResponse is the service description served at the root path.
type MetadataResponse struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Endpoints     map[string]string `json:"endpoints"`
	TotalProducts int               `json:"total_products"`
	TotalOrders   int               `json:"total_orders"`
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
}

func NewServer(cfg *config.Config, logger *zap.Logger, catalog repository.CatalogRepository, orders repository.OrderRepository) *Server {
	router := NewRouter(cfg, logger, catalog, orders)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
	}
}

// NewRouter assembles the full HTTP surface over the given stores. Split out
// of NewServer so handler tests can run against the real routing table.
func NewRouter(cfg *config.Config, logger *zap.Logger, catalog repository.CatalogRepository, orders repository.OrderRepository) chi.Router {
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	productService := service.NewProductService(catalog)
	orderService := service.NewOrderService(orders)

	// Service metadata endpoint
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, MetadataResponse{
			Message: "Product API",
			Version: Version,
			Endpoints: map[string]string{
				"products":   "/products",
				"categories": "/products/categories",
				"brands":     "/products/brands",
				"orders":     "/orders",
			},
			TotalProducts: productService.Count(),
			TotalOrders:   orders.Count(),
		})
	})

	// Initialize handlers and register routes
	transport.NewProductHandler(productService, logger).RegisterRoutes(router)
	transport.NewOrderHandler(orderService, logger).RegisterRoutes(router)

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")
	s.logger.Sync()
	return nil
}
