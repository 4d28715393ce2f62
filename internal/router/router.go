package router

import (
	"net/http"

	"fastnic/internal/handler"
	"fastnic/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	recipeHandler *handler.RecipeHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	dealiciousHandler *handler.DealiciousHandler,
	healthHandler *handler.HealthHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health endpoints (no authentication required)
	mux.HandleFunc("/health", healthHandler.Live)
	mux.HandleFunc("/health/picnic", healthHandler.Picnic)

	// Recipe routes: collection and item, with and without trailing slash
	recipeRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recipes" && r.URL.Path != "/api/recipes/" {
			recipeHandler.Item(w, r)
			return
		}
		recipeHandler.Collection(w, r)
	}
	mux.HandleFunc("/api/recipes", recipeRouteHandler)
	mux.HandleFunc("/api/recipes/", recipeRouteHandler)

	// Product routes
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.Item(w, r)
			return
		}
		productHandler.Collection(w, r)
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Order routes
	mux.HandleFunc("/api/orders", orderHandler.Create)
	mux.HandleFunc("/api/orders/", orderHandler.Create)

	// Discount optimizer routes
	mux.HandleFunc("/api/dealicious/combine", dealiciousHandler.Combine)
	mux.HandleFunc("/api/dealicious/promo", dealiciousHandler.Promo)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
