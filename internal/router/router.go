package router

import (
	"net/http"
	"strings"

	"shop-ledger/internal/handler"
	"shop-ledger/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(customerHandler *handler.CustomerHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Customer handler function
	customerRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		// Collection routes: list and create
		if path == "/api/customers" {
			switch r.Method {
			case http.MethodGet:
				customerHandler.List(w, r)
			case http.MethodPost:
				customerHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Item routes: /api/customers/{id}[/products|/change-payment]
		switch {
		case strings.HasSuffix(path, "/products"):
			customerHandler.AddProduct(w, r)
		case strings.HasSuffix(path, "/change-payment"):
			customerHandler.ChangePayment(w, r)
		default:
			customerHandler.Delete(w, r)
		}
	}

	// Register customer routes (both with and without trailing slash)
	mux.HandleFunc("/api/customers", customerRouteHandler)
	mux.HandleFunc("/api/customers/", customerRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
