package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gauravitis/quotecms/internal/clients"
	"github.com/gauravitis/quotecms/internal/companies"
	"github.com/gauravitis/quotecms/internal/employees"
	"github.com/gauravitis/quotecms/internal/items"
	"github.com/gauravitis/quotecms/internal/quotations"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	CompaniesHandler  *companies.Handler
	ClientsHandler    *clients.Handler
	EmployeesHandler  *employees.Handler
	ItemsHandler      *items.Handler
	QuotationsHandler *quotations.Handler
}

// NewRouter constructs the chi.Router with the full API surface under /api.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.CompaniesHandler.MountRoutes(r)
		params.ClientsHandler.MountRoutes(r)
		params.EmployeesHandler.MountRoutes(r)
		params.ItemsHandler.MountRoutes(r)
		params.QuotationsHandler.MountRoutes(r)
	})

	return r
}
