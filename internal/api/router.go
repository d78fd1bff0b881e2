/**
 * @description
 * HTTP router for the billing backend using the go-chi/chi router.
 * Dashboard routes sit behind the Supabase JWT middleware; the batch
 * reminder run additionally accepts the internal API key so the
 * reminder runner can call it server-to-server.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the API routes.
func NewRouter(h *Handler, jwtSecret, internalAPIKey string) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Internal-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Billing service is healthy"))
	})

	// Server-to-server route for the reminder runner
	r.Group(func(r chi.Router) {
		r.Use(InternalAuthMiddleware(internalAPIKey))
		r.Post("/internal/notifications/run", h.handleRunReminders)
	})

	// Dashboard routes that require a Supabase session
	r.Route("/api", func(r chi.Router) {
		r.Use(SupabaseAuthMiddleware(jwtSecret))

		r.Get("/dashboard", h.handleDashboard)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.handleListClients)
			r.Post("/", h.handleCreateClient)
			r.Get("/{id}", h.handleGetClient)
			r.Put("/{id}", h.handleUpdateClient)
			r.Delete("/{id}", h.handleDeleteClient)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.handleListPayments)
			r.Post("/", h.handleCreatePayment)
			r.Delete("/{id}", h.handleDeletePayment)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.handleListNotifications)
			r.Post("/send", h.handleSendReminder)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.handleListExpenses)
			r.Post("/", h.handleCreateExpense)
			r.Delete("/{id}", h.handleDeleteExpense)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/upcoming", h.handleUpcomingReport)
			r.Get("/monthly", h.handleMonthlyReport)
		})
	})

	return r
}
