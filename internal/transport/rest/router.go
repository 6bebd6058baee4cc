package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/budget-insights/internal/budget"
	"github.com/frahmantamala/budget-insights/internal/category"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"github.com/frahmantamala/budget-insights/internal/insights"
	"github.com/frahmantamala/budget-insights/internal/transport/middleware"
	"github.com/frahmantamala/budget-insights/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type RouterDeps struct {
	DB              *sql.DB
	Driver          string
	AllowedOrigins  string
	ExpenseHandler  *expense.Handler
	BudgetHandler   *budget.Handler
	CategoryHandler *category.Handler
	InsightsHandler *insights.Handler
	Logger          *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB, deps.Driver)

	// Apply global middleware
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if deps.CategoryHandler != nil {
			r.Get("/categories", deps.CategoryHandler.GetCategories)
		}

		if deps.ExpenseHandler != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Post("/", deps.ExpenseHandler.CreateExpense)       // POST /expenses
				er.Get("/", deps.ExpenseHandler.GetExpenses)          // GET /expenses?month=
				er.Get("/{id}", deps.ExpenseHandler.GetExpense)       // GET /expenses/:id
				er.Delete("/{id}", deps.ExpenseHandler.DeleteExpense) // DELETE /expenses/:id
			})
		}

		if deps.BudgetHandler != nil {
			r.Route("/budgets", func(br chi.Router) {
				br.Get("/", deps.BudgetHandler.GetBudgets)             // GET /budgets
				br.Put("/{month}", deps.BudgetHandler.SetBudget)       // PUT /budgets/:month
				br.Get("/{month}", deps.BudgetHandler.GetBudget)       // GET /budgets/:month
				br.Delete("/{month}", deps.BudgetHandler.DeleteBudget) // DELETE /budgets/:month
			})
		}

		if deps.InsightsHandler != nil {
			r.Route("/insights", func(ir chi.Router) {
				ir.Get("/predictions", deps.InsightsHandler.GetPredictions) // GET /insights/predictions?month=
				ir.Get("/suggestions", deps.InsightsHandler.GetSuggestions) // GET /insights/suggestions?month=
			})
		}
	})
}
