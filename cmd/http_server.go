package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/budget"
	budgetStorage "github.com/frahmantamala/budget-insights/internal/budget/storage"
	"github.com/frahmantamala/budget-insights/internal/category"
	"github.com/frahmantamala/budget-insights/internal/expense"
	expenseStorage "github.com/frahmantamala/budget-insights/internal/expense/storage"
	"github.com/frahmantamala/budget-insights/internal/insights"
	"github.com/frahmantamala/budget-insights/internal/transport/rest"
	"github.com/frahmantamala/budget-insights/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	sqlDB, _ := deps.DB.DB()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	expenseRepo := expenseStorage.NewExpenseRepository(db)
	budgetRepo := budgetStorage.NewBudgetRepository(db)

	expenseService := expense.NewService(expenseRepo, lg)
	budgetService := budget.NewService(budgetRepo, lg)
	insightsService := insights.NewService(expenseService, budgetService, lg)

	// Fold a pre-per-month global budget into the present month.
	if err := budgetService.MigrateLegacyBudget(expense.MonthOf(time.Now())); err != nil {
		return nil, fmt.Errorf("migrate legacy budget: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql db: %w", err)
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:              sqlDB,
		Driver:          cfg.Database.Driver,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		ExpenseHandler:  expense.NewHandler(expenseService),
		BudgetHandler:   budget.NewHandler(budgetService),
		CategoryHandler: category.NewHandler(),
		InsightsHandler: insights.NewHandler(insightsService),
		Logger:          lg,
	})

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// openDatabase connects GORM to the configured backend and keeps the
// schema current. SQLite is the zero-setup default for local use.
func openDatabase(cfg *internal.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.Database.Source)
	default:
		dialector = sqlite.Open(cfg.Database.Source)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.AutoMigrate(&expense.Expense{}, &budget.Budget{}); err != nil {
		return nil, err
	}

	return db, nil
}
