package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-insights/internal/budget"
	budgetStorage "github.com/frahmantamala/budget-insights/internal/budget/storage"
	"github.com/frahmantamala/budget-insights/internal/expense"
	expenseStorage "github.com/frahmantamala/budget-insights/internal/expense/storage"
	"github.com/frahmantamala/budget-insights/internal/insights"
	"github.com/frahmantamala/budget-insights/pkg/logger"
)

var (
	insightsMonth string

	predictCmd = &cobra.Command{
		Use:   "predict",
		Short: "Print next month's expense predictions",
		Run: func(cmd *cobra.Command, args []string) {
			runInsights(func(svc *insights.Service, month expense.YearMonth) (any, error) {
				return svc.Predictions(month)
			})
		},
	}

	adviseCmd = &cobra.Command{
		Use:   "advise",
		Short: "Print savings suggestions for a month",
		Run: func(cmd *cobra.Command, args []string) {
			runInsights(func(svc *insights.Service, month expense.YearMonth) (any, error) {
				return svc.Suggestions(month)
			})
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{predictCmd, adviseCmd} {
		c.Flags().StringVarP(&insightsMonth, "month", "m", "", "reference month as YYYY-MM (defaults to the current month)")
	}
}

func runInsights(report func(*insights.Service, expense.YearMonth) (any, error)) {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	month := expense.MonthOf(time.Now())
	if insightsMonth != "" {
		month, err = expense.ParseYearMonth(insightsMonth)
		if err != nil {
			log.Fatalf("invalid --month: %v", err)
		}
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	expenseService := expense.NewService(expenseStorage.NewExpenseRepository(db), lg)
	budgetService := budget.NewService(budgetStorage.NewBudgetRepository(db), lg)
	svc := insights.NewService(expenseService, budgetService, lg)

	out, err := report(svc, month)
	if err != nil {
		log.Fatalf("failed to build report: %v", err)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode report: %v", err)
	}
	fmt.Println(string(data))
}
