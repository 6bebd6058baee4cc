package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-insights/internal/category"
	"github.com/frahmantamala/budget-insights/internal/expense"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := sqlx.Connect(sqlDriverName(cfg), cfg.Database.Source)
		if err != nil {
			log.Fatalf("failed to connect db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"expenses", "budgets"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		now := time.Now()
		thisMonth := expense.MonthOf(now)
		lastMonth := expense.MonthOf(thisMonth.First().AddDate(0, -1, 0))

		samples := []struct {
			Name     string
			Amount   float64
			Category category.Category
			Month    expense.YearMonth
			Day      int
		}{
			{"Rent", 850, category.Housing, lastMonth, 1},
			{"Rent", 850, category.Housing, thisMonth, 1},
			{"Groceries", 62.40, category.Food, lastMonth, 4},
			{"Groceries", 58.10, category.Food, lastMonth, 18},
			{"Groceries", 71.25, category.Food, thisMonth, 3},
			{"Groceries", 64.90, category.Food, thisMonth, 17},
			{"Netflix", 12.99, category.Subscriptions, lastMonth, 7},
			{"Netflix", 12.99, category.Subscriptions, thisMonth, 7},
			{"Spotify", 9.99, category.Subscriptions, thisMonth, 12},
			{"Monthly transit pass", 45, category.Transport, lastMonth, 2},
			{"Monthly transit pass", 45, category.Transport, thisMonth, 2},
			{"Coffee", 3.80, category.Food, thisMonth, 5},
			{"Coffee", 4.20, category.Food, thisMonth, 11},
			{"Coffee", 3.95, category.Food, thisMonth, 19},
			{"Gym membership", 29.90, category.Sports, thisMonth, 8},
			{"Pharmacy", 18.60, category.Health, lastMonth, 22},
			{"Cinema", 11.50, category.Entertainment, thisMonth, 14},
			{"Emergency fund", 120, category.Savings, lastMonth, 28},
		}

		insertExpense := db.Rebind("INSERT INTO expenses (name, amount, category, date, created_at) VALUES (?, ?, ?, ?, ?)")
		for _, s := range samples {
			date := s.Month.DayIn(s.Day)
			if _, err := db.Exec(insertExpense, s.Name, s.Amount, string(s.Category), date, now); err != nil {
				log.Fatalf("failed to insert expense %q: %v", s.Name, err)
			}
		}
		fmt.Printf("Seeded %d expenses across %s and %s\n", len(samples), lastMonth.Key(), thisMonth.Key())

		insertBudget := db.Rebind("INSERT INTO budgets (month_key, amount, created_at, updated_at) VALUES (?, ?, ?, ?)")
		for _, b := range []struct {
			Month  expense.YearMonth
			Amount float64
		}{
			{lastMonth, 1500},
			{thisMonth, 1500},
		} {
			if _, err := db.Exec(insertBudget, b.Month.Key(), b.Amount, now, now); err != nil {
				log.Fatalf("failed to insert budget for %s: %v", b.Month.Key(), err)
			}
		}
		fmt.Println("Seeded budgets for both months")
	},
}
