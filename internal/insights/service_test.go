package insights_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-insights/internal/category"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"github.com/frahmantamala/budget-insights/internal/insights"
	"github.com/frahmantamala/budget-insights/internal/prediction"
)

func TestInsightsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insights Service Suite")
}

type mockExpenseReader struct {
	expenses []*expense.Expense
	err      error
}

func (m *mockExpenseReader) GetAllExpenses() ([]*expense.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.expenses, nil
}

type mockBudgetReader struct {
	amounts map[string]float64
	err     error
}

func (m *mockBudgetReader) AmountFor(month expense.YearMonth) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.amounts[month.Key()], nil
}

var _ = Describe("InsightsService", func() {
	var (
		service  *insights.Service
		expenses *mockExpenseReader
		budgets  *mockBudgetReader
		month    expense.YearMonth
	)

	BeforeEach(func() {
		expenses = &mockExpenseReader{}
		budgets = &mockBudgetReader{amounts: make(map[string]float64)}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = insights.NewService(expenses, budgets, logger)
		month = expense.YearMonth{Year: 2025, Month: time.March}
	})

	Describe("Predictions", func() {
		It("should report the reference and target months", func() {
			report, err := service.Predictions(month)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Month).To(Equal("2025-03"))
			Expect(report.NextMonth).To(Equal("2025-04"))
			Expect(report.Predictions).To(BeEmpty())
		})

		It("should run the engine over the stored history", func() {
			expenses.expenses = []*expense.Expense{
				{Name: "Groceries", Amount: 50, Category: category.Food, Date: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)},
				{Name: "Groceries", Amount: 60, Category: category.Food, Date: time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)},
				{Name: "Groceries", Amount: 55, Category: category.Food, Date: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)},
			}

			report, err := service.Predictions(month)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Predictions).To(HaveLen(1))
			Expect(report.Predictions[0].Source).To(Equal(prediction.SourcePattern))
			Expect(report.Summary.TotalAmount).To(Equal(report.TotalPredicted))
		})

		It("should propagate storage failures", func() {
			expenses.err = errors.New("disk on fire")

			_, err := service.Predictions(month)

			Expect(err).To(MatchError("disk on fire"))
		})
	})

	Describe("Suggestions", func() {
		It("should pair the month's budget with the advisor result", func() {
			budgets.amounts["2025-03"] = 1000
			expenses.expenses = []*expense.Expense{
				{Name: "Rent", Amount: 950, Category: category.Housing, Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
			}

			report, err := service.Suggestions(month)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Month).To(Equal("2025-03"))
			Expect(report.Budget).To(Equal(float64(1000)))
			Expect(report.Suggestions[0].ID).To(Equal("budget-overspending"))
			Expect(report.Summary.TotalSuggestions).To(Equal(len(report.Suggestions)))
		})

		It("should fall back to getting-started advice with no data", func() {
			report, err := service.Suggestions(month)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Suggestions).To(HaveLen(2))
			Expect(report.Budget).To(BeZero())
		})

		It("should propagate budget read failures", func() {
			budgets.err = errors.New("connection reset")

			_, err := service.Suggestions(month)

			Expect(err).To(MatchError("connection reset"))
		})
	})
})
