package budget_test

import (
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/budget"
	"github.com/frahmantamala/budget-insights/internal/expense"
)

func TestBudgetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget Service Suite")
}

// Mock repository for testing
type mockBudgetRepository struct {
	budgets     map[string]*budget.Budget
	upsertError error
	getError    error
	deleteError error
	nextID      int64
}

func newMockBudgetRepository() *mockBudgetRepository {
	return &mockBudgetRepository{
		budgets: make(map[string]*budget.Budget),
		nextID:  1,
	}
}

func (m *mockBudgetRepository) Upsert(b *budget.Budget) error {
	if m.upsertError != nil {
		return m.upsertError
	}
	if existing, ok := m.budgets[b.MonthKey]; ok {
		existing.Amount = b.Amount
		existing.UpdatedAt = time.Now()
		*b = *existing
		return nil
	}
	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.budgets[b.MonthKey] = b
	return nil
}

func (m *mockBudgetRepository) GetByMonthKey(key string) (*budget.Budget, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	b, ok := m.budgets[key]
	if !ok {
		return nil, internal.ErrBudgetNotFound
	}
	return b, nil
}

func (m *mockBudgetRepository) GetAll() ([]*budget.Budget, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	all := make([]*budget.Budget, 0, len(m.budgets))
	for _, b := range m.budgets {
		all = append(all, b)
	}
	return all, nil
}

func (m *mockBudgetRepository) Delete(key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.budgets, key)
	return nil
}

var _ = Describe("BudgetService", func() {
	var (
		service *budget.Service
		repo    *mockBudgetRepository
		month   expense.YearMonth
	)

	BeforeEach(func() {
		repo = newMockBudgetRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = budget.NewService(repo, logger)
		month = expense.YearMonth{Year: 2025, Month: time.March}
	})

	Describe("SetBudget", func() {
		It("should store the budget under the month key", func() {
			b, err := service.SetBudget(month, budget.SetBudgetDTO{Amount: 1500})

			Expect(err).ToNot(HaveOccurred())
			Expect(b.MonthKey).To(Equal("2025-03"))
			Expect(b.Amount).To(Equal(float64(1500)))
		})

		It("should replace a previous value for the same month", func() {
			_, err := service.SetBudget(month, budget.SetBudgetDTO{Amount: 1000})
			Expect(err).ToNot(HaveOccurred())

			b, err := service.SetBudget(month, budget.SetBudgetDTO{Amount: 1800})
			Expect(err).ToNot(HaveOccurred())
			Expect(b.Amount).To(Equal(float64(1800)))

			amount, err := service.AmountFor(month)
			Expect(err).ToNot(HaveOccurred())
			Expect(amount).To(Equal(float64(1800)))
		})

		It("should reject non-positive amounts", func() {
			for _, amount := range []float64{0, -100, math.NaN(), math.Inf(1)} {
				_, err := service.SetBudget(month, budget.SetBudgetDTO{Amount: amount})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
			}
		})
	})

	Describe("AmountFor", func() {
		It("should return 0 without error when no budget is set", func() {
			amount, err := service.AmountFor(month)

			Expect(err).ToNot(HaveOccurred())
			Expect(amount).To(BeZero())
		})

		It("should treat a malformed stored amount as absent", func() {
			repo.budgets["2025-03"] = &budget.Budget{ID: 1, MonthKey: "2025-03", Amount: -50}

			amount, err := service.AmountFor(month)

			Expect(err).ToNot(HaveOccurred())
			Expect(amount).To(BeZero())
		})
	})

	Describe("DeleteBudget", func() {
		It("should remove an existing budget", func() {
			_, err := service.SetBudget(month, budget.SetBudgetDTO{Amount: 1000})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteBudget(month)).To(Succeed())

			amount, err := service.AmountFor(month)
			Expect(err).ToNot(HaveOccurred())
			Expect(amount).To(BeZero())
		})

		It("should fail for a missing budget", func() {
			err := service.DeleteBudget(month)
			Expect(err).To(MatchError(internal.ErrBudgetNotFound))
		})
	})

	Describe("MigrateLegacyBudget", func() {
		It("should do nothing when no legacy row exists", func() {
			Expect(service.MigrateLegacyBudget(month)).To(Succeed())
			Expect(repo.budgets).To(BeEmpty())
		})

		It("should move a valid legacy amount into the target month", func() {
			repo.budgets[budget.LegacyMonthKey] = &budget.Budget{ID: 1, MonthKey: budget.LegacyMonthKey, Amount: 1200}

			Expect(service.MigrateLegacyBudget(month)).To(Succeed())

			Expect(repo.budgets).ToNot(HaveKey(budget.LegacyMonthKey))
			amount, err := service.AmountFor(month)
			Expect(err).ToNot(HaveOccurred())
			Expect(amount).To(Equal(float64(1200)))
		})

		It("should not overwrite an existing budget for the target month", func() {
			repo.budgets[budget.LegacyMonthKey] = &budget.Budget{ID: 1, MonthKey: budget.LegacyMonthKey, Amount: 1200}
			_, err := service.SetBudget(month, budget.SetBudgetDTO{Amount: 2000})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.MigrateLegacyBudget(month)).To(Succeed())

			amount, err := service.AmountFor(month)
			Expect(err).ToNot(HaveOccurred())
			Expect(amount).To(Equal(float64(2000)))
			Expect(repo.budgets).ToNot(HaveKey(budget.LegacyMonthKey))
		})

		It("should drop a malformed legacy amount", func() {
			repo.budgets[budget.LegacyMonthKey] = &budget.Budget{ID: 1, MonthKey: budget.LegacyMonthKey, Amount: -10}

			Expect(service.MigrateLegacyBudget(month)).To(Succeed())

			Expect(repo.budgets).To(BeEmpty())
		})
	})
})
