package budget

import (
	"errors"
	"log/slog"
	"math"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/expense"
)

// Repository interface defines the data access methods for budgets
type Repository interface {
	Upsert(b *Budget) error
	GetByMonthKey(key string) (*Budget, error)
	GetAll() ([]*Budget, error)
	Delete(key string) error
}

// Service handles budget business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new budget service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SetBudget stores the budget for one month, replacing any previous value.
func (s *Service) SetBudget(month expense.YearMonth, dto SetBudgetDTO) (*Budget, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("budget validation failed", "error", err, "month", month.Key())
		return nil, err
	}

	b := &Budget{MonthKey: month.Key(), Amount: dto.Amount}
	if err := s.repo.Upsert(b); err != nil {
		s.logger.Error("failed to set budget", "error", err, "month", month.Key())
		return nil, err
	}

	s.logger.Info("budget set", "month", b.MonthKey, "amount", b.Amount)
	return b, nil
}

// GetBudget returns the budget for one month.
func (s *Service) GetBudget(month expense.YearMonth) (*Budget, error) {
	b, err := s.repo.GetByMonthKey(month.Key())
	if err != nil {
		return nil, err
	}
	return b, nil
}

// AmountFor returns the budget amount for one month, or 0 when no
// budget is set. "No budget" is a normal state, never an error.
func (s *Service) AmountFor(month expense.YearMonth) (float64, error) {
	b, err := s.repo.GetByMonthKey(month.Key())
	if err != nil {
		if errors.Is(err, internal.ErrBudgetNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if b.Amount <= 0 || math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) {
		// malformed stored value reads as absent
		s.logger.Warn("ignoring malformed stored budget", "month", b.MonthKey, "amount", b.Amount)
		return 0, nil
	}
	return b.Amount, nil
}

// GetAllBudgets returns every month's budget.
func (s *Service) GetAllBudgets() ([]*Budget, error) {
	budgets, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get budgets", "error", err)
		return nil, err
	}
	return budgets, nil
}

// DeleteBudget removes a month's budget.
func (s *Service) DeleteBudget(month expense.YearMonth) error {
	if _, err := s.repo.GetByMonthKey(month.Key()); err != nil {
		return err
	}
	if err := s.repo.Delete(month.Key()); err != nil {
		s.logger.Error("failed to delete budget", "error", err, "month", month.Key())
		return err
	}
	s.logger.Info("budget deleted", "month", month.Key())
	return nil
}

// MigrateLegacyBudget moves a pre-per-month global budget value into
// the given month's entry. The legacy row is removed either way: a
// malformed amount is treated as absent rather than propagated.
func (s *Service) MigrateLegacyBudget(month expense.YearMonth) error {
	legacy, err := s.repo.GetByMonthKey(LegacyMonthKey)
	if err != nil {
		if errors.Is(err, internal.ErrBudgetNotFound) {
			return nil
		}
		return err
	}

	valid := legacy.Amount > 0 && !math.IsNaN(legacy.Amount) && !math.IsInf(legacy.Amount, 0)
	if valid {
		if _, err := s.repo.GetByMonthKey(month.Key()); errors.Is(err, internal.ErrBudgetNotFound) {
			b := &Budget{MonthKey: month.Key(), Amount: legacy.Amount}
			if err := s.repo.Upsert(b); err != nil {
				s.logger.Error("failed to migrate legacy budget", "error", err, "month", month.Key())
				return err
			}
			s.logger.Info("migrated legacy budget", "month", month.Key(), "amount", legacy.Amount)
		}
	} else {
		s.logger.Warn("dropping malformed legacy budget", "amount", legacy.Amount)
	}

	return s.repo.Delete(LegacyMonthKey)
}
