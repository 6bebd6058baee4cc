package expense

import (
	"log/slog"
)

// Repository interface defines the data access methods for expenses
type Repository interface {
	Create(expense *Expense) error
	GetByID(id int64) (*Expense, error)
	GetAll() ([]*Expense, error)
	GetByMonth(month YearMonth) ([]*Expense, error)
	Delete(id int64) error
}

// Service handles expense business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new expense service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateExpense records a new expense after validation.
func (s *Service) CreateExpense(dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	exp := dto.ToExpense()
	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("failed to create expense", "error", err)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"category", exp.Category,
		"amount", exp.Amount,
		"date", exp.Date.Format("2006-01-02"))

	return exp, nil
}

// GetExpenseByID retrieves an expense by ID.
func (s *Service) GetExpenseByID(id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, err
	}
	return exp, nil
}

// GetAllExpenses returns the full expense history.
func (s *Service) GetAllExpenses() ([]*Expense, error) {
	expenses, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get expenses", "error", err)
		return nil, err
	}
	return expenses, nil
}

// GetExpensesForMonth returns the expenses recorded in one month.
func (s *Service) GetExpensesForMonth(month YearMonth) ([]*Expense, error) {
	expenses, err := s.repo.GetByMonth(month)
	if err != nil {
		s.logger.Error("failed to get expenses for month", "error", err, "month", month.Key())
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Warn("delete requested for missing expense", "expense_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return err
	}

	s.logger.Info("expense deleted", "expense_id", id)
	return nil
}
