package insights

import (
	"log/slog"

	"github.com/frahmantamala/budget-insights/internal/advisor"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"github.com/frahmantamala/budget-insights/internal/prediction"
)

// ExpenseReader supplies the expense history the engines analyze.
type ExpenseReader interface {
	GetAllExpenses() ([]*expense.Expense, error)
}

// BudgetReader supplies a month's budget amount, 0 when none is set.
type BudgetReader interface {
	AmountFor(month expense.YearMonth) (float64, error)
}

// PredictionReport is the API shape of one prediction run.
type PredictionReport struct {
	Month     string `json:"month"`
	NextMonth string `json:"next_month"`
	prediction.Result
	Summary prediction.Summary `json:"summary"`
}

// SavingsReport is the API shape of one advisor run.
type SavingsReport struct {
	Month  string  `json:"month"`
	Budget float64 `json:"budget"`
	advisor.Result
	Summary advisor.Summary `json:"summary"`
}

// Service runs both analytics engines against the stored data. Each
// call loads fresh inputs and recomputes from scratch; nothing is
// cached between invocations.
type Service struct {
	expenses  ExpenseReader
	budgets   BudgetReader
	predictor *prediction.Engine
	advisor   *advisor.Engine
	logger    *slog.Logger
}

// NewService creates an insights service over the given readers.
func NewService(expenses ExpenseReader, budgets BudgetReader, logger *slog.Logger) *Service {
	return &Service{
		expenses:  expenses,
		budgets:   budgets,
		predictor: prediction.NewEngine(logger),
		advisor:   advisor.NewEngine(logger),
		logger:    logger,
	}
}

// Predictions projects next month's expenses relative to the given
// reference month.
func (s *Service) Predictions(month expense.YearMonth) (*PredictionReport, error) {
	history, err := s.loadHistory()
	if err != nil {
		return nil, err
	}

	result := s.predictor.Predict(history, month)
	return &PredictionReport{
		Month:     month.Key(),
		NextMonth: month.Next().Key(),
		Result:    result,
		Summary:   prediction.Summarize(result.Predictions),
	}, nil
}

// Suggestions produces savings advice for the given reference month.
func (s *Service) Suggestions(month expense.YearMonth) (*SavingsReport, error) {
	history, err := s.loadHistory()
	if err != nil {
		return nil, err
	}

	budget, err := s.budgets.AmountFor(month)
	if err != nil {
		s.logger.Error("failed to load budget", "error", err, "month", month.Key())
		return nil, err
	}

	result := s.advisor.Advise(history, budget, month)
	return &SavingsReport{
		Month:   month.Key(),
		Budget:  budget,
		Result:  result,
		Summary: advisor.Summarize(result.Suggestions),
	}, nil
}

func (s *Service) loadHistory() ([]expense.Expense, error) {
	stored, err := s.expenses.GetAllExpenses()
	if err != nil {
		s.logger.Error("failed to load expense history", "error", err)
		return nil, err
	}

	history := make([]expense.Expense, 0, len(stored))
	for _, e := range stored {
		history = append(history, *e)
	}
	return history, nil
}
