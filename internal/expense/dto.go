package expense

import (
	"math"
	"strings"
	"time"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/category"
)

// CreateExpenseDTO represents the request payload for creating an expense
type CreateExpenseDTO struct {
	Name     string            `json:"name"`
	Amount   float64           `json:"amount"`
	Category category.Category `json:"category"`
	Date     string            `json:"date"` // YYYY-MM-DD
}

// Validate validates the CreateExpenseDTO
func (dto CreateExpenseDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	if dto.Amount <= 0 || math.IsNaN(dto.Amount) || math.IsInf(dto.Amount, 0) {
		return internal.NewValidationError("amount must be a positive number", internal.ErrCodeInvalidAmount)
	}
	if !category.IsValid(dto.Category) {
		return internal.NewValidationError("unknown category", internal.ErrCodeInvalidCategory)
	}
	if _, err := dto.parseDate(); err != nil {
		return internal.NewValidationError("date must be in YYYY-MM-DD form", internal.ErrCodeInvalidDate)
	}
	return nil
}

func (dto CreateExpenseDTO) parseDate() (time.Time, error) {
	return time.Parse("2006-01-02", dto.Date)
}

// ToExpense builds the entity from a validated DTO.
func (dto CreateExpenseDTO) ToExpense() *Expense {
	date, _ := dto.parseDate()
	return &Expense{
		Name:     strings.TrimSpace(dto.Name),
		Amount:   dto.Amount,
		Category: dto.Category,
		Date:     date,
	}
}
