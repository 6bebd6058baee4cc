package budget

import (
	"math"
	"time"

	"github.com/frahmantamala/budget-insights/internal"
)

// Budget is the spending limit for one calendar month. MonthKey is the
// YYYY-MM form; at most one row exists per month.
type Budget struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	MonthKey  string    `json:"month" gorm:"column:month_key;uniqueIndex;not null"`
	Amount    float64   `json:"amount" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Budget) TableName() string {
	return "budgets"
}

// LegacyMonthKey is where versions before per-month budgets stored the
// single global amount. Rows under this key are migrated on startup.
const LegacyMonthKey = "global"

// SetBudgetDTO represents the request payload for setting a month's budget
type SetBudgetDTO struct {
	Amount float64 `json:"amount"`
}

// Validate validates the SetBudgetDTO
func (dto SetBudgetDTO) Validate() error {
	if dto.Amount <= 0 || math.IsNaN(dto.Amount) || math.IsInf(dto.Amount, 0) {
		return internal.NewValidationError("amount must be a positive number", internal.ErrCodeInvalidAmount)
	}
	return nil
}
