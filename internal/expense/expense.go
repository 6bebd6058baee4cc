package expense

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/frahmantamala/budget-insights/internal/category"
)

// Expense is one recorded spend. Expenses are immutable once created:
// the only lifecycle operations are create and delete.
type Expense struct {
	ID        int64             `json:"id" gorm:"primaryKey"`
	Name      string            `json:"name" gorm:"not null"`
	Amount    float64           `json:"amount" gorm:"not null"`
	Category  category.Category `json:"category" gorm:"not null"`
	Date      time.Time         `json:"date" gorm:"type:date;not null"`
	CreatedAt time.Time         `json:"created_at"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// Valid reports whether the record is well formed enough for analysis.
// The engines skip invalid records instead of propagating NaNs.
func (e Expense) Valid() bool {
	if strings.TrimSpace(e.Name) == "" {
		return false
	}
	if e.Amount <= 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return false
	}
	if !category.IsValid(e.Category) {
		return false
	}
	return !e.Date.IsZero()
}

// YearMonth identifies one calendar month. It anchors the analysis
// window: "current" means within the month, "prior" means strictly
// before its first day.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthOf returns the YearMonth containing t.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a YYYY-MM month key.
func ParseYearMonth(key string) (YearMonth, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return MonthOf(t), nil
}

// Key returns the YYYY-MM form used as the budget map key.
func (m YearMonth) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// First returns the first day of the month.
func (m YearMonth) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month.
func (m YearMonth) Next() YearMonth {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Contains reports whether t falls within the month.
func (m YearMonth) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// DayIn returns the given day of this month. Day is expected to be at
// most 28 so the date is valid in every month.
func (m YearMonth) DayIn(day int) time.Time {
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Partition splits expenses into those within the reference month and
// those strictly before its first day. Later-dated records are ignored.
// Invalid records are skipped and counted.
func Partition(expenses []Expense, month YearMonth) (current, prior []Expense, skipped int) {
	first := month.First()
	for _, e := range expenses {
		if !e.Valid() {
			skipped++
			continue
		}
		switch {
		case month.Contains(e.Date):
			current = append(current, e)
		case e.Date.Before(first):
			prior = append(prior, e)
		}
	}
	return current, prior, skipped
}
