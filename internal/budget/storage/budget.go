package storage

import (
	"errors"
	"time"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/budget"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetRepository implements the budget.Repository interface using GORM
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) budget.Repository {
	return &BudgetRepository{db: db}
}

// Upsert inserts or replaces the budget for a month
func (r *BudgetRepository) Upsert(b *budget.Budget) error {
	b.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(b).Error
}

// GetByMonthKey retrieves the budget stored under one month key
func (r *BudgetRepository) GetByMonthKey(key string) (*budget.Budget, error) {
	var b budget.Budget
	err := r.db.Where("month_key = ?", key).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrBudgetNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetAll retrieves every month's budget, newest month first
func (r *BudgetRepository) GetAll() ([]*budget.Budget, error) {
	var budgets []*budget.Budget
	err := r.db.Order("month_key DESC").Find(&budgets).Error
	return budgets, err
}

// Delete removes the budget stored under one month key
func (r *BudgetRepository) Delete(key string) error {
	return r.db.Where("month_key = ?", key).Delete(&budget.Budget{}).Error
}
