package storage

import (
	"errors"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

// Create saves a new expense to the database
func (r *ExpenseRepository) Create(exp *expense.Expense) error {
	return r.db.Create(exp).Error
}

// GetByID retrieves an expense by its ID
func (r *ExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	var exp expense.Expense
	err := r.db.Where("id = ?", id).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// GetAll retrieves the full expense history, oldest first
func (r *ExpenseRepository) GetAll() ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Order("date ASC, id ASC").Find(&expenses).Error
	return expenses, err
}

// GetByMonth retrieves the expenses dated within one calendar month
func (r *ExpenseRepository) GetByMonth(month expense.YearMonth) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.
		Where("date >= ? AND date < ?", month.First(), month.Next().First()).
		Order("date ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

// Delete removes an expense by ID
func (r *ExpenseRepository) Delete(id int64) error {
	return r.db.Delete(&expense.Expense{}, id).Error
}
