package advisor

import (
	"github.com/frahmantamala/budget-insights/internal/category"
)

// Priority tiers a suggestion for display ordering.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// SuggestionType tags what kind of advice a suggestion carries.
type SuggestionType string

const (
	TypeUrgent          SuggestionType = "urgent"
	TypeWarning         SuggestionType = "warning"
	TypeOptimization    SuggestionType = "optimization"
	TypeHabit           SuggestionType = "habit"
	TypeFinancialHealth SuggestionType = "financial-health"
	TypeGettingStarted  SuggestionType = "getting-started"
	TypeGeneral         SuggestionType = "general"
)

// Suggestion is one actionable savings recommendation.
type Suggestion struct {
	ID               string         `json:"id"`
	Type             SuggestionType `json:"type"`
	Category         string         `json:"category"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ActionItems      []string       `json:"action_items"`
	PotentialSavings float64        `json:"potential_savings"`
	Priority         Priority       `json:"priority"`
	Icon             string         `json:"icon"`
}

// CategoryStat aggregates one category's current-month spending.
type CategoryStat struct {
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Average    float64 `json:"average"`
}

// CategoryTotal pairs a category with its stats, for the sorted
// high-spending list.
type CategoryTotal struct {
	Category category.Category `json:"category"`
	CategoryStat
}

// SmallExpenseGroup is a distinct (category, name) pair of repeated
// small purchases.
type SmallExpenseGroup struct {
	Name          string            `json:"name"`
	Category      category.Category `json:"category"`
	Count         int               `json:"count"`
	TotalAmount   float64           `json:"total_amount"`
	AverageAmount float64           `json:"average_amount"`
}

// Analysis is the spending breakdown the suggestions are derived from.
type Analysis struct {
	TotalSpent             float64                            `json:"total_spent"`
	BudgetUsagePercentage  float64                            `json:"budget_usage_percentage"`
	CategorySpending       map[category.Category]CategoryStat `json:"category_spending"`
	HighSpendingCategories []CategoryTotal                    `json:"high_spending_categories"`
	FrequentSmallExpenses  []SmallExpenseGroup                `json:"frequent_small_expenses"`
	ExpenseCount           int                                `json:"expense_count"`
	AverageExpenseAmount   float64                            `json:"average_expense_amount"`
}

// Result is the full output of one advisor run.
type Result struct {
	Suggestions           []Suggestion `json:"suggestions"`
	TotalPotentialSavings float64      `json:"total_potential_savings"`
	Analysis              Analysis     `json:"analysis"`
	SkippedRecords        int          `json:"skipped_records"`
}

// Summary holds display statistics over a suggestion list.
type Summary struct {
	TotalSuggestions      int     `json:"total_suggestions"`
	TotalPotentialSavings float64 `json:"total_potential_savings"`
	HighPriorityCount     int     `json:"high_priority_count"`
	CategoriesAffected    int     `json:"categories_affected"`
}

// Summarize computes display statistics for a suggestion list.
func Summarize(suggestions []Suggestion) Summary {
	s := Summary{TotalSuggestions: len(suggestions)}
	categories := make(map[string]struct{})
	for _, sg := range suggestions {
		s.TotalPotentialSavings += sg.PotentialSavings
		categories[sg.Category] = struct{}{}
		if sg.Priority == PriorityHigh {
			s.HighPriorityCount++
		}
	}
	s.CategoriesAffected = len(categories)
	return s
}
