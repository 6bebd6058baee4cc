package advisor

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/frahmantamala/budget-insights/internal/category"
	"github.com/frahmantamala/budget-insights/internal/expense"
)

const (
	urgentUsagePercent  = 90
	warningUsagePercent = 75
	// highSpendingPercent is the share of total spend above which a
	// category is flagged for optimization.
	highSpendingPercent     = 15
	highPriorityPercent     = 25
	smallExpenseMin         = 5
	smallExpenseMax         = 50
	smallExpenseMinCount    = 3
	subscriptionAuditTotal  = 100
	emergencySavingsShare   = 0.10
	minPersonalizedAdvice   = 3
	urgentSavingsRate       = 0.10
	warningSavingsRate      = 0.05
	smallExpenseSavingsRate = 0.30
	subscriptionSavingsRate = 0.25
)

// Engine turns one month's spending into ranked savings suggestions.
// Like the prediction engine it is stateless and recomputes everything
// per call.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a savings advisor engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Advise analyzes the reference month's spending against the budget
// and produces prioritized savings suggestions. A budget of 0 means no
// budget is set; usage-based suggestions degrade gracefully.
func (e *Engine) Advise(expenses []expense.Expense, budget float64, month expense.YearMonth) Result {
	current, skipped := currentMonthExpenses(expenses, month)
	if skipped > 0 {
		e.logger.Warn("skipped malformed expense records", "skipped", skipped, "month", month.Key())
	}

	if len(current) == 0 {
		return Result{
			Suggestions:    gettingStartedSuggestions(),
			Analysis:       Analysis{CategorySpending: map[category.Category]CategoryStat{}},
			SkippedRecords: skipped,
		}
	}

	analysis := analyzeSpending(current, budget)
	suggestions := e.buildSuggestions(analysis)

	var total float64
	for _, s := range suggestions {
		total += s.PotentialSavings
	}

	e.logger.Debug("advisor run complete",
		"month", month.Key(),
		"suggestions", len(suggestions),
		"total_potential_savings", total)

	return Result{
		Suggestions:           suggestions,
		TotalPotentialSavings: total,
		Analysis:              analysis,
		SkippedRecords:        skipped,
	}
}

func currentMonthExpenses(expenses []expense.Expense, month expense.YearMonth) ([]expense.Expense, int) {
	var current []expense.Expense
	skipped := 0
	for _, e := range expenses {
		if !e.Valid() {
			skipped++
			continue
		}
		if month.Contains(e.Date) {
			current = append(current, e)
		}
	}
	return current, skipped
}

func analyzeSpending(expenses []expense.Expense, budget float64) Analysis {
	a := Analysis{
		CategorySpending: make(map[category.Category]CategoryStat),
		ExpenseCount:     len(expenses),
	}

	for _, e := range expenses {
		a.TotalSpent += e.Amount
		stat := a.CategorySpending[e.Category]
		stat.Total += e.Amount
		stat.Count++
		a.CategorySpending[e.Category] = stat
	}
	a.AverageExpenseAmount = a.TotalSpent / float64(len(expenses))

	if budget > 0 {
		a.BudgetUsagePercentage = a.TotalSpent / budget * 100
	}

	for c, stat := range a.CategorySpending {
		if a.TotalSpent > 0 {
			stat.Percentage = stat.Total / a.TotalSpent * 100
		}
		stat.Average = stat.Total / float64(stat.Count)
		a.CategorySpending[c] = stat

		if stat.Percentage > highSpendingPercent {
			a.HighSpendingCategories = append(a.HighSpendingCategories, CategoryTotal{Category: c, CategoryStat: stat})
		}
	}
	sort.SliceStable(a.HighSpendingCategories, func(i, j int) bool {
		if a.HighSpendingCategories[i].Total != a.HighSpendingCategories[j].Total {
			return a.HighSpendingCategories[i].Total > a.HighSpendingCategories[j].Total
		}
		return a.HighSpendingCategories[i].Category < a.HighSpendingCategories[j].Category
	})

	a.FrequentSmallExpenses = frequentSmallExpenses(expenses)
	return a
}

// frequentSmallExpenses finds repeated small purchases: distinct
// (category, name) pairs with unit amounts strictly between 5 and 50
// occurring at least 3 times, sorted by total amount descending.
func frequentSmallExpenses(expenses []expense.Expense) []SmallExpenseGroup {
	type key struct {
		category category.Category
		name     string
	}
	groups := make(map[key]*SmallExpenseGroup)
	var order []key

	for _, e := range expenses {
		if e.Amount <= smallExpenseMin || e.Amount >= smallExpenseMax {
			continue
		}
		k := key{category: e.Category, name: e.Name}
		g, ok := groups[k]
		if !ok {
			g = &SmallExpenseGroup{Name: e.Name, Category: e.Category}
			groups[k] = g
			order = append(order, k)
		}
		g.Count++
		g.TotalAmount += e.Amount
		g.AverageAmount = g.TotalAmount / float64(g.Count)
	}

	var frequent []SmallExpenseGroup
	for _, k := range order {
		if g := groups[k]; g.Count >= smallExpenseMinCount {
			frequent = append(frequent, *g)
		}
	}
	sort.SliceStable(frequent, func(i, j int) bool {
		return frequent[i].TotalAmount > frequent[j].TotalAmount
	})
	return frequent
}

func (e *Engine) buildSuggestions(a Analysis) []Suggestion {
	var suggestions []Suggestion

	if s, ok := budgetUsageSuggestion(a); ok {
		suggestions = append(suggestions, s)
	}
	suggestions = append(suggestions, highSpendingSuggestions(a)...)
	if s, ok := frequentSmallExpenseSuggestion(a); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := emergencyFundSuggestion(a); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := subscriptionAuditSuggestion(a); ok {
		suggestions = append(suggestions, s)
	}

	if len(suggestions) < minPersonalizedAdvice {
		suggestions = append(suggestions, generalSavingsTips(a)...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if priorityRank[suggestions[i].Priority] != priorityRank[suggestions[j].Priority] {
			return priorityRank[suggestions[i].Priority] > priorityRank[suggestions[j].Priority]
		}
		return suggestions[i].PotentialSavings > suggestions[j].PotentialSavings
	})
	return suggestions
}

func budgetUsageSuggestion(a Analysis) (Suggestion, bool) {
	switch usage := a.BudgetUsagePercentage; {
	case usage > urgentUsagePercent:
		return Suggestion{
			ID:          "budget-overspending",
			Type:        TypeUrgent,
			Category:    "Budget",
			Title:       "🚨 At Risk of Exceeding Your Budget",
			Description: fmt.Sprintf("You have spent %.1f%% of your monthly budget. Time to cut non-essential expenses.", usage),
			ActionItems: []string{
				"Review pending expenses and postpone the non-urgent ones",
				"Set a daily limit for the rest of the month",
				"Consider raising your budget if that is realistic",
			},
			PotentialSavings: a.TotalSpent * urgentSavingsRate,
			Priority:         PriorityHigh,
			Icon:             "🚨",
		}, true
	case usage > warningUsagePercent:
		return Suggestion{
			ID:          "budget-warning",
			Type:        TypeWarning,
			Category:    "Budget",
			Title:       "⚠️ Approaching Your Budget Limit",
			Description: fmt.Sprintf("You have used %.1f%% of your budget. Keep the next expenses under control.", usage),
			ActionItems: []string{
				"Watch daily spending more closely",
				"Prioritize essential expenses",
				"Look for cheaper alternatives",
			},
			PotentialSavings: a.TotalSpent * warningSavingsRate,
			Priority:         PriorityMedium,
			Icon:             "⚠️",
		}, true
	}
	return Suggestion{}, false
}

// highSpendingSuggestions covers the top two high-spending categories
// that have a savings template. Categories without a template are
// skipped.
func highSpendingSuggestions(a Analysis) []Suggestion {
	var suggestions []Suggestion
	top := a.HighSpendingCategories
	if len(top) > 2 {
		top = top[:2]
	}

	for _, ct := range top {
		tmpl, ok := category.Template(ct.Category)
		if !ok {
			continue
		}

		priority := PriorityMedium
		if ct.Percentage > highPriorityPercent {
			priority = PriorityHigh
		}

		name := category.DisplayName(ct.Category)
		suggestions = append(suggestions, Suggestion{
			ID:               fmt.Sprintf("category-%s", ct.Category),
			Type:             TypeOptimization,
			Category:         name,
			Title:            fmt.Sprintf("💡 Optimize %s Spending", name),
			Description:      fmt.Sprintf("%s makes up %.1f%% of your spending (%.2f). Here are ways to save:", name, ct.Percentage, ct.Total),
			ActionItems:      tmpl.ActionItems,
			PotentialSavings: ct.Total * tmpl.Rate,
			Priority:         priority,
			Icon:             category.Icon(ct.Category),
		})
	}
	return suggestions
}

func frequentSmallExpenseSuggestion(a Analysis) (Suggestion, bool) {
	if len(a.FrequentSmallExpenses) == 0 {
		return Suggestion{}, false
	}

	top := a.FrequentSmallExpenses[0]
	return Suggestion{
		ID:          "frequent-small-expenses",
		Type:        TypeHabit,
		Category:    "Spending Habits",
		Title:       "🔄 Rein In Frequent Small Expenses",
		Description: fmt.Sprintf("You frequently spend on %q (%d times, %.2f total). Small changes can add up to big savings.", top.Name, top.Count, top.TotalAmount),
		ActionItems: []string{
			fmt.Sprintf("Cut the frequency of %q in half", top.Name),
			"Look for cheaper or homemade alternatives",
			"Set a weekly limit for small purchases",
			"Consider buying in bulk for discounts",
		},
		PotentialSavings: top.TotalAmount * smallExpenseSavingsRate,
		Priority:         PriorityMedium,
		Icon:             "🔄",
	}, true
}

func emergencyFundSuggestion(a Analysis) (Suggestion, bool) {
	savings, ok := a.CategorySpending[category.Savings]
	if ok && savings.Total >= a.TotalSpent*emergencySavingsShare {
		return Suggestion{}, false
	}

	return Suggestion{
		ID:          "emergency-fund",
		Type:        TypeFinancialHealth,
		Category:    "Savings",
		Title:       "💰 Build Your Emergency Fund",
		Description: "You have not set aside enough savings. An emergency fund is essential for financial stability.",
		ActionItems: []string{
			"Put at least 10% of your income toward savings",
			"Automate transfers to a savings account",
			"Start with small amounts if you need to",
			"Treat savings as a mandatory expense",
		},
		PotentialSavings: a.TotalSpent * emergencySavingsShare,
		Priority:         PriorityHigh,
		Icon:             "💰",
	}, true
}

func subscriptionAuditSuggestion(a Analysis) (Suggestion, bool) {
	subs, ok := a.CategorySpending[category.Subscriptions]
	if !ok || subs.Total <= subscriptionAuditTotal {
		return Suggestion{}, false
	}

	return Suggestion{
		ID:          "subscription-audit",
		Type:        TypeOptimization,
		Category:    "Subscriptions",
		Title:       "📺 Audit Your Subscriptions",
		Description: fmt.Sprintf("You spend %.2f on subscriptions. Review which ones you actually use.", subs.Total),
		ActionItems: []string{
			"List all your active subscriptions",
			"Cancel the ones you rarely use",
			"Consider family plans to share costs",
			"Look for promotions or annual discounts",
		},
		PotentialSavings: subs.Total * subscriptionSavingsRate,
		Priority:         PriorityMedium,
		Icon:             "📺",
	}, true
}
