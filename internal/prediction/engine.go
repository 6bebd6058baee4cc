package prediction

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/frahmantamala/budget-insights/internal/category"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"github.com/google/uuid"
)

const (
	baseConfidence = 0.3
	// fallbackDay is the assumed day of month when no occurrence dates
	// exist to estimate from.
	fallbackDay = 15
	// maxEstimatedDay caps estimated days so the date is valid in
	// short months.
	maxEstimatedDay = 28
)

// Engine projects next month's expenses from spending history. It is
// stateless: every call recomputes the analysis from scratch.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a prediction engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

type bucket struct {
	current []expense.Expense
	prior   []expense.Expense
}

// Predict analyzes per-category spending history relative to the
// reference month and projects expenses for the following month.
func (e *Engine) Predict(expenses []expense.Expense, month expense.YearMonth) Result {
	current, prior, skipped := expense.Partition(expenses, month)
	if skipped > 0 {
		e.logger.Warn("skipped malformed expense records", "skipped", skipped, "month", month.Key())
	}

	result := Result{
		Predictions:      []Prediction{},
		CategoryAnalysis: make(map[category.Category]CategoryAnalysis),
		SkippedRecords:   skipped,
	}
	if len(current) == 0 && len(prior) == 0 {
		return result
	}

	buckets := groupByCategory(current, prior)
	for c, b := range buckets {
		result.CategoryAnalysis[c] = analyzeCategory(c, b)
	}

	result.Predictions = e.buildPredictions(buckets, result.CategoryAnalysis, month)
	for _, p := range result.Predictions {
		result.TotalPredicted += p.Amount
	}
	result.Confidence = overallConfidence(result.CategoryAnalysis, len(current))

	e.logger.Debug("prediction run complete",
		"month", month.Key(),
		"predictions", len(result.Predictions),
		"total_predicted", result.TotalPredicted,
		"confidence", result.Confidence)

	return result
}

// groupByCategory buckets expenses per category over the union of both
// partitions, so categories with only historical data stay visible.
func groupByCategory(current, prior []expense.Expense) map[category.Category]*bucket {
	buckets := make(map[category.Category]*bucket)
	get := func(c category.Category) *bucket {
		b, ok := buckets[c]
		if !ok {
			b = &bucket{}
			buckets[c] = b
		}
		return b
	}
	for _, e := range current {
		b := get(e.Category)
		b.current = append(b.current, e)
	}
	for _, e := range prior {
		b := get(e.Category)
		b.prior = append(b.prior, e)
	}
	return buckets
}

func analyzeCategory(c category.Category, b *bucket) CategoryAnalysis {
	currentTotal := sumAmounts(b.current)
	previousTotal := sumAmounts(b.prior)
	total := len(b.current) + len(b.prior)

	a := CategoryAnalysis{
		CurrentCount:  len(b.current),
		CurrentTotal:  currentTotal,
		PreviousCount: len(b.prior),
		PreviousTotal: previousTotal,
		Frequency:     math.Min(float64(total)/10, 1),
		IsImportant:   category.IsImportant(c),
	}

	switch {
	case len(b.current) > 0:
		a.CurrentAverage = currentTotal / float64(len(b.current))
	case len(b.prior) > 0:
		a.CurrentAverage = previousTotal / float64(len(b.prior))
	}

	a.IsRecurrent = total >= 3 || (a.IsImportant && total >= 1)
	a.Confidence = categoryConfidence(a, b.current)
	return a
}

func categoryConfidence(a CategoryAnalysis, current []expense.Expense) float64 {
	confidence := baseConfidence

	if a.IsImportant {
		confidence += 0.3
	}

	switch total := a.CurrentCount + a.PreviousCount; {
	case total >= 5:
		confidence += 0.3
	case total >= 3:
		confidence += 0.2
	case total >= 2:
		confidence += 0.1
	}

	// consistent current-month amounts make the category more predictable
	if len(current) >= 2 && coefficientOfVariation(current) < 0.3 {
		confidence += 0.1
	}

	return math.Min(confidence, 1)
}

func coefficientOfVariation(expenses []expense.Expense) float64 {
	mean := sumAmounts(expenses) / float64(len(expenses))
	var variance float64
	for _, e := range expenses {
		variance += (e.Amount - mean) * (e.Amount - mean)
	}
	variance /= float64(len(expenses))
	return math.Sqrt(variance) / mean
}

func (e *Engine) buildPredictions(buckets map[category.Category]*bucket, analysis map[category.Category]CategoryAnalysis, month expense.YearMonth) []Prediction {
	next := month.Next()
	predictions := []Prediction{}

	for _, c := range sortedCategories(buckets) {
		a := analysis[c]
		if !a.IsRecurrent && !a.IsImportant {
			continue
		}

		b := buckets[c]
		if a.IsImportant && a.CurrentCount == 0 && a.PreviousCount > 0 {
			predictions = append(predictions, historicalFallback(c, a, next))
			continue
		}
		if a.CurrentCount == 0 {
			continue
		}

		for _, t := range expenseTypes(b.current) {
			predictions = append(predictions, Prediction{
				ID:            uuid.NewString(),
				Category:      c,
				Name:          t.name,
				Amount:        math.Round(mean(t.amounts)),
				Icon:          category.Icon(c),
				EstimatedDate: estimateNextDate(t.dates, next),
				Confidence:    a.Confidence,
				IsRecurrent:   a.IsRecurrent,
				IsImportant:   a.IsImportant,
				Frequency:     a.Frequency,
				Source:        SourcePattern,
			})
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].Confidence != predictions[j].Confidence {
			return predictions[i].Confidence > predictions[j].Confidence
		}
		return predictions[i].Amount > predictions[j].Amount
	})
	return predictions
}

// historicalFallback keeps an essential recurring category (rent,
// utilities) in the projection when the user has not logged it this
// month: one synthetic prediction from the prior-month average.
func historicalFallback(c category.Category, a CategoryAnalysis, next expense.YearMonth) Prediction {
	return Prediction{
		ID:            uuid.NewString(),
		Category:      c,
		Name:          category.DisplayName(c),
		Amount:        math.Round(a.CurrentAverage),
		Icon:          category.Icon(c),
		EstimatedDate: next.DayIn(fallbackDay),
		Confidence:    math.Max(a.Confidence, 0.6),
		IsRecurrent:   true,
		IsImportant:   true,
		Frequency:     a.Frequency,
		Source:        SourceHistorical,
	}
}

type expenseType struct {
	name    string
	amounts []float64
	dates   []time.Time
}

// expenseTypes groups a category's current-month expenses by exact
// name, in sorted name order for deterministic output.
func expenseTypes(expenses []expense.Expense) []expenseType {
	byName := make(map[string]*expenseType)
	for _, e := range expenses {
		t, ok := byName[e.Name]
		if !ok {
			t = &expenseType{name: e.Name}
			byName[e.Name] = t
		}
		t.amounts = append(t.amounts, e.Amount)
		t.dates = append(t.dates, e.Date)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	types := make([]expenseType, 0, len(names))
	for _, name := range names {
		types = append(types, *byName[name])
	}
	return types
}

// estimateNextDate projects when a named expense will recur: the same
// day of month for a single occurrence, the rounded mean day for
// several, day 15 with no history. Days are capped at 28 to stay valid
// in short months.
func estimateNextDate(dates []time.Time, next expense.YearMonth) time.Time {
	switch len(dates) {
	case 0:
		return next.DayIn(fallbackDay)
	case 1:
		return next.DayIn(min(dates[0].Day(), maxEstimatedDay))
	}

	var sum int
	for _, d := range dates {
		sum += d.Day()
	}
	day := int(math.Round(float64(sum) / float64(len(dates))))
	return next.DayIn(min(day, maxEstimatedDay))
}

// overallConfidence averages the per-category confidences and scales by
// data volume. No current-month data means no confidence at all.
func overallConfidence(analysis map[category.Category]CategoryAnalysis, currentCount int) float64 {
	if currentCount == 0 || len(analysis) == 0 {
		return 0
	}

	var sum float64
	for _, a := range analysis {
		sum += a.Confidence
	}
	avg := sum / float64(len(analysis))

	multiplier := 1.0
	switch {
	case currentCount >= 20:
		multiplier = 1.1
	case currentCount >= 10:
		multiplier = 1.05
	case currentCount < 5:
		multiplier = 0.8
	}

	return math.Min(avg*multiplier, 1)
}

func sumAmounts(expenses []expense.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sortedCategories(buckets map[category.Category]*bucket) []category.Category {
	categories := make([]category.Category, 0, len(buckets))
	for c := range buckets {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}
