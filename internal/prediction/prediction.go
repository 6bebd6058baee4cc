package prediction

import (
	"time"

	"github.com/frahmantamala/budget-insights/internal/category"
)

// Source tags how a prediction was derived.
type Source string

const (
	// SourcePattern marks predictions built from the current month's
	// spending patterns.
	SourcePattern Source = "pattern_analysis"
	// SourceHistorical marks synthetic predictions kept alive from
	// prior-month history for essential categories with no current
	// entries.
	SourceHistorical Source = "historical_average"
)

// Prediction is one projected expense for the following month.
type Prediction struct {
	ID            string            `json:"id"`
	Category      category.Category `json:"category"`
	Name          string            `json:"name"`
	Amount        float64           `json:"amount"`
	Icon          string            `json:"icon"`
	EstimatedDate time.Time         `json:"estimated_date"`
	Confidence    float64           `json:"confidence"`
	IsRecurrent   bool              `json:"is_recurrent"`
	IsImportant   bool              `json:"is_important"`
	Frequency     float64           `json:"frequency"`
	Source        Source            `json:"source"`
}

// CategoryAnalysis aggregates one category's spending over the current
// month and all prior months. Rebuilt in full on every call.
type CategoryAnalysis struct {
	CurrentCount int     `json:"current_count"`
	CurrentTotal float64 `json:"current_total"`
	// CurrentAverage is the mean current-month amount; when the
	// category has history but no current entries it falls back to the
	// prior-month mean so essential categories do not vanish from the
	// analysis.
	CurrentAverage float64 `json:"current_average"`
	PreviousCount  int     `json:"previous_count"`
	PreviousTotal  float64 `json:"previous_total"`
	Frequency      float64 `json:"frequency"`
	IsRecurrent    bool    `json:"is_recurrent"`
	IsImportant    bool    `json:"is_important"`
	Confidence     float64 `json:"confidence"`
}

// Result is the full output of one prediction run.
type Result struct {
	Predictions      []Prediction                           `json:"predictions"`
	TotalPredicted   float64                                `json:"total_predicted"`
	Confidence       float64                                `json:"confidence"`
	CategoryAnalysis map[category.Category]CategoryAnalysis `json:"category_analysis"`
	SkippedRecords   int                                    `json:"skipped_records"`
}

// Summary holds display statistics over a prediction list.
type Summary struct {
	TotalAmount         float64 `json:"total_amount"`
	CategoryCount       int     `json:"category_count"`
	HighConfidenceCount int     `json:"high_confidence_count"`
	RecurringCount      int     `json:"recurring_count"`
	ImportantCount      int     `json:"important_count"`
}

// Summarize computes display statistics for a prediction list.
// Predictions with confidence >= 0.7 count as high confidence.
func Summarize(predictions []Prediction) Summary {
	var s Summary
	categories := make(map[category.Category]struct{})
	for _, p := range predictions {
		s.TotalAmount += p.Amount
		categories[p.Category] = struct{}{}
		if p.Confidence >= 0.7 {
			s.HighConfidenceCount++
		}
		if p.IsRecurrent {
			s.RecurringCount++
		}
		if p.IsImportant {
			s.ImportantCount++
		}
	}
	s.CategoryCount = len(categories)
	return s
}
