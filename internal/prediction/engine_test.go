package prediction_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-insights/internal/category"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"github.com/frahmantamala/budget-insights/internal/prediction"
)

func TestPredictionEngine(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Prediction Engine Suite")
}

func newExpense(name string, amount float64, c category.Category, date time.Time) expense.Expense {
	return expense.Expense{
		Name:     name,
		Amount:   amount,
		Category: c,
		Date:     date,
	}
}

var _ = Describe("PredictionEngine", func() {
	var (
		engine *prediction.Engine
		month  expense.YearMonth
	)

	march := func(day int) time.Time {
		return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
	}
	february := func(day int) time.Time {
		return time.Date(2025, time.February, day, 0, 0, 0, 0, time.UTC)
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		engine = prediction.NewEngine(logger)
		month = expense.YearMonth{Year: 2025, Month: time.March}
	})

	Describe("Predict", func() {
		Context("with no expense history", func() {
			It("should return an empty result with zero confidence", func() {
				result := engine.Predict(nil, month)

				Expect(result.Predictions).To(BeEmpty())
				Expect(result.TotalPredicted).To(BeZero())
				Expect(result.Confidence).To(BeZero())
				Expect(result.CategoryAnalysis).To(BeEmpty())
			})
		})

		Context("with a consistent recurring category", func() {
			var expenses []expense.Expense

			BeforeEach(func() {
				expenses = []expense.Expense{
					newExpense("Groceries", 50, category.Food, march(3)),
					newExpense("Groceries", 60, category.Food, march(17)),
					newExpense("Groceries", 55, category.Food, february(10)),
				}
			})

			It("should analyze the category with full confidence bonuses", func() {
				result := engine.Predict(expenses, month)

				analysis, ok := result.CategoryAnalysis[category.Food]
				Expect(ok).To(BeTrue())
				Expect(analysis.CurrentCount).To(Equal(2))
				Expect(analysis.PreviousCount).To(Equal(1))
				Expect(analysis.CurrentAverage).To(BeNumerically("~", 55, 1e-9))
				Expect(analysis.IsImportant).To(BeTrue())
				Expect(analysis.IsRecurrent).To(BeTrue())
				Expect(analysis.Frequency).To(BeNumerically("~", 0.3, 1e-9))
				// base 0.3 + important 0.3 + three records 0.2 + low variance 0.1
				Expect(analysis.Confidence).To(BeNumerically("~", 0.9, 1e-9))
			})

			It("should predict one expense per distinct name with the rounded mean amount", func() {
				result := engine.Predict(expenses, month)

				Expect(result.Predictions).To(HaveLen(1))
				p := result.Predictions[0]
				Expect(p.Name).To(Equal("Groceries"))
				Expect(p.Category).To(Equal(category.Food))
				Expect(p.Amount).To(Equal(float64(55)))
				Expect(p.Source).To(Equal(prediction.SourcePattern))
				Expect(p.IsRecurrent).To(BeTrue())
				Expect(p.ID).ToNot(BeEmpty())
				Expect(result.TotalPredicted).To(Equal(float64(55)))
			})

			It("should scale overall confidence down for sparse current data", func() {
				result := engine.Predict(expenses, month)

				// single category at 0.9, two current records means the 0.8 multiplier
				Expect(result.Confidence).To(BeNumerically("~", 0.72, 1e-9))
			})

			It("should estimate the recurrence day from the mean of observed days", func() {
				result := engine.Predict(expenses, month)

				p := result.Predictions[0]
				// days 3 and 17 average to 10, projected into April
				Expect(p.EstimatedDate).To(Equal(time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)))
			})
		})

		Context("with an important category that has only history", func() {
			It("should keep it alive with a historical average prediction", func() {
				expenses := []expense.Expense{
					newExpense("Rent", 850, category.Housing, february(1)),
					newExpense("Coffee", 4, category.Food, march(5)),
				}

				result := engine.Predict(expenses, month)

				var housing []prediction.Prediction
				for _, p := range result.Predictions {
					if p.Category == category.Housing {
						housing = append(housing, p)
					}
				}
				Expect(housing).To(HaveLen(1))
				fallback := housing[0]
				Expect(fallback.Source).To(Equal(prediction.SourceHistorical))
				Expect(fallback.Name).To(Equal("Housing"))
				Expect(fallback.Amount).To(Equal(float64(850)))
				Expect(fallback.Confidence).To(BeNumerically(">=", 0.6))
				Expect(fallback.IsRecurrent).To(BeTrue())
				Expect(fallback.EstimatedDate).To(Equal(time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)))
			})
		})

		Context("with a non-important category seen only once", func() {
			It("should not predict it", func() {
				expenses := []expense.Expense{
					newExpense("Cinema", 12, category.Entertainment, march(14)),
				}

				result := engine.Predict(expenses, month)

				Expect(result.Predictions).To(BeEmpty())
				// the category still shows up in the analysis
				Expect(result.CategoryAnalysis).To(HaveKey(category.Entertainment))
			})
		})

		Context("date estimation edge cases", func() {
			It("should reuse the day of a single occurrence", func() {
				expenses := []expense.Expense{
					newExpense("Netflix", 13, category.Subscriptions, march(7)),
				}

				result := engine.Predict(expenses, month)

				Expect(result.Predictions).To(HaveLen(1))
				Expect(result.Predictions[0].EstimatedDate.Day()).To(Equal(7))
			})

			It("should cap estimated days at 28", func() {
				expenses := []expense.Expense{
					newExpense("Rent", 850, category.Housing, march(31)),
				}

				result := engine.Predict(expenses, month)

				Expect(result.Predictions).To(HaveLen(1))
				Expect(result.Predictions[0].EstimatedDate.Day()).To(Equal(28))
			})
		})

		Context("with multiple categories", func() {
			It("should sort predictions by confidence then amount, both descending", func() {
				expenses := []expense.Expense{
					// important, 5 records: confidence 0.3+0.3+0.3(+0.1 low variance) = 1.0
					newExpense("Groceries", 60, category.Food, march(2)),
					newExpense("Groceries", 62, category.Food, march(9)),
					newExpense("Groceries", 58, category.Food, march(16)),
					newExpense("Groceries", 61, category.Food, february(5)),
					newExpense("Groceries", 59, category.Food, february(19)),
					// important, 2 records: confidence 0.3+0.3+0.1(+0.1) = 0.8
					newExpense("Bus pass", 45, category.Transport, march(2)),
					newExpense("Bus pass", 45, category.Transport, february(2)),
				}

				result := engine.Predict(expenses, month)

				Expect(result.Predictions).To(HaveLen(2))
				Expect(result.Predictions[0].Category).To(Equal(category.Food))
				Expect(result.Predictions[1].Category).To(Equal(category.Transport))
				Expect(result.Predictions[0].Confidence).To(BeNumerically(">=", result.Predictions[1].Confidence))
			})
		})

		Context("with a long and dense history", func() {
			It("should clamp confidence and frequency to [0, 1]", func() {
				var expenses []expense.Expense
				for day := 1; day <= 12; day++ {
					expenses = append(expenses, newExpense("Groceries", 20, category.Food, march(day)))
					expenses = append(expenses, newExpense("Groceries", 20, category.Food, february(day)))
				}

				result := engine.Predict(expenses, month)

				analysis := result.CategoryAnalysis[category.Food]
				Expect(analysis.Confidence).To(BeNumerically("<=", 1))
				Expect(analysis.Confidence).To(BeNumerically(">=", 0))
				Expect(analysis.Frequency).To(Equal(float64(1)))
				Expect(result.Confidence).To(BeNumerically("<=", 1))
			})
		})

		Context("with malformed records", func() {
			It("should skip and count them without failing", func() {
				expenses := []expense.Expense{
					newExpense("Groceries", 50, category.Food, march(3)),
					newExpense("", 10, category.Food, march(4)),
					newExpense("Negative", -5, category.Food, march(5)),
					newExpense("Unknown", 10, category.Category("NOPE"), march(6)),
				}

				result := engine.Predict(expenses, month)

				Expect(result.SkippedRecords).To(Equal(3))
				analysis := result.CategoryAnalysis[category.Food]
				Expect(analysis.CurrentCount).To(Equal(1))
			})
		})

		Context("run twice over the same history", func() {
			It("should produce identical results apart from generated IDs", func() {
				expenses := []expense.Expense{
					newExpense("Groceries", 50, category.Food, march(3)),
					newExpense("Groceries", 60, category.Food, march(17)),
					newExpense("Rent", 850, category.Housing, february(1)),
				}

				first := engine.Predict(expenses, month)
				second := engine.Predict(expenses, month)

				Expect(second.TotalPredicted).To(Equal(first.TotalPredicted))
				Expect(second.Confidence).To(Equal(first.Confidence))
				Expect(second.CategoryAnalysis).To(Equal(first.CategoryAnalysis))
				Expect(second.Predictions).To(HaveLen(len(first.Predictions)))
				for i := range first.Predictions {
					a, b := first.Predictions[i], second.Predictions[i]
					a.ID, b.ID = "", ""
					Expect(b).To(Equal(a))
				}
			})
		})
	})

	Describe("Summarize", func() {
		It("should count high confidence, recurring and important predictions", func() {
			predictions := []prediction.Prediction{
				{Category: category.Food, Amount: 55, Confidence: 0.9, IsRecurrent: true, IsImportant: true},
				{Category: category.Entertainment, Amount: 12, Confidence: 0.5},
			}

			summary := prediction.Summarize(predictions)

			Expect(summary.TotalAmount).To(Equal(float64(67)))
			Expect(summary.CategoryCount).To(Equal(2))
			Expect(summary.HighConfidenceCount).To(Equal(1))
			Expect(summary.RecurringCount).To(Equal(1))
			Expect(summary.ImportantCount).To(Equal(1))
		})
	})
})
