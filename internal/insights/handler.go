package insights

import (
	"net/http"
	"time"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"github.com/frahmantamala/budget-insights/internal/transport"
	"github.com/frahmantamala/budget-insights/pkg/logger"
)

type ServiceAPI interface {
	Predictions(month expense.YearMonth) (*PredictionReport, error)
	Suggestions(month expense.YearMonth) (*SavingsReport, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	month, err := h.referenceMonth(r)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidMonthKey)
		return
	}

	report, err := h.Service.Predictions(month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	month, err := h.referenceMonth(r)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidMonthKey)
		return
	}

	report, err := h.Service.Suggestions(month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

// referenceMonth reads the ?month=YYYY-MM query parameter, defaulting
// to the present month.
func (h *Handler) referenceMonth(r *http.Request) (expense.YearMonth, error) {
	key := r.URL.Query().Get("month")
	if key == "" {
		return expense.MonthOf(time.Now()), nil
	}
	return expense.ParseYearMonth(key)
}
