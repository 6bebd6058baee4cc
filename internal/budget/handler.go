package budget

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/expense"
	"github.com/frahmantamala/budget-insights/internal/transport"
	"github.com/frahmantamala/budget-insights/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SetBudget(month expense.YearMonth, dto SetBudgetDTO) (*Budget, error)
	GetBudget(month expense.YearMonth) (*Budget, error)
	GetAllBudgets() ([]*Budget, error)
	DeleteBudget(month expense.YearMonth) error
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

func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	month, err := h.month(r)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidMonthKey)
		return
	}

	var dto SetBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SetBudget: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.SetBudget(month, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	month, err := h.month(r)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidMonthKey)
		return
	}

	b, err := h.Service.GetBudget(month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.Service.GetAllBudgets()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"budgets": budgets,
		"count":   len(budgets),
	})
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	month, err := h.month(r)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidMonthKey)
		return
	}

	if err := h.Service.DeleteBudget(month); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) month(r *http.Request) (expense.YearMonth, error) {
	return expense.ParseYearMonth(chi.URLParam(r, "month"))
}
