package expense

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/budget-insights/internal"
	"github.com/frahmantamala/budget-insights/internal/transport"
	"github.com/frahmantamala/budget-insights/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateExpense(dto CreateExpenseDTO) (*Expense, error)
	GetExpenseByID(id int64) (*Expense, error)
	GetAllExpenses() ([]*Expense, error)
	GetExpensesForMonth(month YearMonth) ([]*Expense, error)
	DeleteExpense(id int64) error
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.CreateExpense(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

// GetExpenses lists all expenses, or one month's when ?month=YYYY-MM is given.
func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	monthKey := r.URL.Query().Get("month")

	var (
		expenses []*Expense
		err      error
	)
	if monthKey == "" {
		expenses, err = h.Service.GetAllExpenses()
	} else {
		var month YearMonth
		month, err = ParseYearMonth(monthKey)
		if err != nil {
			h.Logger.Error("GetExpenses: invalid month key", "month", monthKey)
			h.HandleServiceError(w, internal.ErrInvalidMonthKey)
			return
		}
		expenses, err = h.Service.GetExpensesForMonth(month)
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := h.expenseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	exp, err := h.Service.GetExpenseByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := h.expenseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if err := h.Service.DeleteExpense(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) expenseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
