package category

import (
	"net/http"

	"github.com/frahmantamala/budget-insights/internal/transport"
	"github.com/frahmantamala/budget-insights/pkg/logger"
)

// CategoryResponse is the API shape of one catalog entry.
type CategoryResponse struct {
	Name        Category `json:"name"`
	DisplayName string   `json:"display_name"`
	Icon        string   `json:"icon"`
	Important   bool     `json:"important"`
}

type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
	}
}

// Catalog returns the full category table in its stable order.
func Catalog() []CategoryResponse {
	out := make([]CategoryResponse, 0, len(definitions))
	for _, c := range All() {
		out = append(out, CategoryResponse{
			Name:        c,
			DisplayName: DisplayName(c),
			Icon:        Icon(c),
			Important:   IsImportant(c),
		})
	}
	return out
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]any{
		"categories": Catalog(),
	})
}
