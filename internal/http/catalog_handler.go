package http

import (
	"log/slog"
	"net/http"

	"github.com/example/escala/internal/application"
)

type catalogStore interface {
	Ministries() []application.Ministry
	Functions() []application.Function
	Shifts() []application.Shift
}

type CatalogHandler struct {
	store     catalogStore
	responder responder
}

func NewCatalogHandler(store catalogStore, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{store: store, responder: newResponder(logger)}
}

// Get serves GET /catalog with the static reference data.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, catalogResponse{
		Ministries:  h.store.Ministries(),
		Functions:   h.store.Functions(),
		Shifts:      h.store.Shifts(),
		Permissions: application.PermissionCatalog,
	})
}

type catalogResponse struct {
	Ministries  []application.Ministry       `json:"ministries"`
	Functions   []application.Function       `json:"functions"`
	Shifts      []application.Shift          `json:"shifts"`
	Permissions []application.PermissionInfo `json:"permissions"`
}
