package api

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
)

// ItemsHandler handles item lookups.
type ItemsHandler struct {
	Inventory *service.Inventory
}

type itemResponse struct {
	model.Item
	Pieces []model.Piece `json:"pieces"`
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	details, err := h.Inventory.FindItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, "get item", err)
		return
	}

	pieces := details.Pieces
	if pieces == nil {
		pieces = []model.Piece{}
	}
	jsonResponse(w, http.StatusOK, itemResponse{Item: details.Item, Pieces: pieces})
}
