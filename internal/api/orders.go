package api

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
)

// OrdersHandler handles order lookups.
type OrdersHandler struct {
	Orders *service.Orders
}

type orderResponse struct {
	model.Order
	Items []model.OrderItem `json:"items"`
}

// Get handles GET /api/orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	details, err := h.Orders.FindOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, "get order", err)
		return
	}

	items := details.Items
	if items == nil {
		items = []model.OrderItem{}
	}
	jsonResponse(w, http.StatusOK, orderResponse{Order: details.Order, Items: items})
}
