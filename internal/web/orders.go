package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
)

const orderDenied = "Access denied. Only staff members can start an order."

type startOrderPage struct {
	PageData
	ClientUsername string
}

// StartOrderPage handles GET /start_order.
func (s *Server) StartOrderPage(w http.ResponseWriter, r *http.Request) {
	if actor(r).Role != model.RoleStaff {
		s.redirect(w, r, "/dashboard", danger(orderDenied))
		return
	}
	s.render(w, r, "start_order.html", &startOrderPage{PageData: PageData{Title: "Start order"}})
}

// StartOrderSubmit handles POST /start_order. The new order becomes the
// session's active order.
func (s *Server) StartOrderSubmit(w http.ResponseWriter, r *http.Request) {
	client := strings.TrimSpace(r.FormValue("clientUsername"))

	id, err := s.Services.Orders.StartOrder(r.Context(), actor(r), client)
	switch {
	case errors.Is(err, model.ErrAccessDenied):
		s.redirect(w, r, "/dashboard", danger(orderDenied))
		return
	case errors.Is(err, model.ErrUnknownClient):
		s.render(w, r, "start_order.html", &startOrderPage{
			PageData:       PageData{Title: "Start order", Flashes: []Flash{danger("No client found with username %s.", client)}},
			ClientUsername: client,
		})
		return
	case err != nil:
		s.render(w, r, "start_order.html", &startOrderPage{
			PageData:       PageData{Title: "Start order", Flashes: []Flash{unexpected("start order", err)}},
			ClientUsername: client,
		})
		return
	}

	sess := GetWebClaims(r.Context()).Session()
	sess.OrderID = id
	if _, err := setSessionCookie(w, s.Issuer, sess); err != nil {
		slog.Error("failed to reissue session", "user", sess.Username, "error", err)
	}

	s.redirect(w, r, "/add_to_order", success("Order created successfully! Order ID: %d", id))
}

// orderRedirect handles the errors shared by the add-to-order handlers.
// It reports whether err was one of them.
func (s *Server) orderRedirect(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case errors.Is(err, model.ErrAccessDenied):
		s.redirect(w, r, "/dashboard", danger(orderDenied))
	case errors.Is(err, model.ErrNoActiveOrder):
		s.redirect(w, r, "/start_order", warning("No active order found. Please start an order first."))
	case errors.Is(err, model.ErrOrderNotFound):
		s.redirect(w, r, "/start_order", danger("Order not found. Please start an order."))
	default:
		return false
	}
	return true
}

type addToOrderPage struct {
	PageData
	Form *service.OrderForm
}

// AddToOrderPage handles GET /add_to_order. Items are listed once both
// mainCategory and subCategory are given.
func (s *Server) AddToOrderPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	q := r.URL.Query()

	form, err := s.Services.Orders.OrderForm(r.Context(), actor(r), claims.OrderID, q.Get("mainCategory"), q.Get("subCategory"))
	if s.orderRedirect(w, r, err) {
		return
	}
	if err != nil {
		s.redirect(w, r, "/dashboard", unexpected("load order form", err))
		return
	}

	data := &addToOrderPage{PageData: PageData{Title: "Add to order"}, Form: form}
	if form.Filtered && len(form.Available) == 0 {
		data.Flashes = append(data.Flashes, warning("Sorry! No items available for the selected category and subcategory."))
	}
	s.render(w, r, "add_to_order.html", data)
}

// AddToOrderSubmit handles POST /add_to_order.
func (s *Server) AddToOrderSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	rawID := strings.TrimSpace(r.FormValue("itemID"))

	back := "/add_to_order"
	if main, sub := r.FormValue("mainCategory"), r.FormValue("subCategory"); main != "" && sub != "" {
		back += "?" + url.Values{"mainCategory": {main}, "subCategory": {sub}}.Encode()
	}

	itemID, err := s.Services.Orders.AddToOrder(r.Context(), actor(r), claims.OrderID, rawID)
	if s.orderRedirect(w, r, err) {
		return
	}
	switch {
	case errors.Is(err, model.ErrItemUnavailable):
		s.redirect(w, r, back, danger("Error: Item ID %s does not exist or is already in another order.", rawID))
	case err != nil:
		s.redirect(w, r, back, unexpected("add item to order", err))
	default:
		s.redirect(w, r, back, success("Item ID %d added to order ID %d.", itemID, claims.OrderID))
	}
}

type orderPage struct {
	PageData
	OrderID string
	Details *service.OrderDetails
}

// FindOrderPage handles GET /find_order.
func (s *Server) FindOrderPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "find_order.html", &orderPage{PageData: PageData{Title: "Find order"}})
}

// FindOrderSubmit handles POST /find_order.
func (s *Server) FindOrderSubmit(w http.ResponseWriter, r *http.Request) {
	data := &orderPage{
		PageData: PageData{Title: "Find order"},
		OrderID:  strings.TrimSpace(r.FormValue("orderID")),
	}

	details, err := s.Services.Orders.FindOrder(r.Context(), data.OrderID)
	if err == nil {
		data.Details = details
		if len(details.Items) == 0 {
			data.Flashes = append(data.Flashes, warning("No items found for order ID %d.", details.Order.ID))
		}
	} else {
		data.Flashes = append(data.Flashes, orderLookupFlash(err, data.OrderID, "find order"))
	}

	s.render(w, r, "find_order.html", data)
}

func orderLookupFlash(err error, rawID, op string) Flash {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return danger("Error: Order ID must be a valid number.")
	case errors.Is(err, model.ErrOrderNotFound):
		return danger("No order found with ID %s.", rawID)
	default:
		return unexpected(op, err)
	}
}

const prepareDenied = "Access denied. Only staff members can prepare orders."

// PrepareOrderPage handles GET /prepare_order. With an orderID query
// parameter it previews the order's items.
func (s *Server) PrepareOrderPage(w http.ResponseWriter, r *http.Request) {
	if actor(r).Role != model.RoleStaff {
		s.redirect(w, r, "/dashboard", danger(prepareDenied))
		return
	}

	data := &orderPage{
		PageData: PageData{Title: "Prepare order"},
		OrderID:  strings.TrimSpace(r.URL.Query().Get("orderID")),
	}
	if data.OrderID != "" {
		details, err := s.Services.Orders.FindOrder(r.Context(), data.OrderID)
		if err != nil {
			data.Flashes = append(data.Flashes, orderLookupFlash(err, data.OrderID, "preview order"))
		} else {
			data.Details = details
		}
	}
	s.render(w, r, "prepare_order.html", data)
}

// PrepareOrderSubmit handles POST /prepare_order.
func (s *Server) PrepareOrderSubmit(w http.ResponseWriter, r *http.Request) {
	data := &orderPage{
		PageData: PageData{Title: "Prepare order"},
		OrderID:  strings.TrimSpace(r.FormValue("orderID")),
	}

	res, err := s.Services.Orders.PrepareOrder(r.Context(), actor(r), data.OrderID)
	switch {
	case errors.Is(err, model.ErrAccessDenied):
		s.redirect(w, r, "/dashboard", danger(prepareDenied))
		return
	case err != nil:
		data.Flashes = append(data.Flashes, orderLookupFlash(err, data.OrderID, "prepare order"))
	case !res.Prepared:
		data.Details = &service.OrderDetails{Order: res.Order, Items: res.Items}
		data.Flashes = append(data.Flashes, warning("No items found for order ID %d.", res.Order.ID))
	default:
		s.redirect(w, r, "/dashboard", success("Order ID %d is now prepared for delivery.", res.Order.ID))
		return
	}

	s.render(w, r, "prepare_order.html", data)
}
