package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/welcomehome/internal/events"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/store"
)

// Orders starts, fills and prepares orders.
type Orders struct {
	*base
	catalog *Catalog
}

// StartOrder creates an order for a registered client and returns its ID,
// which becomes the caller's active order.
func (s *Orders) StartOrder(ctx context.Context, actor Actor, client string) (int64, error) {
	if err := requireStaff(actor, "start an order"); err != nil {
		return 0, err
	}

	client = strings.TrimSpace(client)
	isClient, err := store.HasRole(ctx, s.db, client, model.RoleClient)
	if err != nil {
		return 0, err
	}
	if !isClient {
		return 0, fmt.Errorf("%w: %s", model.ErrUnknownClient, client)
	}

	id, err := store.CreateOrder(ctx, s.db, actor.Username, client, s.now())
	if err != nil {
		return 0, err
	}

	slog.Info("order started", "user", actor.Username, "client", client, "order", id)
	s.publish(ctx, events.Event{Type: events.OrderStarted, Actor: actor.Username, OrderID: id, Username: client})
	return id, nil
}

// activeOrder resolves the caller's active order.
func (s *Orders) activeOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if orderID == 0 {
		return nil, model.ErrNoActiveOrder
	}
	o, err := store.GetOrder(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %d", model.ErrOrderNotFound, orderID)
	}
	return o, nil
}

// AddToOrder links an item to the active order orderID.
func (s *Orders) AddToOrder(ctx context.Context, actor Actor, orderID int64, rawItemID string) (int64, error) {
	if err := requireStaff(actor, "start an order"); err != nil {
		return 0, err
	}
	if _, err := s.activeOrder(ctx, orderID); err != nil {
		return 0, err
	}

	itemID, err := ParseID(rawItemID)
	if err != nil {
		return 0, model.ErrItemUnavailable
	}

	if err := store.AddItemToOrder(ctx, s.db, orderID, itemID); err != nil {
		return 0, err
	}

	slog.Info("item added to order", "user", actor.Username, "order", orderID, "item", itemID)
	s.publish(ctx, events.Event{Type: events.OrderItemAdded, Actor: actor.Username, OrderID: orderID, ItemID: itemID})
	return itemID, nil
}

// OrderForm is the data behind the add-to-order page.
type OrderForm struct {
	Order          model.Order
	Items          []model.OrderItem
	MainCategories []string
	MainCategory   string
	SubCategory    string
	Filtered       bool
	Available      []model.Item
}

// OrderForm loads the active order and, when both category filters are
// set, the items still available in that category.
func (s *Orders) OrderForm(ctx context.Context, actor Actor, orderID int64, main, sub string) (*OrderForm, error) {
	if err := requireStaff(actor, "start an order"); err != nil {
		return nil, err
	}
	o, err := s.activeOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := store.ListOrderItems(ctx, s.db, o.ID)
	if err != nil {
		return nil, err
	}
	mains, err := s.catalog.MainCategories(ctx)
	if err != nil {
		return nil, err
	}

	form := &OrderForm{
		Order:          *o,
		Items:          items,
		MainCategories: mains,
		MainCategory:   strings.TrimSpace(main),
		SubCategory:    strings.TrimSpace(sub),
	}
	if form.MainCategory != "" && form.SubCategory != "" {
		form.Filtered = true
		form.Available, err = store.ListAvailableItems(ctx, s.db, form.MainCategory, form.SubCategory)
		if err != nil {
			return nil, err
		}
	}
	return form, nil
}

// OrderDetails is an order with its items and their pieces.
type OrderDetails struct {
	Order model.Order
	Items []model.OrderItem
}

// FindOrder looks up an order by its form ID.
func (s *Orders) FindOrder(ctx context.Context, rawID string) (*OrderDetails, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// GetOrder loads an order, its items and every item's pieces.
func (s *Orders) GetOrder(ctx context.Context, id int64) (*OrderDetails, error) {
	o, err := store.GetOrder(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %d", model.ErrOrderNotFound, id)
	}

	items, err := store.ListOrderItems(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Pieces, err = store.ListPieces(ctx, s.db, items[i].ItemID)
		if err != nil {
			return nil, err
		}
	}
	return &OrderDetails{Order: *o, Items: items}, nil
}

// PrepareResult reports the outcome of PrepareOrder.
type PrepareResult struct {
	Order       model.Order
	Items       []model.OrderItem
	Prepared    bool
	PiecesMoved int64
}

// PrepareOrder moves the pieces of every item in the order to the holding
// location and logs a Prepared delivery. An order without items is
// returned unprepared.
func (s *Orders) PrepareOrder(ctx context.Context, actor Actor, rawID string) (*PrepareResult, error) {
	if err := requireStaff(actor, "prepare orders"); err != nil {
		return nil, err
	}
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}

	details, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &PrepareResult{Order: details.Order, Items: details.Items}
	if len(details.Items) == 0 {
		return res, nil
	}

	res.PiecesMoved, err = store.PrepareOrder(ctx, s.db, id, actor.Username, s.now())
	if err != nil {
		return nil, err
	}
	res.Prepared = true

	slog.Info("order prepared", "user", actor.Username, "order", id, "pieces", res.PiecesMoved)
	s.publish(ctx, events.Event{Type: events.OrderPrepared, Actor: actor.Username, OrderID: id, Count: res.PiecesMoved})
	return res, nil
}
