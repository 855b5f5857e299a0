package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

// CreateOrder inserts a new order dated on date and returns its ID.
func CreateOrder(ctx context.Context, q db.Querier, supervisor, client string, date time.Time) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO ordered (order_date, order_notes, supervisor, client)
		 VALUES (?, ?, ?, ?)
		 RETURNING order_id`,
		db.FormatDate(date), model.DefaultOrderNotes, supervisor, client,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating order: %w", err)
	}
	return id, nil
}

// GetOrder returns an order by ID.
func GetOrder(ctx context.Context, q db.Querier, id int64) (*model.Order, error) {
	o := &model.Order{}
	var date db.Date
	err := q.QueryRowContext(ctx,
		`SELECT order_id, order_date, order_notes, supervisor, client
		 FROM ordered WHERE order_id = ?`, id,
	).Scan(&o.ID, &date, &o.Notes, &o.Supervisor, &o.Client)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}
	o.Date = date.Time
	return o, nil
}

// AddItemToOrder links an item to an order with found=false. A missing
// item or one already linked to any order yields model.ErrItemUnavailable.
func AddItemToOrder(ctx context.Context, q db.Querier, orderID, itemID int64) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO item_in (item_id, order_id, found) VALUES (?, ?, ?)`,
		itemID, orderID, false,
	)
	if db.IsConstraintViolation(err) {
		return model.ErrItemUnavailable
	}
	if err != nil {
		return fmt.Errorf("adding item to order: %w", err)
	}
	return nil
}

// ListOrderItems returns the items linked to an order.
func ListOrderItems(ctx context.Context, q db.Querier, orderID int64) ([]model.OrderItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT i.item_id, i.description, ii.found
		 FROM item_in ii
		 JOIN item i ON i.item_id = ii.item_id
		 WHERE ii.order_id = ?
		 ORDER BY i.item_id`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ItemID, &it.Description, &it.Found); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// PrepareOrder moves every piece of the order's items to the holding
// location and records the delivery status, in one transaction. It
// returns the number of pieces moved. Preparing again by the same user
// refreshes the existing delivery record.
func PrepareOrder(ctx context.Context, conn *db.DB, orderID int64, username string, date time.Time) (int64, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE piece SET room_num = ?, shelf_num = ?
		 WHERE item_id IN (SELECT item_id FROM item_in WHERE order_id = ?)`,
		model.HoldingRoom, model.HoldingShelf, orderID,
	)
	if err != nil {
		return 0, fmt.Errorf("moving pieces to holding: %w", err)
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting moved pieces: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO delivered (username, order_id, status, date)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (username, order_id) DO UPDATE SET status = excluded.status, date = excluded.date`,
		username, orderID, model.DeliveryStatusPrepared, db.FormatDate(date),
	)
	if err != nil {
		return 0, fmt.Errorf("recording delivery: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing preparation: %w", err)
	}
	return moved, nil
}

// ListDeliveries returns the status log of an order.
func ListDeliveries(ctx context.Context, q db.Querier, orderID int64) ([]model.Delivery, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT username, order_id, status, date FROM delivered
		 WHERE order_id = ? ORDER BY date, username`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	defer rows.Close()

	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var date db.Date
		if err := rows.Scan(&d.Username, &d.OrderID, &d.Status, &date); err != nil {
			return nil, fmt.Errorf("scanning delivery: %w", err)
		}
		d.Date = date.Time
		out = append(out, d)
	}
	return out, rows.Err()
}
