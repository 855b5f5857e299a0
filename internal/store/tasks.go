package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

// ListClientTasks returns the orders placed for client.
func ListClientTasks(ctx context.Context, q db.Querier, client string) ([]model.Task, error) {
	return queryTasks(ctx, q, "listing client tasks",
		`SELECT order_id, order_date, order_notes, supervisor, client, NULL, NULL
		 FROM ordered WHERE client = ? ORDER BY order_id`, client)
}

// ListSupervisorTasks returns the orders supervised by username.
func ListSupervisorTasks(ctx context.Context, q db.Querier, username string) ([]model.Task, error) {
	return queryTasks(ctx, q, "listing supervisor tasks",
		`SELECT order_id, order_date, order_notes, supervisor, client, NULL, NULL
		 FROM ordered WHERE supervisor = ? ORDER BY order_id`, username)
}

// ListDeliveryTasks returns the orders username has a delivery record for.
func ListDeliveryTasks(ctx context.Context, q db.Querier, username string) ([]model.Task, error) {
	return queryTasks(ctx, q, "listing delivery tasks",
		`SELECT d.order_id, o.order_date, o.order_notes, o.supervisor, o.client, d.status, d.date
		 FROM delivered d
		 JOIN ordered o ON o.order_id = d.order_id
		 WHERE d.username = ? ORDER BY d.order_id`, username)
}

func queryTasks(ctx context.Context, q db.Querier, op, query string, args ...any) ([]model.Task, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var orderDate, statusDate db.Date
		var status sql.NullString
		if err := rows.Scan(&t.OrderID, &orderDate, &t.Notes, &t.Supervisor, &t.Client, &status, &statusDate); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.OrderDate = orderDate.Time
		t.Status = status.String
		t.StatusDate = statusDate.Ptr()
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
