package model

import "time"

// DefaultOrderNotes is stored on every newly started order.
const DefaultOrderNotes = "New Order"

// Delivery statuses.
const (
	DeliveryStatusPrepared = "Prepared"
)

// Order is a set of items gathered for a client under a supervising staff member.
type Order struct {
	ID         int64     `json:"id"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes"`
	Supervisor string    `json:"supervisor"`
	Client     string    `json:"client"`
}

// OrderItem is an item linked to an order.
type OrderItem struct {
	ItemID      int64   `json:"item_id"`
	Description string  `json:"description"`
	Found       bool    `json:"found"`
	Pieces      []Piece `json:"pieces,omitempty"`
}

// Delivery is a status log entry for an order.
type Delivery struct {
	Username string    `json:"username"`
	OrderID  int64     `json:"order_id"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
}

// Task is an order as seen from one user's role.
type Task struct {
	OrderID    int64      `json:"order_id"`
	OrderDate  time.Time  `json:"order_date"`
	Notes      string     `json:"notes"`
	Supervisor string     `json:"supervisor"`
	Client     string     `json:"client"`
	Status     string     `json:"status,omitempty"`
	StatusDate *time.Time `json:"status_date,omitempty"`
}

// CategoryRank is one row of the category popularity ranking.
type CategoryRank struct {
	MainCategory string `json:"main_category"`
	SubCategory  string `json:"sub_category"`
	OrderCount   int    `json:"order_count"`
}
