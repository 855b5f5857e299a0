package store

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

// ReferenceData is the seedable set of categories and locations.
type ReferenceData struct {
	Categories []model.Category `yaml:"categories"`
	Locations  []model.Location `yaml:"locations"`
}

// DefaultReferenceData is loaded by "welcomehome init".
func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		Categories: []model.Category{
			{Main: "Furniture", Sub: "Chair"},
			{Main: "Furniture", Sub: "Table"},
			{Main: "Furniture", Sub: "Bed"},
			{Main: "Kitchen", Sub: "Cookware"},
			{Main: "Kitchen", Sub: "Dishes"},
			{Main: "Clothing", Sub: "Adult"},
			{Main: "Clothing", Sub: "Children"},
			{Main: "Electronics", Sub: "Appliance"},
		},
		Locations: []model.Location{
			{RoomNum: 1, ShelfNum: 1, Description: "Main storage"},
			{RoomNum: 1, ShelfNum: 2, Description: "Main storage"},
			{RoomNum: 2, ShelfNum: 1, Description: "Large items"},
		},
	}
}

// ParseReferenceData decodes a YAML seed file.
func ParseReferenceData(r io.Reader) (*ReferenceData, error) {
	var ref ReferenceData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ref); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding reference data: %w", err)
	}
	for _, c := range ref.Categories {
		if c.Main == "" || c.Sub == "" {
			return nil, fmt.Errorf("%w: category needs main and sub", model.ErrInvalidInput)
		}
	}
	return &ref, nil
}

// ApplyReferenceData upserts categories and locations in one transaction.
func ApplyReferenceData(ctx context.Context, conn *db.DB, ref ReferenceData) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range ref.Categories {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO category (main_category, sub_category, notes) VALUES (?, ?, ?)
			 ON CONFLICT (main_category, sub_category) DO UPDATE SET notes = excluded.notes`,
			c.Main, c.Sub, c.Notes,
		)
		if err != nil {
			return fmt.Errorf("upserting category %s/%s: %w", c.Main, c.Sub, err)
		}
	}

	for _, l := range ref.Locations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO location (room_num, shelf_num, description) VALUES (?, ?, ?)
			 ON CONFLICT (room_num, shelf_num) DO UPDATE SET description = excluded.description`,
			l.RoomNum, l.ShelfNum, l.Description,
		)
		if err != nil {
			return fmt.Errorf("upserting location %d/%d: %w", l.RoomNum, l.ShelfNum, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reference data: %w", err)
	}
	return nil
}

// ListMainCategories returns the distinct main categories.
func ListMainCategories(ctx context.Context, q db.Querier) ([]string, error) {
	return queryStrings(ctx, q, "listing main categories",
		`SELECT DISTINCT main_category FROM category ORDER BY main_category`)
}

// ListSubcategories returns the sub categories of main.
func ListSubcategories(ctx context.Context, q db.Querier, main string) ([]string, error) {
	return queryStrings(ctx, q, "listing subcategories",
		`SELECT DISTINCT sub_category FROM category WHERE main_category = ? ORDER BY sub_category`, main)
}

// ListCategories returns all category pairs.
func ListCategories(ctx context.Context, q db.Querier) ([]model.Category, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT main_category, sub_category, notes FROM category ORDER BY main_category, sub_category`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.Main, &c.Sub, &c.Notes); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListRooms returns the distinct storage rooms, excluding the holding area.
func ListRooms(ctx context.Context, q db.Querier) ([]int, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT DISTINCT room_num FROM location WHERE room_num <> ? ORDER BY room_num`, model.HoldingRoom)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// ListLocations returns all storage locations, excluding the holding area.
func ListLocations(ctx context.Context, q db.Querier) ([]model.Location, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT room_num, shelf_num, description FROM location
		 WHERE room_num <> ? ORDER BY room_num, shelf_num`, model.HoldingRoom)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var out []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.RoomNum, &l.ShelfNum, &l.Description); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func queryStrings(ctx context.Context, q db.Querier, op, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
