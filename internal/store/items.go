package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

const itemColumns = `item_id, description, color, is_new, has_pieces, material,
	main_category, sub_category, photo_mime`

func scanItem(s interface{ Scan(...any) error }, item *model.Item) error {
	return s.Scan(&item.ID, &item.Description, &item.Color, &item.IsNew, &item.HasPieces,
		&item.Material, &item.MainCategory, &item.SubCategory, &item.PhotoMIME)
}

// CreateDonation stores the item, its first piece and the donor record in
// one transaction and returns the new item ID. An unknown category or
// location yields model.ErrInvalidInput.
func CreateDonation(ctx context.Context, conn *db.DB, d model.Donation) (int64, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var photo []byte
	if len(d.Photo) > 0 {
		photo = d.Photo
	}

	var itemID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO item (description, photo, photo_mime, color, is_new, has_pieces,
		                   material, main_category, sub_category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING item_id`,
		d.Item.Description, photo, d.Item.PhotoMIME, d.Item.Color, d.Item.IsNew, d.Item.HasPieces,
		d.Item.Material, d.Item.MainCategory, d.Item.SubCategory,
	).Scan(&itemID)
	if db.IsForeignKeyViolation(err) {
		return 0, fmt.Errorf("%w: unknown category %s/%s", model.ErrInvalidInput, d.Item.MainCategory, d.Item.SubCategory)
	}
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO piece (item_id, piece_num, description, length, width, height, room_num, shelf_num, notes)
		 VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?)`,
		itemID, d.Piece.Description, d.Piece.Length, d.Piece.Width, d.Piece.Height,
		d.Piece.RoomNum, d.Piece.ShelfNum, d.Piece.Notes,
	)
	if db.IsForeignKeyViolation(err) {
		return 0, fmt.Errorf("%w: unknown location room %d shelf %d", model.ErrInvalidInput, d.Piece.RoomNum, d.Piece.ShelfNum)
	}
	if err != nil {
		return 0, fmt.Errorf("creating piece: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO donated_by (item_id, username, donate_date) VALUES (?, ?, ?)`,
		itemID, d.Donor, db.FormatDate(d.DonatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("recording donor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing donation: %w", err)
	}
	return itemID, nil
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, q db.Querier, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := scanItem(q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM item WHERE item_id = ?`, id,
	), item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// GetItemPhoto returns the stored photo and its MIME type.
func GetItemPhoto(ctx context.Context, q db.Querier, id int64) ([]byte, string, error) {
	var data []byte
	var mime string
	err := q.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM item WHERE item_id = ?`, id,
	).Scan(&data, &mime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return data, mime, nil
}

// ListPieces returns the pieces of an item at valid locations.
func ListPieces(ctx context.Context, q db.Querier, itemID int64) ([]model.Piece, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT p.item_id, p.piece_num, p.description, p.length, p.width, p.height,
		        p.room_num, p.shelf_num, p.notes
		 FROM piece p
		 JOIN location l ON l.room_num = p.room_num AND l.shelf_num = p.shelf_num
		 WHERE p.item_id = ?
		 ORDER BY p.piece_num`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pieces: %w", err)
	}
	defer rows.Close()

	var pieces []model.Piece
	for rows.Next() {
		var p model.Piece
		if err := rows.Scan(&p.ItemID, &p.PieceNum, &p.Description, &p.Length, &p.Width, &p.Height,
			&p.RoomNum, &p.ShelfNum, &p.Notes); err != nil {
			return nil, fmt.Errorf("scanning piece: %w", err)
		}
		pieces = append(pieces, p)
	}
	return pieces, rows.Err()
}

// ListAvailableItems returns items of a category that belong to no order.
func ListAvailableItems(ctx context.Context, q db.Querier, main, sub string) ([]model.Item, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+itemColumns+`
		 FROM item
		 WHERE main_category = ? AND sub_category = ?
		   AND item_id NOT IN (SELECT item_id FROM item_in)
		 ORDER BY item_id`, main, sub,
	)
	if err != nil {
		return nil, fmt.Errorf("listing available items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
