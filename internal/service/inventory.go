package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/welcomehome/internal/events"
	"github.com/erazemk/welcomehome/internal/imaging"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/store"
)

// Inventory looks up items and accepts donations.
type Inventory struct {
	*base
	catalog *Catalog
}

// ItemDetails is an item with its piece locations.
type ItemDetails struct {
	Item   model.Item
	Pieces []model.Piece
}

// FindItem looks up an item by its form ID. An item without pieces is
// returned with an empty Pieces slice.
func (s *Inventory) FindItem(ctx context.Context, rawID string) (*ItemDetails, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.GetItem(ctx, id)
}

// GetItem looks up an item by ID.
func (s *Inventory) GetItem(ctx context.Context, id int64) (*ItemDetails, error) {
	item, err := store.GetItem(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: no item with ID %d", model.ErrItemNotFound, id)
	}

	pieces, err := store.ListPieces(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return &ItemDetails{Item: *item, Pieces: pieces}, nil
}

// Photo returns an item's photo, or model.ErrItemNotFound when the item
// has none.
func (s *Inventory) Photo(ctx context.Context, id int64) ([]byte, string, error) {
	data, mime, err := store.GetItemPhoto(ctx, s.db, id)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: no photo for item %d", model.ErrItemNotFound, id)
	}
	return data, mime, nil
}

// DonationInput is the accept-donation form.
type DonationInput struct {
	DonorID      string `validate:"required"`
	Description  string `validate:"required,max=500"`
	Color        string `validate:"max=50"`
	IsNew        bool
	HasPieces    bool
	Material     string `validate:"max=100"`
	MainCategory string `validate:"required"`
	SubCategory  string `validate:"required"`
	RoomNum      int
	ShelfNum     int
	Length       int `validate:"gte=0"`
	Width        int `validate:"gte=0"`
	Height       int `validate:"gte=0"`
	PieceNotes   string `validate:"max=500"`
	Photo        []byte
}

// AcceptDonation records a donated item with its first piece and returns
// the new item ID. Only staff may accept donations, and the donor must be
// registered with the donor role.
func (s *Inventory) AcceptDonation(ctx context.Context, actor Actor, in DonationInput) (int64, error) {
	if err := requireStaff(actor, "accept donations"); err != nil {
		return 0, err
	}

	in.DonorID = strings.TrimSpace(in.DonorID)
	if in.DonorID == "" {
		return 0, model.ErrInvalidDonor
	}
	isDonor, err := store.HasRole(ctx, s.db, in.DonorID, model.RoleDonor)
	if err != nil {
		return 0, err
	}
	if !isDonor {
		return 0, model.ErrInvalidDonor
	}

	if err := s.check(in); err != nil {
		return 0, err
	}

	d := model.Donation{
		Donor: in.DonorID,
		Item: model.Item{
			Description:  strings.TrimSpace(in.Description),
			Color:        strings.TrimSpace(in.Color),
			IsNew:        in.IsNew,
			HasPieces:    in.HasPieces,
			Material:     strings.TrimSpace(in.Material),
			MainCategory: strings.TrimSpace(in.MainCategory),
			SubCategory:  strings.TrimSpace(in.SubCategory),
		},
		Piece: model.Piece{
			Description: strings.TrimSpace(in.Description),
			Length:      in.Length,
			Width:       in.Width,
			Height:      in.Height,
			RoomNum:     in.RoomNum,
			ShelfNum:    in.ShelfNum,
			Notes:       strings.TrimSpace(in.PieceNotes),
		},
		DonatedAt: s.now(),
	}
	if d.Piece.Held() {
		return 0, fmt.Errorf("%w: the holding location is reserved for prepared orders", model.ErrInvalidInput)
	}

	if len(in.Photo) > 0 {
		photo, err := imaging.NormalizePhoto(in.Photo)
		if errors.Is(err, imaging.ErrTooLarge) || errors.Is(err, imaging.ErrUnsupported) {
			return 0, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
		}
		if err != nil {
			return 0, fmt.Errorf("%w: unreadable photo", model.ErrInvalidInput)
		}
		d.Photo = photo.Data
		d.Item.PhotoMIME = photo.MIME
	}

	id, err := store.CreateDonation(ctx, s.db, d)
	if err != nil {
		return 0, err
	}

	slog.Info("donation accepted", "user", actor.Username, "donor", d.Donor, "item", id)
	s.publish(ctx, events.Event{Type: events.DonationAccepted, Actor: actor.Username, ItemID: id, Username: d.Donor})
	return id, nil
}

// DonationForm is the data behind the accept-donation page.
type DonationForm struct {
	Rooms          []int
	Locations      []model.Location
	MainCategories []string
	Categories     []model.Category
}

// DonationForm loads the dropdown contents of the donation form.
func (s *Inventory) DonationForm(ctx context.Context, actor Actor) (*DonationForm, error) {
	if err := requireStaff(actor, "accept donations"); err != nil {
		return nil, err
	}

	rooms, err := store.ListRooms(ctx, s.db)
	if err != nil {
		return nil, err
	}
	locations, err := store.ListLocations(ctx, s.db)
	if err != nil {
		return nil, err
	}
	mains, err := s.catalog.MainCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := store.ListCategories(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return &DonationForm{Rooms: rooms, Locations: locations, MainCategories: mains, Categories: categories}, nil
}
