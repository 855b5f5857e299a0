package model

import "time"

// Holding location for pieces staged for delivery.
const (
	HoldingRoom  = -1
	HoldingShelf = -1
)

// Item is a donated good, made of one or more pieces.
type Item struct {
	ID           int64  `json:"id"`
	Description  string `json:"description"`
	Color        string `json:"color,omitempty"`
	IsNew        bool   `json:"is_new"`
	HasPieces    bool   `json:"has_pieces"`
	Material     string `json:"material,omitempty"`
	MainCategory string `json:"main_category"`
	SubCategory  string `json:"sub_category"`
	PhotoMIME    string `json:"photo_mime,omitempty"`
}

// HasPhoto reports whether a photo is stored for the item.
func (i Item) HasPhoto() bool { return i.PhotoMIME != "" }

// Piece is one physical unit of an item.
type Piece struct {
	ItemID      int64  `json:"item_id"`
	PieceNum    int    `json:"piece_num"`
	Description string `json:"description,omitempty"`
	Length      int    `json:"length"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	RoomNum     int    `json:"room_num"`
	ShelfNum    int    `json:"shelf_num"`
	Notes       string `json:"notes,omitempty"`
}

// Held reports whether the piece sits in the holding location.
func (p Piece) Held() bool {
	return p.RoomNum == HoldingRoom && p.ShelfNum == HoldingShelf
}

// Donation is an accepted item together with its first piece.
type Donation struct {
	Donor     string
	Item      Item
	Piece     Piece
	Photo     []byte
	DonatedAt time.Time
}

// Location is a valid room/shelf pair.
type Location struct {
	RoomNum     int    `json:"room_num" yaml:"room"`
	ShelfNum    int    `json:"shelf_num" yaml:"shelf"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Category is a valid main/sub category pair.
type Category struct {
	Main  string `json:"main_category" yaml:"main"`
	Sub   string `json:"sub_category" yaml:"sub"`
	Notes string `json:"notes,omitempty" yaml:"notes"`
}
