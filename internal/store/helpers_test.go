package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

var day = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func seedReference(t *testing.T, database *db.DB) {
	t.Helper()
	ref := ReferenceData{
		Categories: []model.Category{
			{Main: "Furniture", Sub: "Chair"},
			{Main: "Furniture", Sub: "Table"},
			{Main: "Kitchen", Sub: "Dishes"},
		},
		Locations: []model.Location{
			{RoomNum: 1, ShelfNum: 1},
			{RoomNum: 1, ShelfNum: 2},
			{RoomNum: 2, ShelfNum: 1},
		},
	}
	if err := ApplyReferenceData(context.Background(), database, ref); err != nil {
		t.Fatalf("ApplyReferenceData: %v", err)
	}
}

func mustPerson(t *testing.T, database *db.DB, username string, role model.Role) {
	t.Helper()
	p := model.Person{Username: username, PasswordHash: "hash", FirstName: username}
	if err := CreatePerson(context.Background(), database, p, role); err != nil {
		t.Fatalf("CreatePerson(%s): %v", username, err)
	}
}

func mustDonation(t *testing.T, database *db.DB, donor, main, sub string, room, shelf int) int64 {
	t.Helper()
	id, err := CreateDonation(context.Background(), database, model.Donation{
		Donor:     donor,
		Item:      model.Item{Description: main + " " + sub, MainCategory: main, SubCategory: sub, IsNew: true},
		Piece:     model.Piece{Description: "piece", Length: 10, Width: 20, Height: 30, RoomNum: room, ShelfNum: shelf},
		DonatedAt: day,
	})
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	return id
}
