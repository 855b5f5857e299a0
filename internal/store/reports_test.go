package store

import (
	"context"
	"testing"
)

func TestRankCategories(t *testing.T) {
	database, id := setupOrder(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		AddItemToOrder(ctx, database, id, mustDonation(t, database, "alice", "Kitchen", "Dishes", 1, 1))
	}
	AddItemToOrder(ctx, database, id, mustDonation(t, database, "alice", "Furniture", "Table", 1, 1))
	AddItemToOrder(ctx, database, id, mustDonation(t, database, "alice", "Furniture", "Chair", 1, 1))

	// An order outside the range.
	late, _ := CreateOrder(ctx, database, "sam", "bob", day.AddDate(0, 1, 0))
	AddItemToOrder(ctx, database, late, mustDonation(t, database, "alice", "Furniture", "Table", 1, 1))

	ranking, err := RankCategories(ctx, database, day, day, 5)
	if err != nil {
		t.Fatalf("RankCategories: %v", err)
	}
	if len(ranking) != 3 {
		t.Fatalf("expected 3 rows, got %+v", ranking)
	}
	if ranking[0].MainCategory != "Kitchen" || ranking[0].OrderCount != 2 {
		t.Errorf("expected Kitchen/Dishes first, got %+v", ranking[0])
	}
	// Ties sort by main then sub category.
	if ranking[1].SubCategory != "Chair" || ranking[2].SubCategory != "Table" {
		t.Errorf("unexpected tie order %+v", ranking[1:])
	}

	top, _ := RankCategories(ctx, database, day, day.AddDate(1, 0, 0), 1)
	if len(top) != 1 {
		t.Errorf("expected limit 1, got %d", len(top))
	}

	empty, _ := RankCategories(ctx, database, day.AddDate(-1, 0, 0), day.AddDate(0, 0, -1), 5)
	if len(empty) != 0 {
		t.Errorf("expected empty ranking, got %+v", empty)
	}
}
