package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/welcomehome/internal/cache"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/store"
)

func refData(cats []model.Category) store.ReferenceData {
	return store.ReferenceData{Categories: cats}
}

func TestSubcategoriesRequiresMain(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Catalog.Subcategories(context.Background(), " ")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	subs, err := f.svc.Catalog.Subcategories(context.Background(), "Furniture")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chair", "Table"}, subs)
}

func TestCatalogReadsThroughCache(t *testing.T) {
	database := db.NewTestDB(t)
	mem := newMemCache()
	svc := New(Deps{DB: database, Cache: mem, Now: time.Now})
	ctx := context.Background()

	require.NoError(t, svc.Catalog.Seed(ctx, refData([]model.Category{{Main: "Books", Sub: "Fiction"}})))

	mains, err := svc.Catalog.MainCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Books"}, mains)
	assert.Equal(t, []string{"Books"}, mem.data[cache.KeyMainCategories])

	subs, err := svc.Catalog.Subcategories(ctx, "Books")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fiction"}, subs)

	// Served from cache even though the table changes underneath.
	_, err = database.ExecContext(ctx,
		`INSERT INTO category (main_category, sub_category) VALUES (?, ?)`, "Toys", "Lego")
	require.NoError(t, err)
	mains, _ = svc.Catalog.MainCategories(ctx)
	assert.Equal(t, []string{"Books"}, mains)

	// Seeding invalidates.
	require.NoError(t, svc.Catalog.Seed(ctx, refData([]model.Category{{Main: "Books", Sub: "Poetry"}})))
	_, cached := mem.data[cache.SubcategoriesKey("Books")]
	assert.False(t, cached)
	mains, _ = svc.Catalog.MainCategories(ctx)
	assert.Equal(t, []string{"Books", "Toys"}, mains)
	subs, _ = svc.Catalog.Subcategories(ctx, "Books")
	assert.Equal(t, []string{"Fiction", "Poetry"}, subs)
}

func TestCatalogFallsBackWhenCacheFails(t *testing.T) {
	f := newFixture(t)
	mem := newMemCache()
	mem.fails = true
	svc := New(Deps{DB: f.db, Cache: mem})

	mains, err := svc.Catalog.MainCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Furniture", "Kitchen"}, mains)
	assert.Equal(t, 1, mem.gets)
}
