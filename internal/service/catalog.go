package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/welcomehome/internal/cache"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/store"
)

// Catalog serves category and location reference data, read through the
// cache when one is configured.
type Catalog struct{ *base }

// MainCategories returns the distinct main categories.
func (s *Catalog) MainCategories(ctx context.Context) ([]string, error) {
	return s.cachedStrings(ctx, cache.KeyMainCategories, func() ([]string, error) {
		return store.ListMainCategories(ctx, s.db)
	})
}

// Subcategories returns the sub categories of main.
func (s *Catalog) Subcategories(ctx context.Context, main string) ([]string, error) {
	main = strings.TrimSpace(main)
	if main == "" {
		return nil, fmt.Errorf("%w: main category is required", model.ErrInvalidInput)
	}
	return s.cachedStrings(ctx, cache.SubcategoriesKey(main), func() ([]string, error) {
		return store.ListSubcategories(ctx, s.db, main)
	})
}

// Seed upserts reference data and drops the cached category lists.
func (s *Catalog) Seed(ctx context.Context, ref store.ReferenceData) error {
	if err := store.ApplyReferenceData(ctx, s.db, ref); err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}

	mains, err := store.ListMainCategories(ctx, s.db)
	if err != nil {
		return err
	}
	keys := []string{cache.KeyMainCategories}
	for _, m := range mains {
		keys = append(keys, cache.SubcategoriesKey(m))
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		slog.Warn("failed to invalidate category cache", "error", err)
	}
	return nil
}

func (s *Catalog) cachedStrings(ctx context.Context, key string, load func() ([]string, error)) ([]string, error) {
	if s.cache != nil {
		var cached []string
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("category cache read failed", "key", key, "error", err)
		}
	}

	values, err := load()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, values); err != nil {
			slog.Warn("category cache write failed", "key", key, "error", err)
		}
	}
	return values, nil
}
