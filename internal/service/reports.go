package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/store"
)

// RankingSize is the number of categories in a ranking.
const RankingSize = 5

// Reports computes category popularity.
type Reports struct{ *base }

// Range is an inclusive date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses YYYY-MM-DD bounds. Both are required.
func ParseRange(start, end string) (Range, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return Range{}, model.ErrMissingRange
	}
	s, err := time.Parse(db.DateLayout, start)
	if err != nil {
		return Range{}, fmt.Errorf("%w: start date %q", model.ErrInvalidInput, start)
	}
	e, err := time.Parse(db.DateLayout, end)
	if err != nil {
		return Range{}, fmt.Errorf("%w: end date %q", model.ErrInvalidInput, end)
	}
	return Range{Start: s, End: e}, nil
}

// RankCategories returns the most ordered categories in the range.
func (s *Reports) RankCategories(ctx context.Context, start, end string) (Range, []model.CategoryRank, error) {
	r, err := ParseRange(start, end)
	if err != nil {
		return Range{}, nil, err
	}
	ranking, err := store.RankCategories(ctx, s.db, r.Start, r.End, RankingSize)
	if err != nil {
		return Range{}, nil, err
	}
	return r, ranking, nil
}
