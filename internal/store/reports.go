package store

import (
	"context"
	"fmt"
	"time"

	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
)

// RankCategories counts ordered items per category for orders dated
// within [start, end] and returns the top limit rows. Equal counts are
// ordered by main then sub category.
func RankCategories(ctx context.Context, q db.Querier, start, end time.Time, limit int) ([]model.CategoryRank, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT c.main_category, c.sub_category, COUNT(*) AS order_count
		 FROM item_in ii
		 JOIN item i ON i.item_id = ii.item_id
		 JOIN category c ON c.main_category = i.main_category AND c.sub_category = i.sub_category
		 JOIN ordered o ON o.order_id = ii.order_id
		 WHERE o.order_date BETWEEN ? AND ?
		 GROUP BY c.main_category, c.sub_category
		 ORDER BY order_count DESC, c.main_category, c.sub_category
		 LIMIT ?`,
		db.FormatDate(start), db.FormatDate(end), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ranking categories: %w", err)
	}
	defer rows.Close()

	var ranking []model.CategoryRank
	for rows.Next() {
		var r model.CategoryRank
		if err := rows.Scan(&r.MainCategory, &r.SubCategory, &r.OrderCount); err != nil {
			return nil, fmt.Errorf("scanning ranking: %w", err)
		}
		ranking = append(ranking, r)
	}
	return ranking, rows.Err()
}
