package postgres

import (
	"context"
	"fmt"

	"github.com/wiraa/pricedesk/internal/domain/price"
)

// InsertPrice persists a competitor price record and fills in the generated
// ID and timestamp. There is deliberately no uniqueness guard: racing
// reviewers may insert duplicates for the same entry.
func (s *Store) InsertPrice(ctx context.Context, rec *price.Record) error {
	const q = `INSERT INTO competitor_prices
		(product_slug, competitor_name, competitor_price, competitor_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := s.pool.QueryRow(ctx, q,
		rec.ProductSlug, rec.CompetitorName, rec.CompetitorPrice, rec.CompetitorURL,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert price for %s: %w", rec.ProductSlug, err)
	}
	return nil
}

// ListPricesBySlug returns all competitor price records for a product,
// most recent first.
func (s *Store) ListPricesBySlug(ctx context.Context, slug string) ([]price.Record, error) {
	const q = `SELECT id, product_slug, competitor_name, competitor_price, competitor_url, created_at
		FROM competitor_prices WHERE product_slug = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, q, slug)
	if err != nil {
		return nil, fmt.Errorf("list prices for %s: %w", slug, err)
	}
	defer rows.Close()

	var records []price.Record
	for rows.Next() {
		var r price.Record
		if err := rows.Scan(
			&r.ID, &r.ProductSlug, &r.CompetitorName,
			&r.CompetitorPrice, &r.CompetitorURL, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
