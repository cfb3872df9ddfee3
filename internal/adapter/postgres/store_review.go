package postgres

import (
	"context"
	"fmt"

	"github.com/wiraa/pricedesk/internal/domain/review"
)

// ListPendingEntries returns all queue entries awaiting a decision, oldest first.
func (s *Store) ListPendingEntries(ctx context.Context) ([]review.QueueEntry, error) {
	const q = `SELECT id, product_slug, candidate_name, candidate_shop,
		fuzzy_score, semantic_score, raw_payload, status, created_at, resolved_at
		FROM review_queue WHERE status = $1 ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, q, string(review.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("list pending entries: %w", err)
	}
	defer rows.Close()

	var entries []review.QueueEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntry retrieves a queue entry by ID.
func (s *Store) GetEntry(ctx context.Context, id string) (*review.QueueEntry, error) {
	const q = `SELECT id, product_slug, candidate_name, candidate_shop,
		fuzzy_score, semantic_score, raw_payload, status, created_at, resolved_at
		FROM review_queue WHERE id = $1`
	e, err := scanEntry(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFoundWrap(err, "get entry %s", id)
	}
	return &e, nil
}

// CreateEntry inserts a new pending queue entry.
func (s *Store) CreateEntry(ctx context.Context, e *review.QueueEntry) error {
	const q = `INSERT INTO review_queue
		(id, product_slug, candidate_name, candidate_shop, fuzzy_score, semantic_score, raw_payload, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	payload := e.RawPayload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	err := s.pool.QueryRow(ctx, q,
		e.ID, e.ProductSlug, e.CandidateName, e.CandidateShop,
		e.FuzzyScore, e.SemanticScore, payload, string(e.Status),
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", e.ID, err)
	}
	return nil
}

// ResolveEntry transitions an entry from pending to resolved. The WHERE clause
// carries the status guard; Postgres applies the row update atomically, so at
// most one concurrent caller observes rows affected = 1.
func (s *Store) ResolveEntry(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE review_queue SET status = $2, resolved_at = now()
		 WHERE id = $1 AND status = $3`,
		id, string(review.StatusResolved), string(review.StatusPending))
	if err != nil {
		return false, fmt.Errorf("resolve entry %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanEntry(row scannable) (review.QueueEntry, error) {
	var e review.QueueEntry
	err := row.Scan(
		&e.ID, &e.ProductSlug, &e.CandidateName, &e.CandidateShop,
		&e.FuzzyScore, &e.SemanticScore, &e.RawPayload, &e.Status,
		&e.CreatedAt, &e.ResolvedAt,
	)
	return e, err
}
