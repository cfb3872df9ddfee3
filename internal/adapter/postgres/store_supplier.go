package postgres

import (
	"context"
	"fmt"

	"github.com/wiraa/pricedesk/internal/domain"
	"github.com/wiraa/pricedesk/internal/domain/supplier"
)

// ListPendingOffers returns supplier offers not yet handed to review, oldest first.
func (s *Store) ListPendingOffers(ctx context.Context) ([]supplier.Offer, error) {
	const q = `SELECT id, extracted_name, supplier, image_url, status, created_at
		FROM supplier_offers WHERE status = $1 ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, q, string(supplier.OfferPending))
	if err != nil {
		return nil, fmt.Errorf("list pending offers: %w", err)
	}
	defer rows.Close()

	var offers []supplier.Offer
	for rows.Next() {
		var o supplier.Offer
		if err := rows.Scan(&o.ID, &o.ExtractedName, &o.Supplier, &o.ImageURL, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// CreateOffer inserts a new pending supplier offer.
func (s *Store) CreateOffer(ctx context.Context, req supplier.CreateRequest) (*supplier.Offer, error) {
	const q = `INSERT INTO supplier_offers (extracted_name, supplier, image_url, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, extracted_name, supplier, image_url, status, created_at`
	var o supplier.Offer
	err := s.pool.QueryRow(ctx, q,
		req.ExtractedName, req.Supplier, req.ImageURL, string(supplier.OfferPending),
	).Scan(&o.ID, &o.ExtractedName, &o.Supplier, &o.ImageURL, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return &o, nil
}

// MarkOfferInReview flips an offer to in_review once a candidate was enqueued.
func (s *Store) MarkOfferInReview(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE supplier_offers SET status = $2 WHERE id = $1`,
		id, string(supplier.OfferInReview))
	if err != nil {
		return fmt.Errorf("mark offer %s in review: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark offer %s in review: %w", id, domain.ErrNotFound)
	}
	return nil
}
