// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/wiraa/pricedesk/internal/domain/price"
	"github.com/wiraa/pricedesk/internal/domain/product"
	"github.com/wiraa/pricedesk/internal/domain/review"
	"github.com/wiraa/pricedesk/internal/domain/supplier"
)

// Store is the port interface for database operations.
type Store interface {
	// Products
	ListProducts(ctx context.Context) ([]product.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*product.Product, error)
	CreateProduct(ctx context.Context, req product.CreateRequest) (*product.Product, error)

	// Review queue
	ListPendingEntries(ctx context.Context) ([]review.QueueEntry, error)
	GetEntry(ctx context.Context, id string) (*review.QueueEntry, error)
	CreateEntry(ctx context.Context, e *review.QueueEntry) error

	// ResolveEntry flips an entry from pending to resolved, guarded by the
	// entry still being pending at write time. It reports false when the
	// guard did not hold (another reviewer won the race). The store must
	// execute the guard atomically per row.
	ResolveEntry(ctx context.Context, id string) (bool, error)

	// Competitor prices
	InsertPrice(ctx context.Context, rec *price.Record) error
	ListPricesBySlug(ctx context.Context, slug string) ([]price.Record, error)

	// Supplier offers
	ListPendingOffers(ctx context.Context) ([]supplier.Offer, error)
	CreateOffer(ctx context.Context, req supplier.CreateRequest) (*supplier.Offer, error)
	MarkOfferInReview(ctx context.Context, id string) error
}
