// Package product defines the catalog product entity.
package product

import "time"

// Product is one item of the shop's own catalog. Its slug is the stable
// identifier that competitor price records reference.
type Product struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest holds the fields needed to create a new product.
type CreateRequest struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
