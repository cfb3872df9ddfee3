package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wiraa/pricedesk/internal/domain/product"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Products ---

func (s *Store) ListProducts(ctx context.Context) ([]product.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, slug, name, price, created_at
		 FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*product.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, slug, name, price, created_at
		 FROM products WHERE slug = $1`, slug)

	p, err := scanProduct(row)
	if err != nil {
		return nil, notFoundWrap(err, "get product %s", slug)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, req product.CreateRequest) (*product.Product, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO products (slug, name, price)
		 VALUES ($1, $2, $3)
		 RETURNING id, slug, name, price, created_at`,
		req.Slug, req.Name, req.Price)

	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product %s: %w", req.Slug, err)
	}
	return &p, nil
}

func scanProduct(row scannable) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Price, &p.CreatedAt)
	return p, err
}
