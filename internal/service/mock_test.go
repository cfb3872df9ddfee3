package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	pdotel "github.com/wiraa/pricedesk/internal/adapter/otel"
	"github.com/wiraa/pricedesk/internal/domain"
	"github.com/wiraa/pricedesk/internal/domain/price"
	"github.com/wiraa/pricedesk/internal/domain/product"
	"github.com/wiraa/pricedesk/internal/domain/review"
	"github.com/wiraa/pricedesk/internal/domain/supplier"
	"github.com/wiraa/pricedesk/internal/port/messagequeue"
)

// mockStore is an in-memory Store with error-injection hooks. ResolveEntry
// applies the same status guard the SQL store does, under a mutex, so the
// race tests exercise the real at-most-once contract.
type mockStore struct {
	mu       sync.Mutex
	products []product.Product
	entries  map[string]*review.QueueEntry
	records  []price.Record
	offers   map[string]*supplier.Offer

	insertPriceErr error
	resolveErr     error
	createEntryErr error
	listOffersErr  error
	seq            int
}

func newMockStore() *mockStore {
	return &mockStore{
		entries: make(map[string]*review.QueueEntry),
		offers:  make(map[string]*supplier.Offer),
	}
}

func (m *mockStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *mockStore) ListProducts(_ context.Context) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]product.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *mockStore) GetProductBySlug(_ context.Context, slug string) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].Slug == slug {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", slug, domain.ErrNotFound)
}

func (m *mockStore) CreateProduct(_ context.Context, req product.CreateRequest) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := product.Product{
		ID:        m.nextID("prod"),
		Slug:      req.Slug,
		Name:      req.Name,
		Price:     req.Price,
		CreatedAt: time.Now(),
	}
	m.products = append(m.products, p)
	return &p, nil
}

func (m *mockStore) ListPendingEntries(_ context.Context) ([]review.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []review.QueueEntry
	for _, e := range m.entries {
		if e.Status == review.StatusPending {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockStore) GetEntry(_ context.Context, id string) (*review.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (m *mockStore) CreateEntry(_ context.Context, e *review.QueueEntry) error {
	if m.createEntryErr != nil {
		return m.createEntryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	cp.CreatedAt = time.Now()
	m.entries[e.ID] = &cp
	return nil
}

func (m *mockStore) ResolveEntry(_ context.Context, id string) (bool, error) {
	if m.resolveErr != nil {
		return false, m.resolveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.Status != review.StatusPending {
		return false, nil
	}
	now := time.Now()
	e.Status = review.StatusResolved
	e.ResolvedAt = &now
	return true, nil
}

func (m *mockStore) InsertPrice(_ context.Context, rec *price.Record) error {
	if m.insertPriceErr != nil {
		return m.insertPriceErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = m.nextID("rec")
	rec.CreatedAt = time.Now()
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockStore) ListPricesBySlug(_ context.Context, slug string) ([]price.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []price.Record
	for _, r := range m.records {
		if r.ProductSlug == slug {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) ListPendingOffers(_ context.Context) ([]supplier.Offer, error) {
	if m.listOffersErr != nil {
		return nil, m.listOffersErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []supplier.Offer
	for _, o := range m.offers {
		if o.Status == supplier.OfferPending {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockStore) CreateOffer(_ context.Context, req supplier.CreateRequest) (*supplier.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := supplier.Offer{
		ID:            m.nextID("offer"),
		ExtractedName: req.ExtractedName,
		Supplier:      req.Supplier,
		ImageURL:      req.ImageURL,
		Status:        supplier.OfferPending,
		CreatedAt:     time.Now(),
	}
	m.offers[o.ID] = &o
	return &o, nil
}

func (m *mockStore) MarkOfferInReview(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[id]
	if !ok {
		return fmt.Errorf("offer %s: %w", id, domain.ErrNotFound)
	}
	o.Status = supplier.OfferInReview
	return nil
}

func (m *mockStore) priceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *mockStore) entryStatus(id string) review.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id].Status
}

// mockQueue records published messages.
type mockQueue struct {
	mu         sync.Mutex
	published  []publishedMsg
	publishErr error
}

type publishedMsg struct {
	subject string
	data    []byte
}

func (q *mockQueue) Publish(_ context.Context, subject string, data []byte) error {
	if q.publishErr != nil {
		return q.publishErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.published = append(q.published, publishedMsg{subject: subject, data: data})
	return nil
}

func (q *mockQueue) Subscribe(context.Context, string, messagequeue.Handler) (func(), error) {
	return func() {}, nil
}

func (q *mockQueue) Close() error { return nil }

func (q *mockQueue) messages(subject string) []publishedMsg {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []publishedMsg
	for _, msg := range q.published {
		if msg.subject == subject {
			out = append(out, msg)
		}
	}
	return out
}

// mockCache is a map-backed cache that ignores TTLs.
type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deletes++
	return nil
}

func (c *mockCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func testMetrics(t *testing.T) *pdotel.Metrics {
	t.Helper()
	m, err := pdotel.NewMetrics()
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m
}
