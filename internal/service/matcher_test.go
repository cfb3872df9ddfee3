package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wiraa/pricedesk/internal/domain"
	"github.com/wiraa/pricedesk/internal/domain/product"
	"github.com/wiraa/pricedesk/internal/domain/review"
	"github.com/wiraa/pricedesk/internal/domain/supplier"
	"github.com/wiraa/pricedesk/internal/port/messagequeue"
)

func newMatcherFixture(t *testing.T, threshold float64) (*MatcherService, *mockStore, *mockQueue) {
	t.Helper()
	store := newMockStore()
	queue := &mockQueue{}
	svc := NewMatcherService(store, queue, testMetrics(t), threshold, 2)
	return svc, store, queue
}

func seedCatalog(t *testing.T, store *mockStore, names map[string]string) {
	t.Helper()
	for slug, name := range names {
		if _, err := store.CreateProduct(context.Background(), product.CreateRequest{Slug: slug, Name: name}); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}
}

func TestSubmitOfferValidation(t *testing.T) {
	svc, _, _ := newMatcherFixture(t, 50)

	tests := []struct {
		name string
		req  supplier.CreateRequest
	}{
		{"empty name", supplier.CreateRequest{Supplier: "ShopX"}},
		{"blank name", supplier.CreateRequest{ExtractedName: "  ", Supplier: "ShopX"}},
		{"empty supplier", supplier.CreateRequest{ExtractedName: "Widget"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SubmitOffer(context.Background(), tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSubmitOfferTrimsFields(t *testing.T) {
	svc, _, _ := newMatcherFixture(t, 50)

	o, err := svc.SubmitOffer(context.Background(), supplier.CreateRequest{
		ExtractedName: "  Widget Pro ",
		Supplier:      " ShopX ",
	})
	if err != nil {
		t.Fatalf("SubmitOffer: %v", err)
	}
	if o.ExtractedName != "Widget Pro" || o.Supplier != "ShopX" {
		t.Errorf("offer = %+v", o)
	}
	if o.Status != supplier.OfferPending {
		t.Errorf("Status = %q, want pending", o.Status)
	}
}

func TestRunEnqueuesAboveThreshold(t *testing.T) {
	svc, store, queue := newMatcherFixture(t, 50)
	seedCatalog(t, store, map[string]string{
		"sku-42": "Widget Pro 64GB",
		"sku-7":  "Gadget Mini",
	})
	if _, err := svc.SubmitOffer(context.Background(), supplier.CreateRequest{
		ExtractedName: "widget pro 64gb black",
		Supplier:      "ShopX",
	}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Offers != 1 || report.Enqueued != 1 || report.Skipped != 0 {
		t.Errorf("report = %+v", report)
	}

	entries, err := store.ListPendingEntries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.ProductSlug != "sku-42" {
		t.Errorf("ProductSlug = %q, want sku-42 (best match)", e.ProductSlug)
	}
	if e.CandidateName != "widget pro 64gb black" || e.CandidateShop != "ShopX" {
		t.Errorf("candidate = %q/%q", e.CandidateName, e.CandidateShop)
	}
	if e.Status != review.StatusPending {
		t.Errorf("Status = %q, want pending", e.Status)
	}
	if e.FuzzyScore < 50 {
		t.Errorf("FuzzyScore = %v, want >= threshold", e.FuzzyScore)
	}

	// The matched offer leaves the pending pool.
	offers, err := store.ListPendingOffers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 0 {
		t.Errorf("pending offers = %d, want 0", len(offers))
	}

	msgs := queue.messages(messagequeue.SubjectReviewEnqueued)
	if len(msgs) != 1 {
		t.Fatalf("enqueued events = %d, want 1", len(msgs))
	}
	var payload messagequeue.ReviewEnqueuedPayload
	if err := json.Unmarshal(msgs[0].data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.EntryID != e.ID || payload.ProductSlug != "sku-42" {
		t.Errorf("event = %+v", payload)
	}
}

func TestRunSkipsBelowThreshold(t *testing.T) {
	svc, store, queue := newMatcherFixture(t, 50)
	seedCatalog(t, store, map[string]string{"sku-42": "Widget Pro 64GB"})
	if _, err := svc.SubmitOffer(context.Background(), supplier.CreateRequest{
		ExtractedName: "qqq zzz xxx",
		Supplier:      "ShopX",
	}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Enqueued != 0 || report.Skipped != 1 {
		t.Errorf("report = %+v", report)
	}

	// Skipped offers stay pending for the next pass.
	offers, err := store.ListPendingOffers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 1 {
		t.Errorf("pending offers = %d, want 1", len(offers))
	}
	if len(queue.published) != 0 {
		t.Error("no events for skipped offers")
	}
}

func TestRunEmptyCatalogSkipsAll(t *testing.T) {
	svc, _, _ := newMatcherFixture(t, 50)
	if _, err := svc.SubmitOffer(context.Background(), supplier.CreateRequest{
		ExtractedName: "Widget",
		Supplier:      "ShopX",
	}); err != nil {
		t.Fatal(err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Offers != 1 || report.Skipped != 1 || report.Enqueued != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunNoOffers(t *testing.T) {
	svc, store, _ := newMatcherFixture(t, 50)
	seedCatalog(t, store, map[string]string{"sku-42": "Widget Pro"})

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Offers != 0 || report.Enqueued != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunPropagatesStoreError(t *testing.T) {
	svc, store, _ := newMatcherFixture(t, 50)
	store.listOffersErr = errors.New("connection reset")

	if _, err := svc.Run(context.Background()); err == nil {
		t.Error("expected error from store")
	}
}
