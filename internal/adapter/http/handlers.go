package http

import (
	"net/http"

	"github.com/wiraa/pricedesk/internal/domain/product"
	"github.com/wiraa/pricedesk/internal/domain/review"
	"github.com/wiraa/pricedesk/internal/domain/supplier"
	"github.com/wiraa/pricedesk/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Reviews  *service.ReviewService
	Products *service.ProductService
	Matcher  *service.MatcherService
}

// --- Review queue ---

// ListPending returns the entries awaiting a decision.
func (h *Handlers) ListPending(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Reviews.ListPending(r.Context())
	if err != nil {
		writeDomainError(w, err, "list pending entries")
		return
	}
	if entries == nil {
		entries = []review.QueueEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetEntry returns one queue entry plus a decoded preview of its payload, so
// the reviewer sees what an approval would commit.
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Reviews.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "entry not found")
		return
	}

	resp := struct {
		review.QueueEntry
		Preview *review.Decoded `json:"preview,omitempty"`
	}{QueueEntry: *entry}

	if decoded, err := review.DecodePayload(entry.RawPayload); err == nil {
		resp.Preview = &decoded
	}
	writeJSON(w, http.StatusOK, resp)
}

// Approve commits an entry as-is.
func (h *Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.Reviews.Approve(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Correct commits an entry with a reviewer-supplied override.
func (h *Handlers) Correct(w http.ResponseWriter, r *http.Request) {
	c, ok := readJSON[review.Correction](w, r)
	if !ok {
		return
	}

	result, err := h.Reviews.Correct(r.Context(), urlParam(r, "id"), c)
	if err != nil {
		writeDomainError(w, err, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Catalog ---

// ListProducts returns all catalog products.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "list products")
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProduct creates a catalog product.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[product.CreateRequest](w, r)
	if !ok {
		return
	}

	p, err := h.Products.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "create product")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetProduct returns a product by slug.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Get(r.Context(), urlParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListProductPrices returns the competitor price records for a product.
func (h *Handlers) ListProductPrices(w http.ResponseWriter, r *http.Request) {
	records, err := h.Products.ListPrices(r.Context(), urlParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// --- Supplier offers / matching ---

// CreateOffer accepts a raw supplier offer from an ingestion channel.
func (h *Handlers) CreateOffer(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[supplier.CreateRequest](w, r)
	if !ok {
		return
	}

	o, err := h.Matcher.SubmitOffer(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "create offer")
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// RunMatcher triggers one matching pass over pending offers.
func (h *Handlers) RunMatcher(w http.ResponseWriter, r *http.Request) {
	report, err := h.Matcher.Run(r.Context())
	if err != nil {
		writeDomainError(w, err, "matcher run")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
