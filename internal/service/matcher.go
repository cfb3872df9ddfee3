package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	pdotel "github.com/wiraa/pricedesk/internal/adapter/otel"
	"github.com/wiraa/pricedesk/internal/domain"
	"github.com/wiraa/pricedesk/internal/domain/match"
	"github.com/wiraa/pricedesk/internal/domain/product"
	"github.com/wiraa/pricedesk/internal/domain/review"
	"github.com/wiraa/pricedesk/internal/domain/supplier"
	"github.com/wiraa/pricedesk/internal/port/database"
	"github.com/wiraa/pricedesk/internal/port/messagequeue"
)

// MatcherService pairs pending supplier offers with catalog products and
// enqueues the winners for human review. It is a producer only: none of the
// commit invariants live here.
type MatcherService struct {
	store     database.Store
	queue     messagequeue.Queue
	metrics   *pdotel.Metrics
	threshold float64
	workers   int
}

// NewMatcherService creates a new MatcherService.
func NewMatcherService(store database.Store, queue messagequeue.Queue, m *pdotel.Metrics, threshold float64, workers int) *MatcherService {
	return &MatcherService{store: store, queue: queue, metrics: m, threshold: threshold, workers: workers}
}

// MatchReport summarizes one matcher pass.
type MatchReport struct {
	Offers   int `json:"offers"`
	Enqueued int `json:"enqueued"`
	Skipped  int `json:"skipped"`
}

// SubmitOffer validates and stores a raw supplier offer from an ingestion channel.
func (s *MatcherService) SubmitOffer(ctx context.Context, req supplier.CreateRequest) (*supplier.Offer, error) {
	req.ExtractedName = strings.TrimSpace(req.ExtractedName)
	req.Supplier = strings.TrimSpace(req.Supplier)
	if req.ExtractedName == "" {
		return nil, fmt.Errorf("%w: extracted_name is required", domain.ErrValidation)
	}
	if req.Supplier == "" {
		return nil, fmt.Errorf("%w: supplier is required", domain.ErrValidation)
	}
	return s.store.CreateOffer(ctx, req)
}

// Run scores every pending offer against the catalog and enqueues the best
// match when it clears the threshold. Offers below the threshold stay pending
// for the next pass (the catalog may grow). Scoring fans out over a bounded
// worker pool.
func (s *MatcherService) Run(ctx context.Context) (*MatchReport, error) {
	ctx, span := pdotel.StartMatchSpan(ctx)
	defer span.End()

	offers, err := s.store.ListPendingOffers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	report := &MatchReport{Offers: len(offers)}
	if len(offers) == 0 || len(products) == 0 {
		report.Skipped = len(offers)
		return report, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, offer := range offers {
		g.Go(func() error {
			best, score := bestMatch(offer.ExtractedName, products)
			if best == nil || score < s.threshold {
				mu.Lock()
				report.Skipped++
				mu.Unlock()
				return nil
			}

			entry := &review.QueueEntry{
				ID:            uuid.NewString(),
				ProductSlug:   best.Slug,
				CandidateName: offer.ExtractedName,
				CandidateShop: offer.Supplier,
				FuzzyScore:    score,
				SemanticScore: 0, // filled once embeddings exist
				Status:        review.StatusPending,
			}
			if err := s.store.CreateEntry(gctx, entry); err != nil {
				return err
			}
			if err := s.store.MarkOfferInReview(gctx, offer.ID); err != nil {
				return err
			}

			s.publishEnqueued(gctx, entry)
			s.metrics.CandidatesMatched.Add(gctx, 1)

			mu.Lock()
			report.Enqueued++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("matcher pass: %w", err)
	}
	return report, nil
}

// bestMatch returns the highest-scoring product for an offer name.
func bestMatch(name string, products []product.Product) (*product.Product, float64) {
	var best *product.Product
	var bestScore float64
	for i := range products {
		if score := match.Score(name, products[i].Name); best == nil || score > bestScore {
			best = &products[i]
			bestScore = score
		}
	}
	return best, bestScore
}

// publishEnqueued announces a new candidate. The entry is already durable, so
// a publish failure is logged and swallowed.
func (s *MatcherService) publishEnqueued(ctx context.Context, e *review.QueueEntry) {
	data, err := json.Marshal(messagequeue.ReviewEnqueuedPayload{
		EntryID:       e.ID,
		ProductSlug:   e.ProductSlug,
		CandidateName: e.CandidateName,
		CandidateShop: e.CandidateShop,
		FuzzyScore:    e.FuzzyScore,
	})
	if err != nil {
		slog.Error("marshal enqueued event", "entry_id", e.ID, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, messagequeue.SubjectReviewEnqueued, data); err != nil {
		slog.Error("publish enqueued event", "entry_id", e.ID, "error", err)
	}
}
