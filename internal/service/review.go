package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	pdotel "github.com/wiraa/pricedesk/internal/adapter/otel"
	"github.com/wiraa/pricedesk/internal/domain"
	"github.com/wiraa/pricedesk/internal/domain/price"
	"github.com/wiraa/pricedesk/internal/domain/review"
	"github.com/wiraa/pricedesk/internal/logger"
	"github.com/wiraa/pricedesk/internal/port/cache"
	"github.com/wiraa/pricedesk/internal/port/database"
	"github.com/wiraa/pricedesk/internal/port/messagequeue"
)

// pendingCacheKey holds the cached projection of the pending review queue.
const pendingCacheKey = "review:pending"

// Outcome describes how a commit attempt ended.
type Outcome string

const (
	// OutcomeCommitted: record inserted and entry resolved by this call.
	OutcomeCommitted Outcome = "committed"
	// OutcomeDuplicate: record inserted, but another reviewer resolved the
	// entry first. Benign; the store now holds a redundant record.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeAbandoned: the decision produced no write-set (empty correction
	// name). Nothing changed anywhere.
	OutcomeAbandoned Outcome = "abandoned"
)

// CommitResult is what a decision attempt reports back to the review surface.
type CommitResult struct {
	Outcome Outcome       `json:"outcome"`
	Record  *price.Record `json:"record,omitempty"`
}

// ReviewService coordinates review decisions against the store. It holds no
// locks and assumes any number of concurrent reviewers; at-most-one resolution
// per entry rests entirely on the store's status-guarded update.
type ReviewService struct {
	store      database.Store
	queue      messagequeue.Queue
	cache      cache.Cache
	metrics    *pdotel.Metrics
	pendingTTL time.Duration
}

// NewReviewService creates a new ReviewService.
func NewReviewService(store database.Store, queue messagequeue.Queue, c cache.Cache, m *pdotel.Metrics, pendingTTL time.Duration) *ReviewService {
	return &ReviewService{store: store, queue: queue, cache: c, metrics: m, pendingTTL: pendingTTL}
}

// ListPending returns the entries awaiting a decision. The result is a cached
// projection of the store, never a locally maintained working set; it is
// re-read after the TTL or after a confirmed commit evicts it.
func (s *ReviewService) ListPending(ctx context.Context) ([]review.QueueEntry, error) {
	if data, ok, err := s.cache.Get(ctx, pendingCacheKey); err == nil && ok {
		var entries []review.QueueEntry
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries, nil
		}
	}

	entries, err := s.store.ListPendingEntries(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		_ = s.cache.Set(ctx, pendingCacheKey, data, s.pendingTTL)
	}
	return entries, nil
}

// Get returns a queue entry by ID.
func (s *ReviewService) Get(ctx context.Context, id string) (*review.QueueEntry, error) {
	return s.store.GetEntry(ctx, id)
}

// Approve commits an entry as-is, using the candidate fields and the decoded
// raw payload. A malformed payload refuses the approval and leaves the entry
// pending with nothing inserted.
func (s *ReviewService) Approve(ctx context.Context, id string) (*CommitResult, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := review.PlanApprove(*entry)
	if err != nil {
		if errors.Is(err, review.ErrCannotApprove) {
			s.metrics.ApprovalsRefused.Add(ctx, 1)
		}
		return nil, err
	}

	return s.commit(ctx, plan, "approve")
}

// Correct commits an entry with a reviewer-supplied override. An empty name
// abandons the decision without touching the store.
func (s *ReviewService) Correct(ctx context.Context, id string, c review.Correction) (*CommitResult, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := review.PlanCorrect(*entry, c)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return &CommitResult{Outcome: OutcomeAbandoned}, nil
	}

	return s.commit(ctx, plan, "correct")
}

// commit executes a plan: insert the price record, then conditionally resolve
// the entry. The insert carries no guard and may produce a duplicate record
// when reviewers race; the resolve is the single point that decides the
// winner. There is no rollback of the insert: a redundant price record is
// preferred over losing reviewer work.
func (s *ReviewService) commit(ctx context.Context, plan *review.CommitPlan, decision string) (*CommitResult, error) {
	ctx, span := pdotel.StartCommitSpan(ctx, plan.EntryID, decision)
	defer span.End()
	start := time.Now()

	rec := plan.Record
	if err := s.store.InsertPrice(ctx, &rec); err != nil {
		// Nothing persisted; the entry is untouched and the decision can be
		// retried as-is.
		return nil, fmt.Errorf("insert price record: %w", err)
	}

	resolved, err := s.store.ResolveEntry(ctx, plan.EntryID)
	if err != nil {
		// The record from the insert above is already durable while the entry
		// is still pending. Surface this loudly; a reconciliation pass has to
		// repair it.
		s.metrics.CommitsPartial.Add(ctx, 1)
		return nil, fmt.Errorf("entry %s: %w: %w", plan.EntryID, domain.ErrPartialCommit, err)
	}

	if !resolved {
		slog.Warn("entry resolved by another reviewer, duplicate record persisted",
			"entry_id", plan.EntryID,
			"record_id", rec.ID,
			"request_id", logger.RequestID(ctx),
		)
		s.metrics.CommitsDuplicate.Add(ctx, 1)
		return &CommitResult{Outcome: OutcomeDuplicate, Record: &rec}, nil
	}

	s.publishCommitted(ctx, plan.EntryID, rec, decision)
	// Evict the pending projection only after the commit is confirmed.
	_ = s.cache.Delete(ctx, pendingCacheKey)

	s.metrics.CommitsCompleted.Add(ctx, 1)
	s.metrics.CommitDuration.Record(ctx, time.Since(start).Seconds())

	return &CommitResult{Outcome: OutcomeCommitted, Record: &rec}, nil
}

// publishCommitted announces a confirmed commit. The commit itself is already
// durable, so a publish failure is logged and swallowed.
func (s *ReviewService) publishCommitted(ctx context.Context, entryID string, rec price.Record, decision string) {
	data, err := json.Marshal(messagequeue.ReviewCommittedPayload{
		EntryID:         entryID,
		ProductSlug:     rec.ProductSlug,
		CompetitorName:  rec.CompetitorName,
		CompetitorPrice: rec.CompetitorPrice,
		CompetitorURL:   rec.CompetitorURL,
		RecordID:        rec.ID,
		Decision:        decision,
	})
	if err != nil {
		slog.Error("marshal committed event", "entry_id", entryID, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, messagequeue.SubjectReviewCommitted, data); err != nil {
		slog.Error("publish committed event", "entry_id", entryID, "error", err)
	}
}
