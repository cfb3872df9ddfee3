// Package review defines the review queue entities and the pure decision
// logic that turns a reviewer verdict into a commit plan.
package review

import (
	"time"

	"github.com/wiraa/pricedesk/internal/domain/price"
)

// Status represents the lifecycle of a queue entry. An entry is created
// pending by the matcher, flipped to resolved exactly once by the commit
// coordinator, and never deleted here.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
)

// QueueEntry is a candidate match awaiting a human decision. Everything except
// Status is read-only to this service once the matcher has written it.
type QueueEntry struct {
	ID            string     `json:"id"`
	ProductSlug   string     `json:"product_slug"`
	CandidateName string     `json:"candidate_name"`
	CandidateShop string     `json:"candidate_shop"`
	FuzzyScore    float64    `json:"fuzzy_score"`
	SemanticScore float64    `json:"semantic_score"`
	RawPayload    []byte     `json:"raw_payload,omitempty"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// Correction holds the reviewer-supplied override for the correct decision.
// Price arrives as raw human input and is parsed permissively.
type Correction struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	URL   string `json:"url"`
}

// CommitPlan is the write-set computed for a decision: one price record to
// insert plus the status transition to apply to the entry. The plan is inert;
// only the commit coordinator executes it.
type CommitPlan struct {
	Record       price.Record
	EntryID      string
	TargetStatus Status
}
