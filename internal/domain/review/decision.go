package review

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wiraa/pricedesk/internal/domain"
	"github.com/wiraa/pricedesk/internal/domain/price"
)

// ErrCannotApprove indicates approve was attempted on an entry whose payload
// is malformed. The reviewer has to use correct instead.
var ErrCannotApprove = errors.New("cannot approve: invalid source data")

// PlanApprove computes the write-set for approving an entry as-is: the
// candidate name and shop are taken verbatim, price and URL come from the
// decoded payload. No I/O happens here.
func PlanApprove(entry QueueEntry) (*CommitPlan, error) {
	if entry.Status != StatusPending {
		return nil, fmt.Errorf("entry %s: %w", entry.ID, domain.ErrAlreadyResolved)
	}

	decoded, err := DecodePayload(entry.RawPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotApprove, err)
	}

	return &CommitPlan{
		Record: price.Record{
			ProductSlug:     entry.ProductSlug,
			CompetitorName:  entry.CandidateName,
			CompetitorPrice: decoded.Price,
			CompetitorURL:   decoded.URL,
		},
		EntryID:      entry.ID,
		TargetStatus: StatusResolved,
	}, nil
}

// PlanCorrect computes the write-set for resolving an entry with a
// reviewer-supplied override. An empty name (after trimming) abandons the
// decision: both return values are nil and nothing is written anywhere.
// An unparseable or negative price becomes 0 rather than an error.
func PlanCorrect(entry QueueEntry, c Correction) (*CommitPlan, error) {
	if entry.Status != StatusPending {
		return nil, fmt.Errorf("entry %s: %w", entry.ID, domain.ErrAlreadyResolved)
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, nil
	}

	return &CommitPlan{
		Record: price.Record{
			ProductSlug:     entry.ProductSlug,
			CompetitorName:  name,
			CompetitorPrice: parsePrice(c.Price),
			CompetitorURL:   strings.TrimSpace(c.URL),
		},
		EntryID:      entry.ID,
		TargetStatus: StatusResolved,
	}, nil
}

// parsePrice converts raw human input to a non-negative amount.
// Anything unusable is 0.
func parsePrice(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
