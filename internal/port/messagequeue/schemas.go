package messagequeue

// ReviewEnqueuedPayload is the schema for reviews.enqueued messages.
type ReviewEnqueuedPayload struct {
	EntryID       string  `json:"entry_id"`
	ProductSlug   string  `json:"product_slug"`
	CandidateName string  `json:"candidate_name"`
	CandidateShop string  `json:"candidate_shop"`
	FuzzyScore    float64 `json:"fuzzy_score"`
}

// ReviewCommittedPayload is the schema for reviews.committed messages.
type ReviewCommittedPayload struct {
	EntryID         string `json:"entry_id"`
	ProductSlug     string `json:"product_slug"`
	CompetitorName  string `json:"competitor_name"`
	CompetitorPrice int64  `json:"competitor_price"`
	CompetitorURL   string `json:"competitor_url"`
	RecordID        string `json:"record_id"`
	Decision        string `json:"decision"` // "approve" | "correct"
}
