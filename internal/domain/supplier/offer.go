// Package supplier defines the raw supplier offer entity produced by the
// ingestion channels (Telegram forwards, OCR) before matching.
package supplier

import "time"

// OfferStatus represents the lifecycle of a supplier offer.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferInReview OfferStatus = "in_review"
)

// Offer is an unmatched competitor listing as extracted by an ingestion
// channel. The matcher pairs it with a catalog product and queues it for
// human review.
type Offer struct {
	ID            string      `json:"id"`
	ExtractedName string      `json:"extracted_name"`
	Supplier      string      `json:"supplier"`
	ImageURL      string      `json:"image_url,omitempty"`
	Status        OfferStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// CreateRequest holds the fields an ingestion channel submits for a new offer.
type CreateRequest struct {
	ExtractedName string `json:"extracted_name"`
	Supplier      string `json:"supplier"`
	ImageURL      string `json:"image_url"`
}
