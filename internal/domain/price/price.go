// Package price defines the competitor price record entity.
package price

import "time"

// Record is a normalized competitor price observation. Records are created by
// the review commit workflow and owned by the store thereafter; duplicates for
// the same (product, competitor) pair are legal when reviewers race.
type Record struct {
	ID              string    `json:"id"`
	ProductSlug     string    `json:"product_slug"`
	CompetitorName  string    `json:"competitor_name"`
	CompetitorPrice int64     `json:"competitor_price"`
	CompetitorURL   string    `json:"competitor_url"`
	CreatedAt       time.Time `json:"created_at"`
}
