package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedPayload indicates the raw candidate data could not be decoded.
// It blocks only the approve path; the reviewer can still correct the entry.
var ErrMalformedPayload = errors.New("malformed candidate payload")

// Decoded is the best-effort {price, url} extraction from a raw candidate
// payload. Missing sub-fields degrade to defaults rather than failing.
type Decoded struct {
	Price        int64  `json:"price"`
	URL          string `json:"url"`
	PriceMissing bool   `json:"price_missing"`
}

// DecodePayload extracts a price and source URL from the opaque marketplace
// blob attached to a queue entry. The only failure mode is a structurally
// broken payload; absent or unusable fields produce typed defaults.
//
// Field rules:
//   - price: numeric (or numeric string); absent or non-numeric decodes to 0
//     with PriceMissing set. Negative values are coerced to 0.
//   - url: web_client_absolute_url, falling back to more_info_url, else "".
func DecodePayload(raw []byte) (Decoded, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Decoded{}, fmt.Errorf("decode payload: %w", ErrMalformedPayload)
	}

	d := Decoded{}

	switch v := fields["price"].(type) {
	case float64:
		if v > 0 {
			d.Price = int64(v)
		}
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			d.PriceMissing = true
		} else if f > 0 {
			d.Price = int64(f)
		}
	default:
		d.PriceMissing = true
	}

	if u, ok := fields["web_client_absolute_url"].(string); ok && u != "" {
		d.URL = u
	} else if u, ok := fields["more_info_url"].(string); ok {
		d.URL = u
	}

	return d, nil
}
