package domain

import "time"

// DefaultProductPrice is used when a campaign's product cannot be resolved.
// Revenue generated with the fallback is plausible-looking but meaningless,
// so callers log a warning when it kicks in.
const DefaultProductPrice = 100.0

// Product is the advertised item; its unit price converts conversions into
// revenue. Owned by the CRUD layer, read-only here.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
