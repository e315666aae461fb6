package domain

import "time"

// MaxOrderQuantity is the largest notional accepted for a single order,
// in currency units. Quantities must fall in (0, MaxOrderQuantity].
const MaxOrderQuantity = 10_000_000

// Order is a booked position against a maturity term. Orders are
// immutable once created; there is no update or cancel path.
type Order struct {
	ID string `json:"id"`

	Term Term `json:"term"`

	// Yield is the market yield in effect for Term on the issue date,
	// captured from the curve store at creation time. Client-submitted
	// yields are never used.
	Yield float64 `json:"yield_value"`

	// Quantity is the notional amount in currency units, (0, 10M].
	Quantity float64 `json:"quantity"`

	// IssueDate is the date portion of the most recent curve date at
	// creation time, e.g. "2025-09-18".
	IssueDate string `json:"issue_date"`

	// MaturityDate is derived from IssueDate and Term.
	MaturityDate string `json:"maturity_date"`

	PurchaseTimestamp time.Time `json:"purchase_timestamp"`
}
