package domain

import "time"

// EntryKind distinguishes the two ledgers being reconciled.
type EntryKind string

const (
	EntryKindSauda    EntryKind = "sauda"
	EntryKindDelivery EntryKind = "delivery"
)

// Entry is a single validated ledger line. Quantity and Rate are positive
// and rounded to 2 decimal places.
type Entry struct {
	Quantity Quantity
	Rate     Rate
	Date     time.Time
}

// RawEntry is a ledger line as captured from a form, sheet or request body,
// before validation. Date is kept as text so a malformed date can be
// reported rather than failing the whole batch.
type RawEntry struct {
	Quantity Quantity
	Rate     Rate
	Date     string
}

// RejectedEntry records a raw line excluded by validation.
type RejectedEntry struct {
	Kind   EntryKind
	Row    int // 1-based position in the submitted list
	Reason string
}

// Commitment is a sauda entry after allocation.
type Commitment struct {
	Entry
	Remaining        Quantity
	LastDeliveryDate *time.Time // nil when no delivery touched it
}

// Delivered returns the quantity absorbed by deliveries.
func (c Commitment) Delivered() Quantity {
	return c.Quantity.Sub(c.Remaining)
}

// Open reports whether the commitment still has remaining quantity.
func (c Commitment) Open() bool {
	return c.Remaining.IsPositive()
}

// OverDelivery is the part of one delivery that no commitment at the same
// rate could absorb.
type OverDelivery struct {
	Quantity Quantity
	Rate     Rate
	Date     time.Time
}

// Value returns the monetary value of the over-delivered quantity.
func (o OverDelivery) Value() Money {
	return Value(o.Quantity, o.Rate)
}

// RateLevel aggregates both ledgers at a single rate.
type RateLevel struct {
	Rate            Rate
	Committed       Quantity
	Delivered       Quantity
	Matched         Quantity
	Remaining       Quantity
	OverDelivered   Quantity
	CommitmentCount int
	DeliveryCount   int
}
