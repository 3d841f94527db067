package domain

import "time"

// Report is the complete result of one reconciliation run. It carries the
// validated inputs alongside every derived figure so exporters never need
// to recompute anything.
type Report struct {
	ID             string
	Party          string
	CreatedAt      time.Time
	Sauda          []Entry
	Deliveries     []Entry
	Rejected       []RejectedEntry
	Commitments    []Commitment
	OverDeliveries []OverDelivery
	Levels         []RateLevel
	Raw            RawMetrics
	Over           OverDeliveryMetrics
}

// OpenCommitments counts commitments with quantity still outstanding.
func (r *Report) OpenCommitments() int {
	n := 0
	for _, c := range r.Commitments {
		if c.Open() {
			n++
		}
	}
	return n
}
