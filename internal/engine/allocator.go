package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// Allocation is the result of matching deliveries against commitments.
type Allocation struct {
	Commitments    []domain.Commitment   // same order as the input commitments
	OverDeliveries []domain.OverDelivery // one per overflowing delivery, in delivery order
	Levels         []domain.RateLevel    // rate ascending
}

// Allocate fills commitments from deliveries.
//
// Deliveries are processed in the order given. Each delivery is absorbed
// by open commitments quoted at exactly the same rate, earliest-listed
// first, and any quantity left over is recorded as one over-delivery for
// that delivery. Quantity never moves across rates.
//
// Neither input slice is modified; every call builds its own commitment
// values, so results can be shared between callers freely. Entries are
// expected to carry positive quantities and rates. A non-positive
// commitment is treated as already exhausted.
func Allocate(commitments, deliveries []domain.Entry) Allocation {
	out := make([]domain.Commitment, len(commitments))
	book := NewRateBook()
	for i, e := range commitments {
		out[i] = domain.Commitment{Entry: e, Remaining: e.Quantity}
		book.AddCommitment(i, e)
	}

	var over []domain.OverDelivery
	for _, d := range deliveries {
		b := book.bucket(d.Rate)
		b.deliveries++
		b.delivered = b.delivered.Add(d.Quantity)

		left := d.Quantity
		for left.IsPositive() && b.head < len(b.queue) {
			c := &out[b.queue[b.head]]
			if !c.Remaining.IsPositive() {
				b.head++
				continue
			}

			use := decimal.Min(c.Remaining, left)
			c.Remaining = c.Remaining.Sub(use)
			left = left.Sub(use)
			c.LastDeliveryDate = later(c.LastDeliveryDate, d.Date)

			if !c.Remaining.IsPositive() {
				b.head++
			}
		}

		if left.IsPositive() {
			b.overDelivered = b.overDelivered.Add(left)
			over = append(over, domain.OverDelivery{
				Quantity: left,
				Rate:     d.Rate,
				Date:     d.Date,
			})
		}
	}

	return Allocation{
		Commitments:    out,
		OverDeliveries: over,
		Levels:         book.Levels(),
	}
}

// later returns the later of current and t as a fresh pointer.
func later(current *time.Time, t time.Time) *time.Time {
	if current != nil && !t.After(*current) {
		return current
	}
	return &t
}
