package engine

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// rateBucket holds every commitment quoted at one rate, in listing order,
// together with the running totals reported on the rate ladder.
type rateBucket struct {
	rate decimal.Decimal

	// queue holds indices into the allocation's commitment slice. head is
	// the first index whose commitment may still be open: FIFO filling
	// exhausts commitments strictly in queue order, so everything before
	// head is fully delivered.
	queue []int
	head  int

	committed     decimal.Decimal
	delivered     decimal.Decimal
	overDelivered decimal.Decimal
	deliveries    int
}

func rateLess(a, b *rateBucket) bool {
	return a.rate.LessThan(b.rate)
}

// RateBook indexes commitments by exact rate using a B-tree, so buckets can
// be looked up per delivery and walked in ascending rate order for the
// ladder.
type RateBook struct {
	buckets *btree.BTreeG[*rateBucket]
}

// NewRateBook creates an empty RateBook.
func NewRateBook() *RateBook {
	const degree = 16
	return &RateBook{
		buckets: btree.NewG[*rateBucket](degree, rateLess),
	}
}

// bucket returns the bucket for rate, creating an empty one if needed.
// Rates compare by value, so 10 and 10.00 share a bucket.
func (rb *RateBook) bucket(rate decimal.Decimal) *rateBucket {
	if b, ok := rb.buckets.Get(&rateBucket{rate: rate}); ok {
		return b
	}
	b := &rateBucket{rate: rate}
	rb.buckets.ReplaceOrInsert(b)
	return b
}

// AddCommitment appends commitment idx to the back of its rate's queue.
func (rb *RateBook) AddCommitment(idx int, e domain.Entry) {
	b := rb.bucket(e.Rate)
	b.queue = append(b.queue, idx)
	b.committed = b.committed.Add(e.Quantity)
}

// Len returns the number of distinct rates in the book.
func (rb *RateBook) Len() int {
	return rb.buckets.Len()
}

// Levels aggregates every rate into a ladder ordered by rate ascending.
func (rb *RateBook) Levels() []domain.RateLevel {
	levels := make([]domain.RateLevel, 0, rb.buckets.Len())
	rb.buckets.Ascend(func(b *rateBucket) bool {
		matched := b.delivered.Sub(b.overDelivered)
		levels = append(levels, domain.RateLevel{
			Rate:            b.rate,
			Committed:       domain.Round(b.committed),
			Delivered:       domain.Round(b.delivered),
			Matched:         domain.Round(matched),
			Remaining:       domain.Round(b.committed.Sub(matched)),
			OverDelivered:   domain.Round(b.overDelivered),
			CommitmentCount: len(b.queue),
			DeliveryCount:   b.deliveries,
		})
		return true
	})
	return levels
}
