package engine

import (
	"github.com/shopspring/decimal"

	"github.com/efreitasn/saudarecon/internal/domain"
)

// RawMetrics compares the two ledgers as plain totals. No matching is
// involved: a surplus at one rate offsets a deficit at another.
func RawMetrics(commitments, deliveries []domain.Entry) domain.RawMetrics {
	committed, committedValue := totals(commitments)
	delivered, deliveredValue := totals(deliveries)

	netQuantity := domain.Round(delivered.Sub(committed))
	netMoney := domain.Round(deliveredValue.Sub(committedValue))

	return domain.RawMetrics{
		TotalCommitted:  domain.Round(committed),
		TotalDelivered:  domain.Round(delivered),
		SimpleRemaining: domain.Round(committed.Sub(delivered)),
		NetQuantity:     netQuantity,
		NetRate:         domain.NetRate(netMoney, netQuantity),
		NetMoney:        netMoney,
	}
}

// OverDeliveryMetrics runs a fresh allocation and summarises only the
// quantity that no commitment absorbed.
func OverDeliveryMetrics(commitments, deliveries []domain.Entry) domain.OverDeliveryMetrics {
	return SummarizeOverDeliveries(Allocate(commitments, deliveries).OverDeliveries)
}

// SummarizeOverDeliveries totals over-delivery records produced by
// Allocate. Money is accumulated unrounded and rounded once at the end.
func SummarizeOverDeliveries(over []domain.OverDelivery) domain.OverDeliveryMetrics {
	quantity, money := decimal.Zero, decimal.Zero
	for _, o := range over {
		quantity = quantity.Add(o.Quantity)
		money = money.Add(o.Value())
	}

	netQuantity := domain.Round(quantity)
	return domain.OverDeliveryMetrics{
		TotalOverQuantity: netQuantity,
		NetQuantity:       netQuantity,
		NetRate:           domain.NetRate(money, netQuantity),
		NetMoney:          domain.Round(money),
	}
}

func totals(entries []domain.Entry) (quantity, value decimal.Decimal) {
	quantity, value = decimal.Zero, decimal.Zero
	for _, e := range entries {
		quantity = quantity.Add(e.Quantity)
		value = value.Add(domain.Value(e.Quantity, e.Rate))
	}
	return quantity, value
}
