package domain

// Position is the buy/sell bias implied by a net quantity.
type Position string

const (
	PositionNone Position = ""
	PositionSell Position = "Sell"
	PositionBuy  Position = "Buy"
)

// Outcome is the profit/loss verdict implied by a net monetary value.
type Outcome string

const (
	OutcomeNone   Outcome = ""
	OutcomeProfit Outcome = "Profit"
	OutcomeLoss   Outcome = "Loss"
)

// PositionOf labels a net quantity: positive is a net seller, negative a
// net buyer, zero carries no label.
func PositionOf(netQuantity Quantity) Position {
	switch netQuantity.Sign() {
	case 1:
		return PositionSell
	case -1:
		return PositionBuy
	}
	return PositionNone
}

// OutcomeOf labels a net monetary value.
func OutcomeOf(netMoney Money) Outcome {
	switch netMoney.Sign() {
	case 1:
		return OutcomeProfit
	case -1:
		return OutcomeLoss
	}
	return OutcomeNone
}

// RawMetrics summarises both ledgers as plain aggregates, without any
// per-rate matching.
type RawMetrics struct {
	TotalCommitted  Quantity
	TotalDelivered  Quantity
	SimpleRemaining Quantity // committed − delivered
	NetQuantity     Quantity // delivered − committed
	NetRate         Rate
	NetMoney        Money
}

func (m RawMetrics) Position() Position { return PositionOf(m.NetQuantity) }
func (m RawMetrics) Outcome() Outcome   { return OutcomeOf(m.NetMoney) }

// OverDeliveryMetrics summarises only the over-delivered quantity.
type OverDeliveryMetrics struct {
	TotalOverQuantity Quantity
	NetQuantity       Quantity
	NetRate           Rate
	NetMoney          Money
}

func (m OverDeliveryMetrics) Position() Position { return PositionOf(m.NetQuantity) }
func (m OverDeliveryMetrics) Outcome() Outcome   { return OutcomeOf(m.NetMoney) }
