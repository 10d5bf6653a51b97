package models

import (
	"sort"

	"github.com/shopspring/decimal"

	"deribit-common/internal/errors"
)

// Position is the net holding in one instrument. It is derived from fills
// with PositionFromTrades or decoded from the exchange; it has no mutators.
type Position struct {
	InstrumentName string          `json:"instrument_name"`
	Size           decimal.Decimal `json:"size"`
	Direction      Direction       `json:"direction"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	RealizedPnL    decimal.Decimal `json:"realized_profit_loss"`
	FloatingPnL    decimal.Decimal `json:"floating_profit_loss"`
	MarkPrice      decimal.Decimal `json:"mark_price"`
	IndexPrice     decimal.Decimal `json:"index_price"`
}

// PositionFromTrades replays trades on instrument in timestamp order (trade
// sequence breaks ties) using average cost. Realized PnL is linear and
// excludes fees. Trades for other instruments are rejected.
func PositionFromTrades(instrument string, trades []Trade) (Position, error) {
	ordered := make([]Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Timestamp.Equal(ordered[j].Timestamp) {
			return ordered[i].Timestamp.Before(ordered[j].Timestamp)
		}
		return ordered[i].TradeSeq < ordered[j].TradeSeq
	})

	p := Position{InstrumentName: instrument}
	for _, t := range ordered {
		if t.InstrumentName != instrument {
			return Position{}, errors.NewValidationError(errors.InvalidOrUnsupportedInstrument, "instrument_name", t.InstrumentName,
				"trade "+t.TradeID+" is not for "+instrument)
		}
		sign := t.Direction.Sign()
		if sign == 0 || !t.Amount.IsPositive() {
			return Position{}, errors.NewValidationError(errors.BadArgument, "trade_id", t.TradeID, "trade has no direction or amount")
		}
		p = p.apply(t.Amount.Mul(decimal.NewFromInt(sign)), t.Price)
	}
	p.Direction = directionOf(p.Size)
	return p, nil
}

// apply adds a signed quantity filled at price.
func (p Position) apply(qty, price decimal.Decimal) Position {
	size := p.Size
	switch {
	case size.IsZero() || size.Sign() == qty.Sign():
		total := size.Abs().Add(qty.Abs())
		p.AveragePrice = p.AveragePrice.Mul(size.Abs()).Add(price.Mul(qty.Abs())).Div(total)
		p.Size = size.Add(qty)
	default:
		closed := decimal.Min(size.Abs(), qty.Abs())
		p.RealizedPnL = p.RealizedPnL.Add(closed.Mul(price.Sub(p.AveragePrice)).Mul(decimal.NewFromInt(int64(size.Sign()))))
		p.Size = size.Add(qty)
		switch {
		case p.Size.IsZero():
			p.AveragePrice = decimal.Zero
		case p.Size.Sign() != size.Sign():
			p.AveragePrice = price
		}
	}
	return p
}

func directionOf(size decimal.Decimal) Direction {
	switch size.Sign() {
	case 1:
		return DirectionBuy
	case -1:
		return DirectionSell
	}
	return DirectionZero
}

// UnrealizedPnL returns the linear profit of the open size marked at mark.
func (p Position) UnrealizedPnL(mark decimal.Decimal) decimal.Decimal {
	if p.Size.IsZero() {
		return decimal.Zero
	}
	return mark.Sub(p.AveragePrice).Mul(p.Size)
}

// IsFlat reports whether the position has no open size.
func (p Position) IsFlat() bool {
	return p.Size.IsZero()
}
