package models

import (
	"time"

	"github.com/shopspring/decimal"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Trade is an immutable record of one fill. OrderID references the order
// that generated it.
type Trade struct {
	TradeID        string          `json:"trade_id"`
	OrderID        string          `json:"order_id"`
	InstrumentName string          `json:"instrument_name"`
	Direction      Direction       `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	Price          decimal.Decimal `json:"price"`
	Fee            decimal.Decimal `json:"fee"`
	FeeCurrency    string          `json:"fee_currency"`
	Liquidity      Liquidity       `json:"liquidity"`
	MarkPrice      decimal.Decimal `json:"mark_price"`
	IndexPrice     decimal.Decimal `json:"index_price"`
	TradeSeq       int64           `json:"trade_seq"`
	Label          string          `json:"label,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// TradeDraft is the pre-validation form of a Trade produced by each transport.
type TradeDraft struct {
	TradeID        string          `json:"trade_id" mapstructure:"trade_id" validate:"required"`
	OrderID        string          `json:"order_id" mapstructure:"order_id" validate:"required"`
	InstrumentName string          `json:"instrument_name" mapstructure:"instrument_name" validate:"required"`
	Direction      Direction       `json:"direction" mapstructure:"direction" validate:"required,oneof=buy sell"`
	Amount         decimal.Decimal `json:"amount" mapstructure:"amount"`
	Price          decimal.Decimal `json:"price" mapstructure:"price"`
	Fee            decimal.Decimal `json:"fee" mapstructure:"fee"`
	FeeCurrency    string          `json:"fee_currency" mapstructure:"fee_currency"`
	Liquidity      Liquidity       `json:"liquidity" mapstructure:"liquidity" validate:"omitempty,oneof=M T MT"`
	MarkPrice      decimal.Decimal `json:"mark_price" mapstructure:"mark_price"`
	IndexPrice     decimal.Decimal `json:"index_price" mapstructure:"index_price"`
	TradeSeq       int64           `json:"trade_seq" mapstructure:"trade_seq" validate:"gte=0"`
	Label          string          `json:"label" mapstructure:"label"`
	Timestamp      int64           `json:"timestamp" mapstructure:"timestamp" validate:"gte=0"`
}

// BuildTrade validates draft and converts it into a Trade.
func BuildTrade(draft TradeDraft) (Trade, error) {
	if err := validateDraft(&draft); err != nil {
		return Trade{}, err
	}
	if !draft.Amount.IsPositive() {
		return Trade{}, errors.NewValidationError(errors.InvalidAmount, "amount", draft.Amount.String(), "must be greater than zero")
	}
	if !draft.Price.IsPositive() {
		return Trade{}, errors.NewValidationError(errors.InvalidPrice, "price", draft.Price.String(), "must be greater than zero")
	}
	if draft.FeeCurrency != "" {
		if err := ValidateCurrency(draft.FeeCurrency); err != nil {
			return Trade{}, err
		}
	}

	return Trade{
		TradeID:        draft.TradeID,
		OrderID:        draft.OrderID,
		InstrumentName: draft.InstrumentName,
		Direction:      draft.Direction,
		Amount:         draft.Amount,
		Price:          draft.Price,
		Fee:            draft.Fee,
		FeeCurrency:    draft.FeeCurrency,
		Liquidity:      draft.Liquidity,
		MarkPrice:      draft.MarkPrice,
		IndexPrice:     draft.IndexPrice,
		TradeSeq:       draft.TradeSeq,
		Label:          draft.Label,
		Timestamp:      time.UnixMilli(draft.Timestamp).UTC(),
	}, nil
}

// Notional returns amount times price.
func (t Trade) Notional() decimal.Decimal {
	return t.Amount.Mul(t.Price)
}

// IsMaker reports whether the fill added liquidity.
func (t Trade) IsMaker() bool { return t.Liquidity == LiquidityMaker }

// IsTaker reports whether the fill removed liquidity.
func (t Trade) IsTaker() bool { return t.Liquidity == LiquidityTaker }

// FeePercentage returns the fee as a percentage of notional, or zero for a
// zero notional.
func (t Trade) FeePercentage() decimal.Decimal {
	notional := t.Notional()
	if notional.IsZero() {
		return decimal.Zero
	}
	return t.Fee.Div(notional).Mul(hundred)
}

// Settlement records a settlement, delivery or bankruptcy event for a
// position.
type Settlement struct {
	Type              SettlementType  `json:"type"`
	InstrumentName    string          `json:"instrument_name"`
	Position          decimal.Decimal `json:"position"`
	MarkPrice         decimal.Decimal `json:"mark_price"`
	IndexPrice        decimal.Decimal `json:"index_price"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	SessionProfitLoss decimal.Decimal `json:"session_profit_loss"`
	Funding           decimal.Decimal `json:"funding"`
	Timestamp         time.Time       `json:"timestamp"`
}

// ValidateCurrency checks currency against the supported set.
func ValidateCurrency(currency string) error {
	if !constants.IsSupportedCurrency(currency) {
		return errors.NewValidationError(errors.UnsupportedCurrency, "currency", currency, "unsupported currency")
	}
	return nil
}
