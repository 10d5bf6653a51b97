package models

import (
	"time"

	"github.com/shopspring/decimal"

	"deribit-common/internal/constants"
	"deribit-common/internal/errors"
	"deribit-common/pkg/utils"
)

// Instrument represents a tradeable contract. Build one with NewInstrument;
// the zero value is not usable.
type Instrument struct {
	Name               string              `json:"instrument_name"`
	Kind               InstrumentKind      `json:"kind"`
	BaseCurrency       string              `json:"base_currency"`
	QuoteCurrency      string              `json:"quote_currency"`
	SettlementCurrency string              `json:"settlement_currency"`
	PricePrecision     int32               `json:"price_precision"`
	AmountPrecision    int32               `json:"amount_precision"`
	TickSize           decimal.Decimal     `json:"tick_size"`
	MinOrderSize       decimal.Decimal     `json:"min_trade_amount"`
	MaxOrderSize       decimal.Decimal     `json:"max_order_size"`
	ContractSize       decimal.Decimal     `json:"contract_size"`
	OptionType         OptionType          `json:"option_type,omitempty"`
	Strike             decimal.NullDecimal `json:"strike"`
	Expiration         time.Time           `json:"expiration"`
	IsActive           bool                `json:"is_active"`
	MakerCommission    decimal.Decimal     `json:"maker_commission"`
	TakerCommission    decimal.Decimal     `json:"taker_commission"`
}

// InstrumentSpec carries unvalidated instrument metadata as received from the
// exchange or from configuration.
type InstrumentSpec Instrument

// NewInstrument validates spec and returns the instrument it describes.
// A missing base currency is taken from the name, and a zero maximum order
// size falls back to the currency limit.
func NewInstrument(spec InstrumentSpec) (Instrument, error) {
	inst := Instrument(spec)

	if err := utils.ValidateInstrumentName(inst.Name); err != nil {
		return Instrument{}, errors.NewValidationError(errors.InvalidOrUnsupportedInstrument, "instrument_name", inst.Name, err.Error())
	}
	if inst.BaseCurrency == "" {
		inst.BaseCurrency = utils.CurrencyFromInstrumentName(inst.Name)
	}
	if !constants.IsSupportedCurrency(inst.BaseCurrency) {
		return Instrument{}, errors.NewValidationError(errors.UnsupportedCurrency, "base_currency", inst.BaseCurrency, "unsupported currency")
	}

	switch inst.Kind {
	case KindFuture, KindPerpetual, KindSpot, KindFutureCombo, KindOptionCombo:
	case KindOption:
		if inst.OptionType != OptionCall && inst.OptionType != OptionPut {
			return Instrument{}, errors.NewValidationError(errors.InvalidArguments, "option_type", inst.OptionType, "option must be call or put")
		}
		if !inst.Strike.Valid || !inst.Strike.Decimal.IsPositive() {
			return Instrument{}, errors.NewValidationError(errors.InvalidArguments, "strike", inst.Strike, "option strike must be positive")
		}
	default:
		return Instrument{}, errors.NewValidationError(errors.InvalidArguments, "kind", inst.Kind, "unknown instrument kind")
	}

	if inst.PricePrecision < 0 {
		return Instrument{}, errors.NewValidationError(errors.InvalidArguments, "price_precision", inst.PricePrecision, "must not be negative")
	}
	if inst.AmountPrecision < 0 {
		return Instrument{}, errors.NewValidationError(errors.InvalidArguments, "amount_precision", inst.AmountPrecision, "must not be negative")
	}
	if inst.TickSize.IsNegative() {
		return Instrument{}, errors.NewValidationError(errors.InvalidArguments, "tick_size", inst.TickSize, "must not be negative")
	}
	if inst.MaxOrderSize.IsZero() {
		inst.MaxOrderSize = constants.MaxOrderAmount(inst.BaseCurrency)
	}
	if inst.MinOrderSize.IsNegative() {
		return Instrument{}, errors.NewValidationError(errors.InvalidAmount, "min_trade_amount", inst.MinOrderSize, "must not be negative")
	}
	if inst.MinOrderSize.GreaterThan(inst.MaxOrderSize) {
		return Instrument{}, errors.NewValidationError(errors.InvalidAmount, "min_trade_amount", inst.MinOrderSize, "exceeds max order size "+inst.MaxOrderSize.String())
	}

	return inst, nil
}

// IsPerpetual reports whether the instrument never expires.
func (i Instrument) IsPerpetual() bool { return i.Kind == KindPerpetual }

// IsOption reports whether the instrument is an option.
func (i Instrument) IsOption() bool { return i.Kind == KindOption }

// IsFuture reports whether the instrument is a dated future.
func (i Instrument) IsFuture() bool { return i.Kind == KindFuture }

// IsSpot reports whether the instrument is a spot pair.
func (i Instrument) IsSpot() bool { return i.Kind == KindSpot }

// OrderLimits returns the effective amount bounds for orders on i: the
// tighter of the instrument's own limits and its currency's limits. An
// instrument not built by NewInstrument may carry an unknown currency; BTC
// limits apply to it. A zero instrument maximum means no instrument limit.
func (i Instrument) OrderLimits() (minSize, maxSize decimal.Decimal) {
	minSize = decimal.Max(i.MinOrderSize, constants.MinOrderAmount(i.BaseCurrency))
	maxSize = constants.MaxOrderAmount(i.BaseCurrency)
	if i.MaxOrderSize.IsPositive() {
		maxSize = decimal.Min(maxSize, i.MaxOrderSize)
	}
	return minSize, maxSize
}

// FormatPrice renders price at the instrument's price precision, truncating
// excess digits.
func (i Instrument) FormatPrice(price decimal.Decimal) string {
	return utils.FormatDecimal(price, i.PricePrecision)
}

// FormatAmount renders amount at the instrument's amount precision,
// truncating excess digits.
func (i Instrument) FormatAmount(amount decimal.Decimal) string {
	return utils.FormatDecimal(amount, i.AmountPrecision)
}

// ParseDecimal parses a wire decimal string exactly.
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := utils.ParseDecimal(s)
	if err != nil {
		return decimal.Zero, errors.NewValidationError(errors.BadArgument, "decimal", s, err.Error())
	}
	return d, nil
}
