package models

import (
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"deribit-common/internal/errors"
)

// AdvancedType selects how an option order's price is denominated.
type AdvancedType string

const (
	AdvancedUSD   AdvancedType = "usd"
	AdvancedImplV AdvancedType = "implv"
)

// OrderRequest holds the params of a private/buy or private/sell call.
// Direction picks the method and is not sent.
type OrderRequest struct {
	InstrumentName string              `json:"instrument_name" validate:"required"`
	Direction      Direction           `json:"-"`
	Amount         decimal.Decimal     `json:"amount"`
	Type           OrderType           `json:"type" validate:"omitempty,oneof=limit market stop_limit stop_market take_limit take_market market_limit trailing_stop"`
	Label          string              `json:"label" validate:"max=64"`
	Price          decimal.NullDecimal `json:"price"`
	TimeInForce    TimeInForce         `json:"time_in_force" validate:"omitempty,oneof=good_til_cancelled good_til_day fill_or_kill immediate_or_cancel"`
	MaxShow        decimal.NullDecimal `json:"max_show"`
	PostOnly       bool                `json:"post_only"`
	RejectPostOnly bool                `json:"reject_post_only"`
	ReduceOnly     bool                `json:"reduce_only"`
	TriggerPrice   decimal.NullDecimal `json:"trigger_price"`
	TriggerOffset  decimal.NullDecimal `json:"trigger_offset"`
	Trigger        TriggerType         `json:"trigger" validate:"omitempty,oneof=index_price mark_price last_price"`
	Advanced       AdvancedType        `json:"advanced" validate:"omitempty,oneof=usd implv"`
	ValidUntil     int64               `json:"valid_until" validate:"gte=0"`
}

// LimitOrder returns a good-til-cancelled limit order request.
func LimitOrder(instrument string, direction Direction, amount, price decimal.Decimal) OrderRequest {
	return OrderRequest{
		InstrumentName: instrument,
		Direction:      direction,
		Amount:         amount,
		Type:           OrderTypeLimit,
		Price:          decimal.NewNullDecimal(price),
		TimeInForce:    GoodTilCancelled,
	}
}

// MarketOrder returns a market order request.
func MarketOrder(instrument string, direction Direction, amount decimal.Decimal) OrderRequest {
	return OrderRequest{
		InstrumentName: instrument,
		Direction:      direction,
		Amount:         amount,
		Type:           OrderTypeMarket,
	}
}

// Method returns private/buy or private/sell.
func (r OrderRequest) Method() string {
	if r.Direction == DirectionSell {
		return "private/sell"
	}
	return "private/buy"
}

// Validate checks the request against inst. Price and amount go through
// ValidateOrder, so the same limits apply to outgoing and decoded orders.
func (r OrderRequest) Validate(inst Instrument) error {
	if err := validateDraft(&r); err != nil {
		return err
	}
	if r.Direction != DirectionBuy && r.Direction != DirectionSell {
		return errors.NewValidationError(errors.BadArgument, "direction", r.Direction, "must be buy or sell")
	}

	typ := r.Type
	if typ == "" {
		typ = OrderTypeLimit
	}
	switch typ {
	case OrderTypeLimit, OrderTypeStopLimit, OrderTypeTakeLimit:
		if !r.Price.Valid {
			return errors.NewValidationError(errors.InvalidPrice, "price", nil, string(typ)+" orders need a price")
		}
	case OrderTypeMarket, OrderTypeStopMarket, OrderTypeTakeMarket:
		if r.Price.Valid {
			return errors.NewValidationError(errors.InvalidPrice, "price", r.Price.Decimal.String(), string(typ)+" orders take no price")
		}
	}
	if err := checkTrigger(typ, r.TriggerPrice, r.TriggerOffset, r.Trigger); err != nil {
		return err
	}
	if r.PostOnly && (typ == OrderTypeMarket || r.TimeInForce == ImmediateOrCancel || r.TimeInForce == FillOrKill) {
		return errors.NewValidationError(errors.InvalidArguments, "post_only", true, "post_only needs a resting limit order")
	}
	if r.MaxShow.Valid && r.MaxShow.Decimal.IsNegative() {
		return errors.NewValidationError(errors.InvalidAmount, "max_show", r.MaxShow.Decimal.String(), "must not be negative")
	}

	return ValidateOrder(Order{
		InstrumentName: r.InstrumentName,
		Direction:      r.Direction,
		Type:           typ,
		TimeInForce:    r.TimeInForce,
		Price:          r.Price,
		Amount:         r.Amount,
		PostOnly:       r.PostOnly,
		ReduceOnly:     r.ReduceOnly,
	}, inst)
}

func checkTrigger(typ OrderType, price, offset decimal.NullDecimal, trigger TriggerType) error {
	if !typ.IsTriggered() {
		if price.Valid || offset.Valid || trigger != "" {
			return errors.NewValidationError(errors.InvalidArguments, "trigger", trigger, string(typ)+" orders take no trigger")
		}
		return nil
	}
	if trigger == "" {
		return errors.NewValidationError(errors.InvalidArguments, "trigger", "", string(typ)+" orders need a trigger")
	}
	if typ == OrderTypeTrailingStop {
		if !offset.Valid || !offset.Decimal.IsPositive() {
			return errors.NewValidationError(errors.InvalidArguments, "trigger_offset", offset, "trailing stops need a positive trigger offset")
		}
		return nil
	}
	if !price.Valid || !price.Decimal.IsPositive() {
		return errors.NewValidationError(errors.InvalidPrice, "trigger_price", price, string(typ)+" orders need a positive trigger price")
	}
	return nil
}

// MarshalJSON encodes decimals as JSON numbers and leaves out unset fields.
func (r OrderRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		InstrumentName string       `json:"instrument_name"`
		Amount         json.Number  `json:"amount"`
		Type           OrderType    `json:"type,omitempty"`
		Label          string       `json:"label,omitempty"`
		Price          json.Number  `json:"price,omitempty"`
		TimeInForce    TimeInForce  `json:"time_in_force,omitempty"`
		MaxShow        json.Number  `json:"max_show,omitempty"`
		PostOnly       bool         `json:"post_only,omitempty"`
		RejectPostOnly bool         `json:"reject_post_only,omitempty"`
		ReduceOnly     bool         `json:"reduce_only,omitempty"`
		TriggerPrice   json.Number  `json:"trigger_price,omitempty"`
		TriggerOffset  json.Number  `json:"trigger_offset,omitempty"`
		Trigger        TriggerType  `json:"trigger,omitempty"`
		Advanced       AdvancedType `json:"advanced,omitempty"`
		ValidUntil     int64        `json:"valid_until,omitempty"`
	}{
		InstrumentName: r.InstrumentName,
		Amount:         number(r.Amount),
		Type:           r.Type,
		Label:          r.Label,
		Price:          optNumber(r.Price),
		TimeInForce:    r.TimeInForce,
		MaxShow:        optNumber(r.MaxShow),
		PostOnly:       r.PostOnly,
		RejectPostOnly: r.RejectPostOnly,
		ReduceOnly:     r.ReduceOnly,
		TriggerPrice:   optNumber(r.TriggerPrice),
		TriggerOffset:  optNumber(r.TriggerOffset),
		Trigger:        r.Trigger,
		Advanced:       r.Advanced,
		ValidUntil:     r.ValidUntil,
	})
}

// EditRequest holds the params of private/edit.
type EditRequest struct {
	OrderID      string              `json:"order_id" validate:"required"`
	Amount       decimal.Decimal     `json:"amount"`
	Price        decimal.NullDecimal `json:"price"`
	TriggerPrice decimal.NullDecimal `json:"trigger_price"`
	PostOnly     bool                `json:"post_only"`
	ReduceOnly   bool                `json:"reduce_only"`
	Advanced     AdvancedType        `json:"advanced" validate:"omitempty,oneof=usd implv"`
	ValidUntil   int64               `json:"valid_until" validate:"gte=0"`
}

// Method returns private/edit.
func (r EditRequest) Method() string { return "private/edit" }

// Validate checks the edit. The exchange checks it against the live order.
func (r EditRequest) Validate() error {
	if err := validateDraft(&r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return errors.NewValidationError(errors.InvalidAmount, "amount", r.Amount.String(), "must be greater than zero")
	}
	if r.Price.Valid && !r.Price.Decimal.IsPositive() {
		return errors.NewValidationError(errors.InvalidPrice, "price", r.Price.Decimal.String(), "must be greater than zero")
	}
	if r.TriggerPrice.Valid && !r.TriggerPrice.Decimal.IsPositive() {
		return errors.NewValidationError(errors.InvalidPrice, "trigger_price", r.TriggerPrice.Decimal.String(), "must be greater than zero")
	}
	return nil
}

// MarshalJSON encodes decimals as JSON numbers and leaves out unset fields.
func (r EditRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		OrderID      string       `json:"order_id"`
		Amount       json.Number  `json:"amount"`
		Price        json.Number  `json:"price,omitempty"`
		TriggerPrice json.Number  `json:"trigger_price,omitempty"`
		PostOnly     bool         `json:"post_only,omitempty"`
		ReduceOnly   bool         `json:"reduce_only,omitempty"`
		Advanced     AdvancedType `json:"advanced,omitempty"`
		ValidUntil   int64        `json:"valid_until,omitempty"`
	}{
		OrderID:      r.OrderID,
		Amount:       number(r.Amount),
		Price:        optNumber(r.Price),
		TriggerPrice: optNumber(r.TriggerPrice),
		PostOnly:     r.PostOnly,
		ReduceOnly:   r.ReduceOnly,
		Advanced:     r.Advanced,
		ValidUntil:   r.ValidUntil,
	})
}

// CancelRequest holds the params of private/cancel.
type CancelRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// Method returns private/cancel.
func (r CancelRequest) Method() string { return "private/cancel" }

// Validate checks that an order id is set.
func (r CancelRequest) Validate() error {
	return validateDraft(&r)
}

// CancelAllRequest cancels every open order, or those of one instrument or
// one currency. Kind and Type narrow the set further.
type CancelAllRequest struct {
	InstrumentName string         `json:"instrument_name,omitempty"`
	Currency       string         `json:"currency,omitempty"`
	Kind           InstrumentKind `json:"kind,omitempty" validate:"omitempty,oneof=future option spot future_combo option_combo any"`
	Type           string         `json:"type,omitempty" validate:"omitempty,oneof=all limit trigger_all stop take trailing_stop"`
}

// Method picks the cancel_all variant for the filters set.
func (r CancelAllRequest) Method() string {
	switch {
	case r.InstrumentName != "":
		return "private/cancel_all_by_instrument"
	case r.Currency != "":
		return "private/cancel_all_by_currency"
	}
	return "private/cancel_all"
}

// Validate rejects conflicting filters and unsupported currencies.
func (r CancelAllRequest) Validate() error {
	if err := validateDraft(&r); err != nil {
		return err
	}
	if r.InstrumentName != "" && r.Currency != "" {
		return errors.NewValidationError(errors.InvalidArguments, "currency", r.Currency, "set either instrument_name or currency")
	}
	if r.Currency != "" {
		return ValidateCurrency(r.Currency)
	}
	if r.InstrumentName == "" && (r.Kind != "" || r.Type != "") {
		return errors.NewValidationError(errors.InvalidArguments, "kind", r.Kind, "filters need an instrument or currency")
	}
	return nil
}

// ClosePositionRequest holds the params of private/close_position.
type ClosePositionRequest struct {
	InstrumentName string              `json:"instrument_name" validate:"required"`
	Type           OrderType           `json:"type" validate:"required,oneof=limit market"`
	Price          decimal.NullDecimal `json:"price"`
}

// Method returns private/close_position.
func (r ClosePositionRequest) Method() string { return "private/close_position" }

// Validate requires a positive price for limit closes and none for market.
func (r ClosePositionRequest) Validate() error {
	if err := validateDraft(&r); err != nil {
		return err
	}
	if r.Type == OrderTypeLimit && (!r.Price.Valid || !r.Price.Decimal.IsPositive()) {
		return errors.NewValidationError(errors.InvalidPrice, "price", r.Price, "limit close needs a positive price")
	}
	if r.Type == OrderTypeMarket && r.Price.Valid {
		return errors.NewValidationError(errors.InvalidPrice, "price", r.Price.Decimal.String(), "market close takes no price")
	}
	return nil
}

// MarshalJSON encodes the price as a JSON number.
func (r ClosePositionRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		InstrumentName string      `json:"instrument_name"`
		Type           OrderType   `json:"type"`
		Price          json.Number `json:"price,omitempty"`
	}{r.InstrumentName, r.Type, optNumber(r.Price)})
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func optNumber(d decimal.NullDecimal) json.Number {
	if !d.Valid {
		return ""
	}
	return number(d.Decimal)
}
