package models

import (
	"time"

	"github.com/shopspring/decimal"

	"deribit-common/internal/errors"
)

// Order represents a trading order and its exchange-assigned state.
// InstrumentName references an Instrument by name only.
type Order struct {
	OrderID        string              `json:"order_id"`
	Label          string              `json:"label,omitempty"`
	InstrumentName string              `json:"instrument_name"`
	Direction      Direction           `json:"direction"`
	Type           OrderType           `json:"order_type"`
	TimeInForce    TimeInForce         `json:"time_in_force"`
	Price          decimal.NullDecimal `json:"price"`
	TriggerPrice   decimal.NullDecimal `json:"trigger_price"`
	Trigger        TriggerType         `json:"trigger,omitempty"`
	Amount         decimal.Decimal     `json:"amount"`
	FilledAmount   decimal.Decimal     `json:"filled_amount"`
	AveragePrice   decimal.Decimal     `json:"average_price"`
	State          OrderState          `json:"order_state"`
	PostOnly       bool                `json:"post_only"`
	ReduceOnly     bool                `json:"reduce_only"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// OrderDraft is the pre-validation form every transport decoder produces.
// BuildOrder is the only way from a draft to an Order.
type OrderDraft struct {
	OrderID             string              `json:"order_id" mapstructure:"order_id" validate:"required"`
	Label               string              `json:"label" mapstructure:"label"`
	InstrumentName      string              `json:"instrument_name" mapstructure:"instrument_name" validate:"required"`
	Direction           Direction           `json:"direction" mapstructure:"direction" validate:"required,oneof=buy sell"`
	OrderType           OrderType           `json:"order_type" mapstructure:"order_type" validate:"required,oneof=limit market stop_limit stop_market take_limit take_market market_limit trailing_stop"`
	TimeInForce         TimeInForce         `json:"time_in_force" mapstructure:"time_in_force" validate:"omitempty,oneof=good_til_cancelled good_til_day fill_or_kill immediate_or_cancel"`
	Price               decimal.NullDecimal `json:"price" mapstructure:"price"`
	TriggerPrice        decimal.NullDecimal `json:"trigger_price" mapstructure:"trigger_price"`
	Trigger             TriggerType         `json:"trigger" mapstructure:"trigger" validate:"omitempty,oneof=index_price mark_price last_price"`
	Amount              decimal.Decimal     `json:"amount" mapstructure:"amount"`
	FilledAmount        decimal.Decimal     `json:"filled_amount" mapstructure:"filled_amount"`
	AveragePrice        decimal.Decimal     `json:"average_price" mapstructure:"average_price"`
	OrderState          OrderState          `json:"order_state" mapstructure:"order_state" validate:"required,oneof=open filled cancelled rejected untriggered triggered"`
	PostOnly            bool                `json:"post_only" mapstructure:"post_only"`
	ReduceOnly          bool                `json:"reduce_only" mapstructure:"reduce_only"`
	CreationTimestamp   int64               `json:"creation_timestamp" mapstructure:"creation_timestamp" validate:"gte=0"`
	LastUpdateTimestamp int64               `json:"last_update_timestamp" mapstructure:"last_update_timestamp" validate:"gte=0"`
}

// BuildOrder validates draft and converts it into an Order. Timestamps are
// epoch milliseconds; a missing update time defaults to the creation time and
// a missing time in force to good_til_cancelled.
func BuildOrder(draft OrderDraft) (Order, error) {
	if err := validateDraft(&draft); err != nil {
		return Order{}, err
	}
	if !draft.Amount.IsPositive() {
		return Order{}, errors.NewValidationError(errors.InvalidAmount, "amount", draft.Amount.String(), "must be greater than zero")
	}
	if draft.Price.Valid && !draft.Price.Decimal.IsPositive() {
		return Order{}, errors.NewValidationError(errors.InvalidPrice, "price", draft.Price.Decimal.String(), "must be greater than zero")
	}
	if draft.TriggerPrice.Valid {
		if !draft.TriggerPrice.Decimal.IsPositive() {
			return Order{}, errors.NewValidationError(errors.InvalidPrice, "trigger_price", draft.TriggerPrice.Decimal.String(), "must be greater than zero")
		}
		if !draft.OrderType.IsTriggered() {
			return Order{}, errors.NewValidationError(errors.InvalidArguments, "trigger_price", draft.TriggerPrice.Decimal.String(), string(draft.OrderType)+" orders take no trigger price")
		}
	}
	if draft.FilledAmount.IsNegative() || draft.FilledAmount.GreaterThan(draft.Amount) {
		return Order{}, errors.NewValidationError(errors.InvalidAmount, "filled_amount", draft.FilledAmount.String(), "must be within [0, amount]")
	}
	if draft.AveragePrice.IsNegative() {
		return Order{}, errors.NewValidationError(errors.InvalidPrice, "average_price", draft.AveragePrice.String(), "must not be negative")
	}

	tif := draft.TimeInForce
	if tif == "" {
		tif = GoodTilCancelled
	}
	updated := draft.LastUpdateTimestamp
	if updated == 0 {
		updated = draft.CreationTimestamp
	}

	return Order{
		OrderID:        draft.OrderID,
		Label:          draft.Label,
		InstrumentName: draft.InstrumentName,
		Direction:      draft.Direction,
		Type:           draft.OrderType,
		TimeInForce:    tif,
		Price:          draft.Price,
		TriggerPrice:   draft.TriggerPrice,
		Trigger:        draft.Trigger,
		Amount:         draft.Amount,
		FilledAmount:   draft.FilledAmount,
		AveragePrice:   draft.AveragePrice,
		State:          draft.OrderState,
		PostOnly:       draft.PostOnly,
		ReduceOnly:     draft.ReduceOnly,
		CreatedAt:      time.UnixMilli(draft.CreationTimestamp).UTC(),
		UpdatedAt:      time.UnixMilli(updated).UTC(),
	}, nil
}

// IsTerminal reports whether the order is filled, cancelled or rejected.
func (o Order) IsTerminal() bool {
	return o.State.IsTerminal()
}

// RemainingAmount returns the unfilled part of the order.
func (o Order) RemainingAmount() decimal.Decimal {
	return o.Amount.Sub(o.FilledAmount)
}

// Fill returns the order after a fill of amount at price. The average price is
// volume weighted; the order becomes filled once nothing remains.
func (o Order) Fill(amount, price decimal.Decimal, at time.Time) (Order, error) {
	if err := o.checkLive("fill"); err != nil {
		return Order{}, err
	}
	if o.State == OrderStateUntriggered {
		return Order{}, errors.NewOrderError(errors.NotOpenOrder, o.OrderID, "fill", "order has not been triggered")
	}
	if !amount.IsPositive() {
		return Order{}, errors.NewValidationError(errors.InvalidAmount, "amount", amount.String(), "fill amount must be greater than zero")
	}
	if !price.IsPositive() {
		return Order{}, errors.NewValidationError(errors.InvalidPrice, "price", price.String(), "fill price must be greater than zero")
	}
	if amount.GreaterThan(o.RemainingAmount()) {
		return Order{}, errors.NewOrderError(errors.InvalidAmount, o.OrderID, "fill", "fill exceeds remaining amount "+o.RemainingAmount().String())
	}

	filled := o.FilledAmount.Add(amount)
	o.AveragePrice = o.AveragePrice.Mul(o.FilledAmount).Add(price.Mul(amount)).Div(filled)
	o.FilledAmount = filled
	o.State = OrderStateOpen
	if filled.Equal(o.Amount) {
		o.State = OrderStateFilled
	}
	o.UpdatedAt = at.UTC()
	return o, nil
}

// Cancel returns the order cancelled at at.
func (o Order) Cancel(at time.Time) (Order, error) {
	if err := o.checkLive("cancel"); err != nil {
		return Order{}, err
	}
	o.State = OrderStateCancelled
	o.UpdatedAt = at.UTC()
	return o, nil
}

// Reject returns the order rejected at at.
func (o Order) Reject(at time.Time) (Order, error) {
	if err := o.checkLive("reject"); err != nil {
		return Order{}, err
	}
	o.State = OrderStateRejected
	o.UpdatedAt = at.UTC()
	return o, nil
}

// Trigger returns an untriggered order after its trigger price was hit.
func (o Order) Trigger(at time.Time) (Order, error) {
	if err := o.checkLive("trigger"); err != nil {
		return Order{}, err
	}
	if o.State != OrderStateUntriggered {
		return Order{}, errors.NewOrderError(errors.NotOpenOrder, o.OrderID, "trigger", "order is "+string(o.State))
	}
	o.State = OrderStateTriggered
	o.UpdatedAt = at.UTC()
	return o, nil
}

func (o Order) checkLive(action string) error {
	switch o.State {
	case OrderStateFilled:
		return errors.NewOrderError(errors.AlreadyFilled, o.OrderID, action, "order is filled")
	case OrderStateCancelled, OrderStateRejected:
		return errors.NewOrderError(errors.AlreadyClosed, o.OrderID, action, "order is "+string(o.State))
	}
	return nil
}
