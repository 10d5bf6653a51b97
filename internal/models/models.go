// Package models provides the transport-agnostic domain models shared by the
// FIX, REST and WebSocket clients.
//
// Values are plain structs referencing each other by name or id only. State
// changes go through transition methods that return a new value.
package models

// Direction represents the side of an order or trade.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
	// DirectionZero is only reported for flat positions.
	DirectionZero Direction = "zero"
)

// Sign returns 1 for buy, -1 for sell and 0 otherwise.
func (d Direction) Sign() int64 {
	switch d {
	case DirectionBuy:
		return 1
	case DirectionSell:
		return -1
	}
	return 0
}

// OrderType represents the type of an order.
type OrderType string

const (
	OrderTypeLimit        OrderType = "limit"
	OrderTypeMarket       OrderType = "market"
	OrderTypeStopLimit    OrderType = "stop_limit"
	OrderTypeStopMarket   OrderType = "stop_market"
	OrderTypeTakeLimit    OrderType = "take_limit"
	OrderTypeTakeMarket   OrderType = "take_market"
	OrderTypeMarketLimit  OrderType = "market_limit"
	OrderTypeTrailingStop OrderType = "trailing_stop"
)

// IsTriggered reports whether orders of this type wait for a trigger price.
func (t OrderType) IsTriggered() bool {
	switch t {
	case OrderTypeStopLimit, OrderTypeStopMarket, OrderTypeTakeLimit, OrderTypeTakeMarket, OrderTypeTrailingStop:
		return true
	}
	return false
}

// TriggerType is the price a trigger order watches.
type TriggerType string

const (
	TriggerIndexPrice TriggerType = "index_price"
	TriggerMarkPrice  TriggerType = "mark_price"
	TriggerLastPrice  TriggerType = "last_price"
)

// TimeInForce represents how long an order stays on the book.
type TimeInForce string

const (
	GoodTilCancelled  TimeInForce = "good_til_cancelled"
	GoodTilDay        TimeInForce = "good_til_day"
	FillOrKill        TimeInForce = "fill_or_kill"
	ImmediateOrCancel TimeInForce = "immediate_or_cancel"
)

// OrderState represents the lifecycle state of an order.
type OrderState string

const (
	OrderStateOpen        OrderState = "open"
	OrderStateFilled      OrderState = "filled"
	OrderStateCancelled   OrderState = "cancelled"
	OrderStateRejected    OrderState = "rejected"
	OrderStateUntriggered OrderState = "untriggered"
	OrderStateTriggered   OrderState = "triggered"
)

// IsTerminal reports whether no further transition is possible.
func (s OrderState) IsTerminal() bool {
	return s == OrderStateFilled || s == OrderStateCancelled || s == OrderStateRejected
}

// InstrumentKind classifies instruments.
type InstrumentKind string

const (
	KindFuture      InstrumentKind = "future"
	KindOption      InstrumentKind = "option"
	KindPerpetual   InstrumentKind = "perpetual"
	KindSpot        InstrumentKind = "spot"
	KindFutureCombo InstrumentKind = "future_combo"
	KindOptionCombo InstrumentKind = "option_combo"
)

// OptionType is call or put.
type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// Liquidity tells whether a fill added or removed liquidity.
type Liquidity string

const (
	LiquidityMaker Liquidity = "M"
	LiquidityTaker Liquidity = "T"
	LiquidityMixed Liquidity = "MT"
)

// SettlementType represents the kind of settlement event.
type SettlementType string

const (
	SettlementTypeSettlement SettlementType = "settlement"
	SettlementTypeDelivery   SettlementType = "delivery"
	SettlementTypeBankruptcy SettlementType = "bankruptcy"
)

// TransferState represents the lifecycle state of a transfer.
type TransferState string

const (
	TransferPrepared          TransferState = "prepared"
	TransferConfirmed         TransferState = "confirmed"
	TransferCancelled         TransferState = "cancelled"
	TransferWaitingForAdmin   TransferState = "waiting_for_admin"
	TransferInsufficientFunds TransferState = "insufficient_funds"
	TransferWithdrawalLimit   TransferState = "withdrawal_limit"
)
