package models

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"deribit-common/internal/errors"
)

var two = decimal.NewFromInt(2)

// Ticker is a market data snapshot for one instrument. Each update replaces
// the previous snapshot. Option fields are zero and Greeks nil for other
// instruments.
type Ticker struct {
	InstrumentName         string          `json:"instrument_name"`
	State                  string          `json:"state"`
	Timestamp              time.Time       `json:"timestamp"`
	LastPrice              decimal.Decimal `json:"last_price"`
	MarkPrice              decimal.Decimal `json:"mark_price"`
	IndexPrice             decimal.Decimal `json:"index_price"`
	MinPrice               decimal.Decimal `json:"min_price"`
	MaxPrice               decimal.Decimal `json:"max_price"`
	BestBidPrice           decimal.Decimal `json:"best_bid_price"`
	BestBidAmount          decimal.Decimal `json:"best_bid_amount"`
	BestAskPrice           decimal.Decimal `json:"best_ask_price"`
	BestAskAmount          decimal.Decimal `json:"best_ask_amount"`
	OpenInterest           decimal.Decimal `json:"open_interest"`
	Volume24h              decimal.Decimal `json:"volume"`
	VolumeUSD24h           decimal.Decimal `json:"volume_usd"`
	PriceChange24h         decimal.Decimal `json:"price_change"`
	High24h                decimal.Decimal `json:"high"`
	Low24h                 decimal.Decimal `json:"low"`
	SettlementPrice        decimal.Decimal `json:"settlement_price"`
	EstimatedDeliveryPrice decimal.Decimal `json:"estimated_delivery_price"`
	CurrentFunding         decimal.Decimal `json:"current_funding"`
	Funding8h              decimal.Decimal `json:"funding_8h"`

	MarkIV          decimal.Decimal `json:"mark_iv"`
	BidIV           decimal.Decimal `json:"bid_iv"`
	AskIV           decimal.Decimal `json:"ask_iv"`
	UnderlyingPrice decimal.Decimal `json:"underlying_price"`
	UnderlyingIndex string          `json:"underlying_index,omitempty"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	Greeks          *Greeks         `json:"greeks,omitempty"`
}

// Greeks are an option's price sensitivities.
type Greeks struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Vega  decimal.Decimal `json:"vega"`
	Theta decimal.Decimal `json:"theta"`
	Rho   decimal.Decimal `json:"rho"`
}

// IVSpread returns ask IV minus bid IV. ok is false unless both are quoted.
func (t Ticker) IVSpread() (spread decimal.Decimal, ok bool) {
	if !t.BidIV.IsPositive() || !t.AskIV.IsPositive() {
		return decimal.Zero, false
	}
	return t.AskIV.Sub(t.BidIV), true
}

// Spread returns ask minus bid. ok is false unless both sides are quoted.
func (t Ticker) Spread() (spread decimal.Decimal, ok bool) {
	if !t.BestBidPrice.IsPositive() || !t.BestAskPrice.IsPositive() {
		return decimal.Zero, false
	}
	return t.BestAskPrice.Sub(t.BestBidPrice), true
}

// MidPrice returns the midpoint of the best bid and ask. ok is false unless
// both sides are quoted.
func (t Ticker) MidPrice() (mid decimal.Decimal, ok bool) {
	if !t.BestBidPrice.IsPositive() || !t.BestAskPrice.IsPositive() {
		return decimal.Zero, false
	}
	return t.BestBidPrice.Add(t.BestAskPrice).Div(two), true
}

// BookSummary is one row of get_book_summary_by_currency or
// get_book_summary_by_instrument. Prices the exchange reports as null are
// invalid NullDecimals.
type BookSummary struct {
	InstrumentName         string              `json:"instrument_name"`
	BaseCurrency           string              `json:"base_currency"`
	QuoteCurrency          string              `json:"quote_currency"`
	Volume                 decimal.Decimal     `json:"volume"`
	VolumeUSD              decimal.Decimal     `json:"volume_usd"`
	OpenInterest           decimal.Decimal     `json:"open_interest"`
	PriceChange            decimal.NullDecimal `json:"price_change"`
	MarkPrice              decimal.Decimal     `json:"mark_price"`
	MarkIV                 decimal.NullDecimal `json:"mark_iv"`
	BidPrice               decimal.NullDecimal `json:"bid_price"`
	AskPrice               decimal.NullDecimal `json:"ask_price"`
	MidPrice               decimal.NullDecimal `json:"mid_price"`
	Last                   decimal.NullDecimal `json:"last"`
	High                   decimal.NullDecimal `json:"high"`
	Low                    decimal.NullDecimal `json:"low"`
	EstimatedDeliveryPrice decimal.NullDecimal `json:"estimated_delivery_price"`
	CurrentFunding         decimal.NullDecimal `json:"current_funding"`
	Funding8h              decimal.NullDecimal `json:"funding_8h"`
	CreatedAt              time.Time           `json:"creation_timestamp"`
}

// Spread returns ask minus bid. ok is false unless both sides are quoted.
func (s BookSummary) Spread() (decimal.Decimal, bool) {
	if !s.BidPrice.Valid || !s.AskPrice.Valid || !s.BidPrice.Decimal.IsPositive() || !s.AskPrice.Decimal.IsPositive() {
		return decimal.Zero, false
	}
	return s.AskPrice.Decimal.Sub(s.BidPrice.Decimal), true
}

// Validate checks the summary's base currency against the supported set.
func (s BookSummary) Validate() error {
	return ValidateCurrency(s.BaseCurrency)
}

// OrderBookLevel is one price level. In a change book an amount of zero
// removes the level.
type OrderBookLevel struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// BookUpdateType tells a full book from an incremental one.
type BookUpdateType string

const (
	BookSnapshot BookUpdateType = "snapshot"
	BookChange   BookUpdateType = "change"
)

// OrderBook is a depth snapshot or change. Bids are sorted best (highest)
// first and asks best (lowest) first. PrevChangeID links a change to the
// ChangeID of the book it applies to.
type OrderBook struct {
	InstrumentName string           `json:"instrument_name"`
	Type           BookUpdateType   `json:"type"`
	Timestamp      time.Time        `json:"timestamp"`
	ChangeID       int64            `json:"change_id"`
	PrevChangeID   *int64           `json:"prev_change_id,omitempty"`
	Bids           []OrderBookLevel `json:"bids"`
	Asks           []OrderBookLevel `json:"asks"`
}

// NewOrderBook builds a snapshot from levels in any order. The input slices
// are copied.
func NewOrderBook(instrument string, ts time.Time, changeID int64, bids, asks []OrderBookLevel) OrderBook {
	b := OrderBook{
		InstrumentName: instrument,
		Type:           BookSnapshot,
		Timestamp:      ts.UTC(),
		ChangeID:       changeID,
		Bids:           append([]OrderBookLevel(nil), bids...),
		Asks:           append([]OrderBookLevel(nil), asks...),
	}
	b.sortLevels()
	return b
}

// NewOrderBookChange builds an incremental book that follows the book with
// ChangeID prevChangeID. Zero amounts mark deleted levels.
func NewOrderBookChange(instrument string, ts time.Time, prevChangeID, changeID int64, bids, asks []OrderBookLevel) OrderBook {
	b := NewOrderBook(instrument, ts, changeID, bids, asks)
	b.Type = BookChange
	b.PrevChangeID = &prevChangeID
	return b
}

func (b *OrderBook) sortLevels() {
	sort.SliceStable(b.Bids, func(i, j int) bool { return b.Bids[i].Price.GreaterThan(b.Bids[j].Price) })
	sort.SliceStable(b.Asks, func(i, j int) bool { return b.Asks[i].Price.LessThan(b.Asks[j].Price) })
}

// IsSnapshot reports whether b is a full book.
func (b OrderBook) IsSnapshot() bool {
	return b.Type != BookChange
}

// Apply returns the book after change. change must be a change book for the
// same instrument whose PrevChangeID equals b.ChangeID; otherwise a
// BookSequenceGap error is returned and the caller should fetch a new
// snapshot. b is not modified.
func (b OrderBook) Apply(change OrderBook) (OrderBook, error) {
	if change.InstrumentName != b.InstrumentName {
		return OrderBook{}, errors.NewProtocolError(errors.BookSequenceGap, 0,
			"change for "+change.InstrumentName+" applied to "+b.InstrumentName, nil)
	}
	if change.IsSnapshot() || change.PrevChangeID == nil {
		return OrderBook{}, errors.NewProtocolError(errors.BookSequenceGap, 0, "not a change book", nil)
	}
	if *change.PrevChangeID != b.ChangeID {
		return OrderBook{}, errors.NewProtocolError(errors.BookSequenceGap, 0,
			"change follows "+strconv.FormatInt(*change.PrevChangeID, 10)+", book is at "+strconv.FormatInt(b.ChangeID, 10), nil)
	}

	next := OrderBook{
		InstrumentName: b.InstrumentName,
		Type:           BookSnapshot,
		Timestamp:      change.Timestamp,
		ChangeID:       change.ChangeID,
		Bids:           mergeLevels(b.Bids, change.Bids),
		Asks:           mergeLevels(b.Asks, change.Asks),
	}
	next.sortLevels()
	return next, nil
}

func mergeLevels(levels, updates []OrderBookLevel) []OrderBookLevel {
	out := make([]OrderBookLevel, 0, len(levels)+len(updates))
	for _, l := range levels {
		if !hasPrice(updates, l.Price) {
			out = append(out, l)
		}
	}
	for _, u := range updates {
		if u.Amount.IsPositive() {
			out = append(out, u)
		}
	}
	return out
}

func hasPrice(levels []OrderBookLevel, price decimal.Decimal) bool {
	for _, l := range levels {
		if l.Price.Equal(price) {
			return true
		}
	}
	return false
}

// BestBid returns the highest bid.
func (b OrderBook) BestBid() (OrderBookLevel, bool) {
	if len(b.Bids) == 0 {
		return OrderBookLevel{}, false
	}
	return b.Bids[0], true
}

// BestAsk returns the lowest ask.
func (b OrderBook) BestAsk() (OrderBookLevel, bool) {
	if len(b.Asks) == 0 {
		return OrderBookLevel{}, false
	}
	return b.Asks[0], true
}

// Spread returns best ask minus best bid.
func (b OrderBook) Spread() (decimal.Decimal, bool) {
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return decimal.Zero, false
	}
	return ask.Price.Sub(bid.Price), true
}

// MidPrice returns the midpoint of the best bid and ask.
func (b OrderBook) MidPrice() (decimal.Decimal, bool) {
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return decimal.Zero, false
	}
	return bid.Price.Add(ask.Price).Div(two), true
}

// TotalBidVolume sums the amounts on the bid side.
func (b OrderBook) TotalBidVolume() decimal.Decimal {
	return sumAmounts(b.Bids)
}

// TotalAskVolume sums the amounts on the ask side.
func (b OrderBook) TotalAskVolume() decimal.Decimal {
	return sumAmounts(b.Asks)
}

func sumAmounts(levels []OrderBookLevel) decimal.Decimal {
	total := decimal.Zero
	for _, l := range levels {
		total = total.Add(l.Amount)
	}
	return total
}
