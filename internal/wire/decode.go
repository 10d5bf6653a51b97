package wire

import (
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"deribit-common/internal/errors"
	"deribit-common/internal/logging"
	"deribit-common/internal/models"
	"deribit-common/pkg/utils"
)

// Decoder turns REST results and WebSocket notification data into shared
// models. Failures are logged at debug level with secrets redacted.
type Decoder struct {
	log zerolog.Logger
}

// NewDecoder returns a Decoder that logs to logger.
func NewDecoder(logger zerolog.Logger) *Decoder {
	return &Decoder{log: logging.WithTransport(logger, "json")}
}

func (d *Decoder) fail(entity string, data []byte, err error) error {
	logging.LogDecodeFailure(d.log, entity, err, logging.RedactJSON(data))
	return err
}

// Result decodes a JSON-RPC response for method and returns its result. An
// error response is logged and returned as *errors.APIError.
func (d *Decoder) Result(method string, data []byte) (json.RawMessage, error) {
	resp, err := DecodeResponse(data)
	if err != nil {
		return nil, d.fail("response", data, err)
	}
	if err := resp.Err(); err != nil {
		logging.LogAPIError(d.log, method, err)
		return nil, err
	}
	return resp.Result, nil
}

// marketPrice accepts a number, null or the literal "market_price", which
// decodes to an absent price.
type marketPrice struct {
	decimal.NullDecimal
}

func (p *marketPrice) UnmarshalJSON(data []byte) error {
	if string(data) == `"market_price"` {
		p.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	return p.NullDecimal.UnmarshalJSON(data)
}

type orderJSON struct {
	models.OrderDraft
	Price marketPrice `json:"price"`
}

// DecodeOrder decodes one order object.
func (d *Decoder) DecodeOrder(data []byte) (models.Order, error) {
	order, err := decodeOrder(data)
	if err != nil {
		return models.Order{}, d.fail("order", data, err)
	}
	return order, nil
}

// DecodeOrders decodes an array of order objects. The first bad element fails
// the whole array.
func (d *Decoder) DecodeOrders(data []byte) ([]models.Order, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, d.fail("orders", data, decodeError("orders", err))
	}
	orders := make([]models.Order, 0, len(raw))
	for i, item := range raw {
		order, err := decodeOrder(item)
		if err != nil {
			return nil, d.fail("orders", data, errors.Wrapf(err, "order %d", i))
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func decodeOrder(data []byte) (models.Order, error) {
	var o orderJSON
	if err := json.Unmarshal(data, &o); err != nil {
		return models.Order{}, decodeError("order", err)
	}
	draft := o.OrderDraft
	draft.Price = o.Price.NullDecimal
	return models.BuildOrder(draft)
}

// DecodeTrade decodes one trade object.
func (d *Decoder) DecodeTrade(data []byte) (models.Trade, error) {
	trade, err := decodeTrade(data)
	if err != nil {
		return models.Trade{}, d.fail("trade", data, err)
	}
	return trade, nil
}

// DecodeTrades decodes an array of trade objects.
func (d *Decoder) DecodeTrades(data []byte) ([]models.Trade, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, d.fail("trades", data, decodeError("trades", err))
	}
	trades := make([]models.Trade, 0, len(raw))
	for i, item := range raw {
		trade, err := decodeTrade(item)
		if err != nil {
			return nil, d.fail("trades", data, errors.Wrapf(err, "trade %d", i))
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func decodeTrade(data []byte) (models.Trade, error) {
	var draft models.TradeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return models.Trade{}, decodeError("trade", err)
	}
	return models.BuildTrade(draft)
}

// DecodeOrderPlacement decodes the {"order": ..., "trades": [...]} result of
// a buy, sell or edit request.
func (d *Decoder) DecodeOrderPlacement(data []byte) (models.Order, []models.Trade, error) {
	var placement struct {
		Order  json.RawMessage   `json:"order"`
		Trades []json.RawMessage `json:"trades"`
	}
	if err := json.Unmarshal(data, &placement); err != nil {
		return models.Order{}, nil, d.fail("placement", data, decodeError("placement", err))
	}
	order, err := decodeOrder(placement.Order)
	if err != nil {
		return models.Order{}, nil, d.fail("placement", data, err)
	}
	trades := make([]models.Trade, 0, len(placement.Trades))
	for _, item := range placement.Trades {
		trade, err := decodeTrade(item)
		if err != nil {
			return models.Order{}, nil, d.fail("placement", data, err)
		}
		trades = append(trades, trade)
	}
	return order, trades, nil
}

type tickerJSON struct {
	InstrumentName  string          `json:"instrument_name"`
	State           string          `json:"state"`
	Timestamp       int64           `json:"timestamp"`
	LastPrice       decimal.Decimal `json:"last_price"`
	MarkPrice       decimal.Decimal `json:"mark_price"`
	IndexPrice      decimal.Decimal `json:"index_price"`
	BestBidPrice    decimal.Decimal `json:"best_bid_price"`
	BestBidAmount   decimal.Decimal `json:"best_bid_amount"`
	BestAskPrice    decimal.Decimal `json:"best_ask_price"`
	BestAskAmount   decimal.Decimal `json:"best_ask_amount"`
	OpenInterest    decimal.Decimal `json:"open_interest"`
	SettlementPrice decimal.Decimal `json:"settlement_price"`
	CurrentFunding  decimal.Decimal `json:"current_funding"`
	Funding8h       decimal.Decimal `json:"funding_8h"`
	MinPrice        decimal.Decimal `json:"min_price"`
	MaxPrice        decimal.Decimal `json:"max_price"`
	DeliveryPrice   decimal.Decimal `json:"estimated_delivery_price"`
	MarkIV          decimal.Decimal `json:"mark_iv"`
	BidIV           decimal.Decimal `json:"bid_iv"`
	AskIV           decimal.Decimal `json:"ask_iv"`
	UnderlyingPrice decimal.Decimal `json:"underlying_price"`
	UnderlyingIndex string          `json:"underlying_index"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	Greeks          *models.Greeks  `json:"greeks"`
	Stats           struct {
		Volume      decimal.Decimal `json:"volume"`
		VolumeUSD   decimal.Decimal `json:"volume_usd"`
		PriceChange decimal.Decimal `json:"price_change"`
		High        decimal.Decimal `json:"high"`
		Low         decimal.Decimal `json:"low"`
	} `json:"stats"`
}

// DecodeTicker decodes a ticker result or ticker notification. Null prices
// decode to zero.
func (d *Decoder) DecodeTicker(data []byte) (models.Ticker, error) {
	var t tickerJSON
	if err := json.Unmarshal(data, &t); err != nil {
		return models.Ticker{}, d.fail("ticker", data, decodeError("ticker", err))
	}
	if err := checkInstrumentName(t.InstrumentName); err != nil {
		return models.Ticker{}, d.fail("ticker", data, err)
	}
	return models.Ticker{
		InstrumentName:  t.InstrumentName,
		State:           t.State,
		Timestamp:       time.UnixMilli(t.Timestamp).UTC(),
		LastPrice:       t.LastPrice,
		MarkPrice:       t.MarkPrice,
		IndexPrice:      t.IndexPrice,
		BestBidPrice:    t.BestBidPrice,
		BestBidAmount:   t.BestBidAmount,
		BestAskPrice:    t.BestAskPrice,
		BestAskAmount:   t.BestAskAmount,
		OpenInterest:    t.OpenInterest,
		Volume24h:       t.Stats.Volume,
		High24h:         t.Stats.High,
		Low24h:          t.Stats.Low,
		SettlementPrice: t.SettlementPrice,
		CurrentFunding:  t.CurrentFunding,
		Funding8h:       t.Funding8h,

		MinPrice:               t.MinPrice,
		MaxPrice:               t.MaxPrice,
		VolumeUSD24h:           t.Stats.VolumeUSD,
		PriceChange24h:         t.Stats.PriceChange,
		EstimatedDeliveryPrice: t.DeliveryPrice,
		MarkIV:                 t.MarkIV,
		BidIV:                  t.BidIV,
		AskIV:                  t.AskIV,
		UnderlyingPrice:        t.UnderlyingPrice,
		UnderlyingIndex:        t.UnderlyingIndex,
		InterestRate:           t.InterestRate,
		Greeks:                 t.Greeks,
	}, nil
}

type bookJSON struct {
	InstrumentName string              `json:"instrument_name"`
	Type           string              `json:"type"`
	Timestamp      int64               `json:"timestamp"`
	ChangeID       int64               `json:"change_id"`
	PrevChangeID   *int64              `json:"prev_change_id"`
	Bids           [][]json.RawMessage `json:"bids"`
	Asks           [][]json.RawMessage `json:"asks"`
}

// DecodeOrderBook decodes a book result or book notification. Levels are
// either [price, amount] or [action, price, amount]. A "change" notification
// decodes to a change book carrying its prev_change_id, with "delete" levels
// kept at amount zero; apply it to the previous book with OrderBook.Apply.
func (d *Decoder) DecodeOrderBook(data []byte) (models.OrderBook, error) {
	var b bookJSON
	if err := json.Unmarshal(data, &b); err != nil {
		return models.OrderBook{}, d.fail("order_book", data, decodeError("order book", err))
	}
	if err := checkInstrumentName(b.InstrumentName); err != nil {
		return models.OrderBook{}, d.fail("order_book", data, err)
	}

	var change bool
	switch models.BookUpdateType(b.Type) {
	case "", models.BookSnapshot:
	case models.BookChange:
		if b.PrevChangeID == nil {
			return models.OrderBook{}, d.fail("order_book", data,
				errors.NewProtocolError(errors.JSONDecodeFailed, 0, "change book without prev_change_id", nil))
		}
		change = true
	default:
		return models.OrderBook{}, d.fail("order_book", data,
			errors.NewProtocolError(errors.JSONDecodeFailed, 0, "unknown book type "+strconv.Quote(b.Type), nil))
	}

	bids, err := parseLevels("bids", b.Bids, change)
	if err != nil {
		return models.OrderBook{}, d.fail("order_book", data, err)
	}
	asks, err := parseLevels("asks", b.Asks, change)
	if err != nil {
		return models.OrderBook{}, d.fail("order_book", data, err)
	}
	ts := time.UnixMilli(b.Timestamp).UTC()
	if change {
		return models.NewOrderBookChange(b.InstrumentName, ts, *b.PrevChangeID, b.ChangeID, bids, asks), nil
	}
	return models.NewOrderBook(b.InstrumentName, ts, b.ChangeID, bids, asks), nil
}

func parseLevels(side string, raw [][]json.RawMessage, change bool) ([]models.OrderBookLevel, error) {
	levels := make([]models.OrderBookLevel, 0, len(raw))
	for i, entry := range raw {
		where := side + "[" + strconv.Itoa(i) + "]"
		var deleted bool
		switch len(entry) {
		case 2:
		case 3:
			var action string
			if err := json.Unmarshal(entry[0], &action); err != nil {
				return nil, decodeError(where+" action", err)
			}
			switch action {
			case "new", "change":
			case "delete":
				if !change {
					return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, where+" deletes a level in a snapshot", nil)
				}
				deleted = true
			default:
				return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, where+" has unknown action "+strconv.Quote(action), nil)
			}
			entry = entry[1:]
		default:
			return nil, errors.NewProtocolError(errors.JSONDecodeFailed, 0, where+" must have 2 or 3 elements", nil)
		}

		var level models.OrderBookLevel
		if err := json.Unmarshal(entry[0], &level.Price); err != nil {
			return nil, decodeError(where+" price", err)
		}
		if err := json.Unmarshal(entry[1], &level.Amount); err != nil {
			return nil, decodeError(where+" amount", err)
		}
		if !level.Price.IsPositive() {
			return nil, errors.NewValidationError(errors.InvalidPrice, where, level.Price.String(), "must be greater than zero")
		}
		if level.Amount.IsNegative() {
			return nil, errors.NewValidationError(errors.InvalidAmount, where, level.Amount.String(), "must not be negative")
		}
		if deleted {
			level.Amount = decimal.Zero
		}
		levels = append(levels, level)
	}
	return levels, nil
}

type instrumentJSON struct {
	InstrumentName      string              `json:"instrument_name"`
	Kind                string              `json:"kind"`
	SettlementPeriod    string              `json:"settlement_period"`
	BaseCurrency        string              `json:"base_currency"`
	QuoteCurrency       string              `json:"quote_currency"`
	SettlementCurrency  string              `json:"settlement_currency"`
	TickSize            decimal.Decimal     `json:"tick_size"`
	MinTradeAmount      decimal.Decimal     `json:"min_trade_amount"`
	ContractSize        decimal.Decimal     `json:"contract_size"`
	OptionType          string              `json:"option_type"`
	Strike              decimal.NullDecimal `json:"strike"`
	ExpirationTimestamp int64               `json:"expiration_timestamp"`
	IsActive            bool                `json:"is_active"`
	MakerCommission     decimal.Decimal     `json:"maker_commission"`
	TakerCommission     decimal.Decimal     `json:"taker_commission"`
}

// DecodeInstrument decodes one instrument. Futures with a perpetual
// settlement period become perpetual instruments; precisions are the decimal
// places of the tick size and minimum trade amount.
func (d *Decoder) DecodeInstrument(data []byte) (models.Instrument, error) {
	inst, err := decodeInstrument(data)
	if err != nil {
		return models.Instrument{}, d.fail("instrument", data, err)
	}
	return inst, nil
}

// DecodeInstruments decodes an array of instruments into a registry.
func (d *Decoder) DecodeInstruments(data []byte) (*models.InstrumentRegistry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, d.fail("instruments", data, decodeError("instruments", err))
	}
	instruments := make([]models.Instrument, 0, len(raw))
	for i, item := range raw {
		inst, err := decodeInstrument(item)
		if err != nil {
			return nil, d.fail("instruments", data, errors.Wrapf(err, "instrument %d", i))
		}
		instruments = append(instruments, inst)
	}
	registry, err := models.NewInstrumentRegistry(instruments)
	if err != nil {
		return nil, d.fail("instruments", data, err)
	}
	return registry, nil
}

func decodeInstrument(data []byte) (models.Instrument, error) {
	var in instrumentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return models.Instrument{}, decodeError("instrument", err)
	}
	kind := models.InstrumentKind(in.Kind)
	if kind == models.KindFuture && in.SettlementPeriod == "perpetual" {
		kind = models.KindPerpetual
	}
	var expiration time.Time
	if kind != models.KindPerpetual && kind != models.KindSpot && in.ExpirationTimestamp > 0 {
		expiration = time.UnixMilli(in.ExpirationTimestamp).UTC()
	}
	return models.NewInstrument(models.InstrumentSpec{
		Name:               in.InstrumentName,
		Kind:               kind,
		BaseCurrency:       in.BaseCurrency,
		QuoteCurrency:      in.QuoteCurrency,
		SettlementCurrency: in.SettlementCurrency,
		PricePrecision:     utils.DecimalPlaces(in.TickSize),
		AmountPrecision:    utils.DecimalPlaces(in.MinTradeAmount),
		TickSize:           in.TickSize,
		MinOrderSize:       in.MinTradeAmount,
		ContractSize:       in.ContractSize,
		OptionType:         models.OptionType(in.OptionType),
		Strike:             in.Strike,
		Expiration:         expiration,
		IsActive:           in.IsActive,
		MakerCommission:    in.MakerCommission,
		TakerCommission:    in.TakerCommission,
	})
}

// DecodePosition decodes one position.
func (d *Decoder) DecodePosition(data []byte) (models.Position, error) {
	var p models.Position
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Position{}, d.fail("position", data, decodeError("position", err))
	}
	if err := checkInstrumentName(p.InstrumentName); err != nil {
		return models.Position{}, d.fail("position", data, err)
	}
	switch p.Direction {
	case models.DirectionBuy, models.DirectionSell, models.DirectionZero:
	default:
		return models.Position{}, d.fail("position", data,
			errors.NewValidationError(errors.BadArgument, "direction", string(p.Direction), "must be buy, sell or zero"))
	}
	return p, nil
}

// DecodeAccountSummary decodes an account summary and checks its currency.
func (d *Decoder) DecodeAccountSummary(data []byte) (models.AccountSummary, error) {
	var a models.AccountSummary
	if err := json.Unmarshal(data, &a); err != nil {
		return models.AccountSummary{}, d.fail("account_summary", data, decodeError("account summary", err))
	}
	if err := a.Validate(); err != nil {
		return models.AccountSummary{}, d.fail("account_summary", data, err)
	}
	return a, nil
}

type bookSummaryJSON struct {
	models.BookSummary
	CreationTimestamp int64 `json:"creation_timestamp"`
}

// DecodeBookSummaries decodes the array returned by the book summary
// methods. Every row must name a valid instrument in a supported currency.
func (d *Decoder) DecodeBookSummaries(data []byte) ([]models.BookSummary, error) {
	var raw []bookSummaryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, d.fail("book_summary", data, decodeError("book summaries", err))
	}
	out := make([]models.BookSummary, 0, len(raw))
	for i, row := range raw {
		s := row.BookSummary
		if err := checkInstrumentName(s.InstrumentName); err != nil {
			return nil, d.fail("book_summary", data, errors.Wrapf(err, "summary %d", i))
		}
		if s.BaseCurrency == "" {
			s.BaseCurrency = utils.CurrencyFromInstrumentName(s.InstrumentName)
		}
		if err := s.Validate(); err != nil {
			return nil, d.fail("book_summary", data, errors.Wrapf(err, "summary %d", i))
		}
		s.CreatedAt = time.UnixMilli(row.CreationTimestamp).UTC()
		out = append(out, s)
	}
	return out, nil
}

// DecodeAuth decodes a public/auth result.
func (d *Decoder) DecodeAuth(data []byte) (models.AuthResponse, error) {
	var a models.AuthResponse
	if err := json.Unmarshal(data, &a); err != nil {
		return models.AuthResponse{}, d.fail("auth", data, decodeError("auth", err))
	}
	if a.AccessToken == "" || a.ExpiresIn <= 0 {
		return models.AuthResponse{}, d.fail("auth", data,
			errors.NewProtocolError(errors.JSONDecodeFailed, 0, "auth result needs access_token and a positive expires_in", nil))
	}
	return a, nil
}

type transferJSON struct {
	ID               int64                `json:"id"`
	Currency         string               `json:"currency"`
	Amount           decimal.Decimal      `json:"amount"`
	Fee              decimal.Decimal      `json:"fee"`
	Address          string               `json:"address"`
	TransactionID    string               `json:"transaction_id"`
	State            models.TransferState `json:"state"`
	CreatedTimestamp int64                `json:"created_timestamp"`
	UpdatedTimestamp int64                `json:"updated_timestamp"`
}

// DecodeTransfer decodes a transfer or withdrawal record.
func (d *Decoder) DecodeTransfer(data []byte) (models.Transfer, error) {
	var in transferJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return models.Transfer{}, d.fail("transfer", data, decodeError("transfer", err))
	}
	t := models.Transfer{
		ID:            in.ID,
		Currency:      in.Currency,
		Amount:        in.Amount,
		Fee:           in.Fee,
		Address:       in.Address,
		TransactionID: in.TransactionID,
		State:         in.State,
		CreatedAt:     time.UnixMilli(in.CreatedTimestamp).UTC(),
		UpdatedAt:     time.UnixMilli(in.UpdatedTimestamp).UTC(),
	}
	if err := t.Validate(); err != nil {
		return models.Transfer{}, d.fail("transfer", data, err)
	}
	return t, nil
}

func checkInstrumentName(name string) error {
	if err := utils.ValidateInstrumentName(name); err != nil {
		return errors.NewValidationError(errors.InvalidOrUnsupportedInstrument, "instrument_name", name, err.Error())
	}
	return nil
}
