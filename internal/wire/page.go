package wire

import (
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"deribit-common/internal/errors"
	"deribit-common/internal/models"
)

// endOfPages is the continuation token the exchange sends on the last page.
const endOfPages = "none"

// Page is one page of a paginated result. Trade history pages set HasMore;
// settlement pages set Continuation, which the caller passes back to fetch
// the next page.
type Page[T any] struct {
	Items        []T
	HasMore      bool
	Continuation string
}

// Done reports whether no further page exists.
func (p Page[T]) Done() bool {
	return !p.HasMore && (p.Continuation == "" || p.Continuation == endOfPages)
}

// DecodeTradePage decodes a {"trades": [...], "has_more": bool} result.
func (d *Decoder) DecodeTradePage(data []byte) (Page[models.Trade], error) {
	var in struct {
		Trades  []json.RawMessage `json:"trades"`
		HasMore bool              `json:"has_more"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return Page[models.Trade]{}, d.fail("trade_page", data, decodeError("trade page", err))
	}
	page := Page[models.Trade]{Items: make([]models.Trade, 0, len(in.Trades)), HasMore: in.HasMore}
	for i, item := range in.Trades {
		trade, err := decodeTrade(item)
		if err != nil {
			return Page[models.Trade]{}, d.fail("trade_page", data, errors.Wrapf(err, "trade %d", i))
		}
		page.Items = append(page.Items, trade)
	}
	return page, nil
}

type settlementJSON struct {
	models.Settlement
	Timestamp int64 `json:"timestamp"`
}

// DecodeSettlementPage decodes a {"settlements": [...], "continuation": ...}
// result.
func (d *Decoder) DecodeSettlementPage(data []byte) (Page[models.Settlement], error) {
	var in struct {
		Settlements  []settlementJSON `json:"settlements"`
		Continuation *string          `json:"continuation"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return Page[models.Settlement]{}, d.fail("settlement_page", data, decodeError("settlement page", err))
	}
	page := Page[models.Settlement]{Items: make([]models.Settlement, 0, len(in.Settlements))}
	if in.Continuation != nil {
		page.Continuation = *in.Continuation
	}
	for i, row := range in.Settlements {
		s := row.Settlement
		switch s.Type {
		case models.SettlementTypeSettlement, models.SettlementTypeDelivery, models.SettlementTypeBankruptcy:
		default:
			return Page[models.Settlement]{}, d.fail("settlement_page", data,
				errors.NewValidationError(errors.BadArgument, "type", string(s.Type), "settlement "+strconv.Itoa(i)+" has unknown type"))
		}
		if s.InstrumentName != "" {
			if err := checkInstrumentName(s.InstrumentName); err != nil {
				return Page[models.Settlement]{}, d.fail("settlement_page", data, errors.Wrapf(err, "settlement %d", i))
			}
		}
		s.Timestamp = time.UnixMilli(row.Timestamp).UTC()
		page.Items = append(page.Items, s)
	}
	return page, nil
}
