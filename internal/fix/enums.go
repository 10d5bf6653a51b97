package fix

import (
	"strings"

	"deribit-common/internal/constants"
	"deribit-common/internal/models"
)

// Side (54)
const (
	sideBuy  = "1"
	sideSell = "2"
)

// ExecInst (18)
const (
	execInstPostOnly   = "6"
	execInstReduceOnly = "E"
)

// ExecType (150)
const execTypeTrade = "F"

var ordTypes = map[models.OrderType]string{
	models.OrderTypeMarket:     "1",
	models.OrderTypeLimit:      "2",
	models.OrderTypeStopMarket: "3",
	models.OrderTypeStopLimit:  "4",
}

var timesInForce = map[models.TimeInForce]string{
	models.GoodTilDay:        "0",
	models.GoodTilCancelled:  "1",
	models.ImmediateOrCancel: "3",
	models.FillOrKill:        "4",
}

// Partially filled (1) and triggered orders are both live on the book.
var ordStatuses = map[string]models.OrderState{
	"0": models.OrderStateOpen,
	"1": models.OrderStateOpen,
	"2": models.OrderStateFilled,
	"4": models.OrderStateCancelled,
	"8": models.OrderStateRejected,
	"A": models.OrderStateUntriggered,
}

func sideToFIX(d models.Direction) (string, error) {
	switch d {
	case models.DirectionBuy:
		return sideBuy, nil
	case models.DirectionSell:
		return sideSell, nil
	}
	return "", unsupported(constants.TagSide, string(d))
}

func sideFromFIX(v string) (models.Direction, error) {
	switch v {
	case sideBuy:
		return models.DirectionBuy, nil
	case sideSell:
		return models.DirectionSell, nil
	}
	return "", unsupported(constants.TagSide, v)
}

func ordTypeToFIX(t models.OrderType) (string, error) {
	if v, ok := ordTypes[t]; ok {
		return v, nil
	}
	return "", unsupported(constants.TagOrdType, string(t))
}

func ordTypeFromFIX(v string) (models.OrderType, error) {
	for t, fv := range ordTypes {
		if fv == v {
			return t, nil
		}
	}
	return "", unsupported(constants.TagOrdType, v)
}

func timeInForceToFIX(tif models.TimeInForce) (string, error) {
	if v, ok := timesInForce[tif]; ok {
		return v, nil
	}
	return "", unsupported(constants.TagTimeInForce, string(tif))
}

func timeInForceFromFIX(v string) (models.TimeInForce, error) {
	for tif, fv := range timesInForce {
		if fv == v {
			return tif, nil
		}
	}
	return "", unsupported(constants.TagTimeInForce, v)
}

func ordStatusFromFIX(v string) (models.OrderState, error) {
	if s, ok := ordStatuses[v]; ok {
		return s, nil
	}
	return "", unsupported(constants.TagOrdStatus, v)
}

func execInstToFIX(postOnly, reduceOnly bool) string {
	var parts []string
	if postOnly {
		parts = append(parts, execInstPostOnly)
	}
	if reduceOnly {
		parts = append(parts, execInstReduceOnly)
	}
	return strings.Join(parts, " ")
}

func execInstFromFIX(v string) (postOnly, reduceOnly bool) {
	for _, inst := range strings.Fields(v) {
		switch inst {
		case execInstPostOnly:
			postOnly = true
		case execInstReduceOnly:
			reduceOnly = true
		}
	}
	return postOnly, reduceOnly
}
