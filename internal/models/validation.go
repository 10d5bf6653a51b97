package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	"deribit-common/internal/errors"
	"deribit-common/pkg/utils"
)

// ValidateOrder checks order against inst before it is sent or accepted.
// Checks run in a fixed order and the first failure is returned:
//
//  1. the order names inst
//  2. amount > 0
//  3. price > 0 when present
//  4. amount within the tighter of the instrument and currency limits
//  5. price and amount carry no more decimals than the instrument allows
//
// Excess precision is an error here; use NormalizeOrder to truncate first.
func ValidateOrder(order Order, inst Instrument) error {
	if order.InstrumentName != inst.Name {
		return errors.NewValidationError(errors.InvalidOrUnsupportedInstrument, "instrument_name", order.InstrumentName,
			fmt.Sprintf("order is for %s, validated against %s", order.InstrumentName, inst.Name))
	}
	if !order.Amount.IsPositive() {
		return errors.NewValidationError(errors.InvalidAmount, "amount", order.Amount.String(), "must be greater than zero")
	}
	if order.Price.Valid && !order.Price.Decimal.IsPositive() {
		return errors.NewValidationError(errors.InvalidPrice, "price", order.Price.Decimal.String(), "must be greater than zero")
	}

	minSize, maxSize := inst.OrderLimits()
	if order.Amount.LessThan(minSize) {
		return errors.NewValidationError(errors.InvalidAmount, "amount", order.Amount.String(), "below minimum order size "+minSize.String())
	}
	if order.Amount.GreaterThan(maxSize) {
		return errors.NewValidationError(errors.InvalidAmount, "amount", order.Amount.String(), "above maximum order size "+maxSize.String())
	}

	if order.Price.Valid && utils.DecimalPlaces(order.Price.Decimal) > inst.PricePrecision {
		return errors.NewValidationError(errors.PricePrecisionExceeded, "price", order.Price.Decimal.String(),
			fmt.Sprintf("more than %d decimal places", inst.PricePrecision))
	}
	if utils.DecimalPlaces(order.Amount) > inst.AmountPrecision {
		return errors.NewValidationError(errors.InvalidAmount, "amount", order.Amount.String(),
			fmt.Sprintf("more than %d decimal places", inst.AmountPrecision))
	}
	return nil
}

// NormalizeOrder truncates price and amount toward zero at the instrument's
// precision, never rounding up, and validates the result.
func NormalizeOrder(order Order, inst Instrument) (Order, error) {
	if order.Price.Valid {
		order.Price = decimal.NewNullDecimal(utils.TruncateDecimal(order.Price.Decimal, inst.PricePrecision))
	}
	order.Amount = utils.TruncateDecimal(order.Amount, inst.AmountPrecision)
	if err := ValidateOrder(order, inst); err != nil {
		return Order{}, err
	}
	return order, nil
}
