package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"deribit-common/internal/errors"
)

// AccountSummary represents the account state in one currency.
type AccountSummary struct {
	Currency                 string          `json:"currency"`
	Balance                  decimal.Decimal `json:"balance"`
	Equity                   decimal.Decimal `json:"equity"`
	AvailableFunds           decimal.Decimal `json:"available_funds"`
	AvailableWithdrawalFunds decimal.Decimal `json:"available_withdrawal_funds"`
	MarginBalance            decimal.Decimal `json:"margin_balance"`
	InitialMargin            decimal.Decimal `json:"initial_margin"`
	MaintenanceMargin        decimal.Decimal `json:"maintenance_margin"`
	TotalPL                  decimal.Decimal `json:"total_pl"`
	SessionRPL               decimal.Decimal `json:"session_rpl"`
	SessionUPL               decimal.Decimal `json:"session_upl"`
	DeltaTotal               decimal.Decimal `json:"delta_total"`
}

// Validate checks the summary's currency against the supported set.
func (a AccountSummary) Validate() error {
	return ValidateCurrency(a.Currency)
}

// MarginUtilization returns initial margin as a percentage of equity, or zero
// when equity is not positive.
func (a AccountSummary) MarginUtilization() decimal.Decimal {
	if !a.Equity.IsPositive() {
		return decimal.Zero
	}
	return a.InitialMargin.Div(a.Equity).Mul(hundred)
}

// Holdings returns the per-currency holdings view of the summary.
func (a AccountSummary) Holdings() Balance {
	return Balance{
		Currency:  a.Currency,
		Total:     a.Balance,
		Available: a.AvailableFunds,
		Reserved:  a.Balance.Sub(a.AvailableFunds),
	}
}

// Balance represents holdings in one currency.
type Balance struct {
	Currency  string          `json:"currency"`
	Total     decimal.Decimal `json:"total"`
	Available decimal.Decimal `json:"available"`
	Reserved  decimal.Decimal `json:"reserved"`
}

// NewBalance builds a Balance after checking the currency. Reserved is
// total minus available.
func NewBalance(currency string, total, available decimal.Decimal) (Balance, error) {
	if err := ValidateCurrency(currency); err != nil {
		return Balance{}, err
	}
	if available.GreaterThan(total) {
		return Balance{}, errors.NewValidationError(errors.InvalidAmount, "available", available.String(), "exceeds total "+total.String())
	}
	return Balance{
		Currency:  currency,
		Total:     total,
		Available: available,
		Reserved:  total.Sub(available),
	}, nil
}

// Transfer represents a movement of funds between accounts or to an address.
type Transfer struct {
	ID            int64           `json:"id"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Address       string          `json:"address"`
	TransactionID string          `json:"transaction_id,omitempty"`
	State         TransferState   `json:"state"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Validate checks the currency, amount and fee.
func (t Transfer) Validate() error {
	if err := ValidateCurrency(t.Currency); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return errors.NewValidationError(errors.InvalidAmount, "amount", t.Amount.String(), "must be greater than zero")
	}
	if t.Fee.IsNegative() {
		return errors.NewValidationError(errors.InvalidAmount, "fee", t.Fee.String(), "must not be negative")
	}
	return nil
}

// IsPending reports whether the transfer can still be confirmed or cancelled.
func (t Transfer) IsPending() bool {
	return t.State == TransferPrepared || t.State == TransferWaitingForAdmin
}

// NetAmount returns the amount after fees.
func (t Transfer) NetAmount() decimal.Decimal {
	return t.Amount.Sub(t.Fee)
}

// Confirm returns the transfer confirmed at at.
func (t Transfer) Confirm(at time.Time) (Transfer, error) {
	if !t.IsPending() {
		return Transfer{}, errors.NewOrderError(errors.TransferNotAllowed, t.idString(), "confirm", "transfer is "+string(t.State))
	}
	t.State = TransferConfirmed
	t.UpdatedAt = at.UTC()
	return t, nil
}

// Cancel returns the transfer cancelled at at.
func (t Transfer) Cancel(at time.Time) (Transfer, error) {
	if !t.IsPending() {
		return Transfer{}, errors.NewOrderError(errors.TransferNotAllowed, t.idString(), "cancel", "transfer is "+string(t.State))
	}
	t.State = TransferCancelled
	t.UpdatedAt = at.UTC()
	return t, nil
}

func (t Transfer) idString() string {
	return strconv.FormatInt(t.ID, 10)
}
