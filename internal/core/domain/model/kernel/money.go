package kernel

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrMoneyIsNotConstructed is returned when Money bypassed NewMoney.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or ZeroMoney")

	// ErrCurrencyMismatch is returned by arithmetic across different currencies.
	ErrCurrencyMismatch = errs.NewValueIsInvalidError("currency mismatch")

	// ErrAmountTooPrecise is returned for amounts with more than MoneyScale decimal places.
	ErrAmountTooPrecise = errs.NewValueIsInvalidError("amount precision")
)

const (
	// MoneyScale is the number of decimal places an amount may carry.
	MoneyScale = 4

	// MoneyIntegerDigits bounds the integer part of any amount, totals included.
	MoneyIntegerDigits = 15
)

// maxMoneyAmount is the exclusive upper bound of |amount|, 10^MoneyIntegerDigits.
var maxMoneyAmount = decimal.New(1, MoneyIntegerDigits)

// Currency is an upper-case ISO 4217 code such as "USD".
type Currency string

// NewCurrency normalizes and validates a three letter currency code.
func NewCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("currency")
	}
	if len(normalized) != 3 {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not a three letter code", code))
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", errs.NewValueIsInvalidErrorWithCause(
				"currency", fmt.Errorf("%q contains non-letter characters", code))
		}
	}
	return Currency(normalized), nil
}

// String returns the ISO 4217 code.
func (c Currency) String() string {
	return string(c)
}

// Money is an exact monetary amount in a single currency.
//
// Equality and ordering are defined on (amount, currency). Arithmetic between
// different currencies fails with ErrCurrencyMismatch instead of converting.
//
//	price, _ := kernel.NewMoney(decimal.RequireFromString("10.50"), "USD")
//	total, err := price.Multiply(qty).Add(shipping)
type Money struct {
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

// NewMoney builds Money from an exact decimal amount. Negative amounts are
// allowed here; aggregates apply their own sign rules.
//
// The amount must fit NUMERIC(19,4): at most MoneyScale decimal places and an
// absolute value below 10^MoneyIntegerDigits. Nothing is rounded; an amount
// that does not fit is rejected with ErrAmountTooPrecise or an
// errs.ValueIsOutOfRangeError.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.RequireFromString("19.99"), "USD")
//	if err != nil {
//	    return err
//	}
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	code, err := NewCurrency(string(currency))
	if err != nil {
		return Money{}, err
	}
	if err := checkAmount(amount); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: code, guard: guard.NewConstructorGuard()}, nil
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrAmountTooPrecise, amount, MoneyScale)
	}
	if amount.Abs().GreaterThanOrEqual(maxMoneyAmount) {
		return errs.NewValueIsOutOfRangeError("amount", amount, maxMoneyAmount.Neg(), maxMoneyAmount)
	}
	return nil
}

// MoneyFromInt is a convenience for whole amounts.
func MoneyFromInt(amount int64, currency Currency) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount), currency)
}

// ParseMoney reads a decimal string such as "19.99".
func ParseMoney(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency Currency) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Validate fails with ErrMoneyIsNotConstructed unless m came from NewMoney,
// ZeroMoney or arithmetic on such values.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount is the exact value, at most MoneyScale decimal places.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency is the ISO 4217 code the amount is denominated in.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero ignores the currency.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns m + other. A sum outside the NewMoney bounds is an
// errs.ValueIsOutOfRangeError, so totals can never overflow storage.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return m.withAmount(m.amount.Add(other.amount))
}

// Subtract returns m - other, bounded like Add.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return m.withAmount(m.amount.Sub(other.amount))
}

func (m Money) withAmount(amount decimal.Decimal) (Money, error) {
	if err := checkAmount(amount); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: m.currency, guard: m.guard}, nil
}

// Multiply scales the amount by a line quantity. The product is unbounded;
// it is checked when it is added into a total.
func (m Money) Multiply(q Quantity) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(q.Int()))), currency: m.currency, guard: m.guard}
}

// IsEqual compares amount numerically (1.0 equals 1.00) and currency exactly.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Compare orders by amount first and currency code second.
func (m Money) Compare(other Money) int {
	if c := m.amount.Cmp(other.amount); c != 0 {
		return c
	}
	return strings.Compare(string(m.currency), string(other.currency))
}

// String renders two decimal places and the code, e.g. "10.50 USD". It is
// meant for logs and error messages, not for storage.
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.currency)
}

func (m Money) sameCurrency(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

// SumMoney adds all values, starting from zero in the given currency.
func SumMoney(currency Currency, values ...Money) (Money, error) {
	total, err := ZeroMoney(currency)
	if err != nil {
		return Money{}, err
	}
	for _, v := range values {
		if total, err = total.Add(v); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}
