package domain

import "github.com/shopspring/decimal"

// Money is a currency-tagged amount. Amounts are decimal to match the
// platform's string-encoded prices (e.g. "10.00").
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currencyCode"`
}

func NewMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: d, Currency: currency}, nil
}

func ZeroMoney(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Mul scales the amount by a line quantity.
func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), Currency: m.Currency}
}

// Add sums two amounts of the same currency. Adding to a zero-valued Money
// with no currency adopts the other side's currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency == "" && m.Amount.IsZero() {
		return other, nil
	}
	if other.Currency != m.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// String renders the amount with two decimal places followed by the
// currency code, e.g. "30.00 GBP".
func (m Money) String() string {
	if m.Currency == "" {
		return m.Amount.StringFixed(2)
	}
	return m.Amount.StringFixed(2) + " " + m.Currency
}
