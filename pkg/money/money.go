// Package money provides a value object for monetary amounts.
//
// Invariants:
//   - Amount is always stored as an int64 in the smallest currency unit
//     (paise; two decimal places).
//   - Stored amounts never pass through float64 arithmetic, so they
//     round-trip exactly through snapshots.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

// Symbol is the currency symbol used when rendering amounts.
const Symbol = "₹"

// Decimals is the number of decimal places carried by the currency.
const Decimals = 2

// ErrInvalidAmount is returned when an amount cannot be represented as Money
// (NaN, infinity, or a value outside the int64 smallest-unit range).
var ErrInvalidAmount = fmt.Errorf("invalid amount")

// Money represents a monetary value in the smallest currency unit.
// The zero value is a valid zero amount.
type Money struct {
	amount int64
}

// New creates a Money value from a major-unit amount (e.g. 500.00),
// rounding to the nearest smallest unit.
//
// Returns ErrInvalidAmount for NaN, infinities, or values that would
// overflow int64.
func New(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	// Multiply in big.Rat to keep precision until the final rounding step.
	factor := new(big.Rat).SetInt64(int64(math.Pow10(Decimals)))
	amountRat := new(big.Rat).SetFloat64(amount)
	result := new(big.Rat).Mul(amountRat, factor)

	// float64(math.MaxInt64) rounds up to 2^63, which is already out of
	// int64 range, so the upper bound must be inclusive. The lower bound
	// stays strict: float64(math.MinInt64) is exactly -2^63, a valid int64.
	resultFloat, _ := result.Float64()
	if resultFloat >= float64(math.MaxInt64) || resultFloat < float64(math.MinInt64) {
		return Money{}, fmt.Errorf("%w: %v exceeds representable range", ErrInvalidAmount, amount)
	}
	return Money{amount: int64(math.Round(resultFloat))}, nil
}

// Must creates a Money value from a major-unit amount and panics if the
// amount is not representable. Intended for test setup.
func Must(amount float64) Money {
	m, err := New(amount)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v): %v", amount, err))
	}
	return m
}

// FromSmallestUnit creates a Money value directly from the smallest currency
// unit. Used for hydrating snapshot records.
func FromSmallestUnit(amount int64) Money {
	return Money{amount: amount}
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// Float returns the amount as a float64 in the major currency unit.
// Intended for display only; state never flows back through float64.
func (m Money) Float() float64 {
	amount := new(big.Rat).SetInt64(m.amount)
	divisor := new(big.Rat).SetInt64(int64(math.Pow10(Decimals)))
	result, _ := new(big.Rat).Quo(amount, divisor).Float64()
	return result
}

// Add returns the sum of the two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Subtract returns the difference of the two amounts. The result may be
// negative; callers enforce their own balance invariants.
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount - other.amount}
}

// Negate returns the amount with its sign flipped.
func (m Money) Negate() Money {
	return Money{amount: -m.amount}
}

// Equals reports whether both amounts are equal.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// MarshalJSON implements json.Marshaler, encoding the amount as a bare
// integer in the smallest currency unit.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount)
}

// UnmarshalJSON implements json.Unmarshaler, decoding a bare smallest-unit
// integer.
func (m *Money) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.amount)
}

// String renders the amount with the currency symbol, e.g. "₹500.00".
func (m Money) String() string {
	return fmt.Sprintf("%s%.*f", Symbol, Decimals, m.Float())
}
