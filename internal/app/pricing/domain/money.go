package domain

import (
	"fmt"
	"math/big"

	"github.com/light-bringer/pricing-service/internal/pkg/amount"
)

// Money is an exact monetary amount backed by big.Rat. The currency travels alongside it
// (see Price), never inside it. Money values are immutable; every operation returns a new value.
type Money struct {
	rat *big.Rat
}

// NewMoney creates Money from numerator/denominator, e.g. NewMoney(99950, 100) is 999.50.
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator <= 0 {
		return nil, fmt.Errorf("denominator must be positive, got %d", denominator)
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustMoney is NewMoney for constants and tests; it panics on a bad denominator.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat copies r into a new Money. A nil r yields zero.
func NewMoneyFromRat(r *big.Rat) *Money {
	if r == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(r)}
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// Rat returns a copy of the underlying rational.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat scales the amount by r.
func (m *Money) MultiplyByRat(r *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, r)}
}

// ClampZero returns the amount, or zero when it is negative.
func (m *Money) ClampZero() *Money {
	if m.IsNegative() {
		return Zero()
	}
	return m.Copy()
}

// Round2 rounds to two decimal places, half away from zero.
func (m *Money) Round2() *Money {
	return &Money{rat: amount.Round2(m.rat)}
}

func (m *Money) IsZero() bool     { return m.rat.Sign() == 0 }
func (m *Money) IsNegative() bool { return m.rat.Sign() < 0 }
func (m *Money) IsPositive() bool { return m.rat.Sign() > 0 }

func (m *Money) LessThan(other *Money) bool    { return m.rat.Cmp(other.rat) < 0 }
func (m *Money) GreaterThan(other *Money) bool { return m.rat.Cmp(other.rat) > 0 }
func (m *Money) Equals(other *Money) bool      { return m.rat.Cmp(other.rat) == 0 }

// IsWhole reports whether the amount has no fractional part.
func (m *Money) IsWhole() bool {
	return m.rat.IsInt()
}

// Float64 returns an approximation for display and metrics only.
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String renders the amount with two decimals.
func (m *Money) String() string {
	return amount.Format(m.rat, 2)
}

// Copy returns a deep copy.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
