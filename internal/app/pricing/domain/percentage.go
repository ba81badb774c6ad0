package domain

import (
	"fmt"
	"math/big"
	"strings"
)

var hundred = big.NewRat(100, 1)

// Percentage is a discount rate in [0, 100]. The zero value is 0%.
type Percentage struct {
	rat *big.Rat
}

// NewPercentage validates r and wraps it.
func NewPercentage(r *big.Rat) (Percentage, error) {
	if r == nil {
		return Percentage{}, nil
	}
	if r.Sign() < 0 || r.Cmp(hundred) > 0 {
		return Percentage{}, fmt.Errorf("%w, got %s", ErrInvalidDiscountPercent, r.FloatString(2))
	}
	return Percentage{rat: new(big.Rat).Set(r)}, nil
}

// PercentageFromInt builds a whole-number percentage.
func PercentageFromInt(n int64) (Percentage, error) {
	return NewPercentage(big.NewRat(n, 1))
}

// MustPercentage is PercentageFromInt for constants and tests.
func MustPercentage(n int64) Percentage {
	p, err := PercentageFromInt(n)
	if err != nil {
		panic(err)
	}
	return p
}

// Rat returns a copy of the rate (e.g. 20 for 20%).
func (p Percentage) Rat() *big.Rat {
	if p.rat == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.rat)
}

// Multiplier returns the rate divided by 100.
func (p Percentage) Multiplier() *big.Rat {
	return new(big.Rat).Quo(p.Rat(), hundred)
}

func (p Percentage) IsZero() bool {
	return p.rat == nil || p.rat.Sign() == 0
}

func (p Percentage) Equals(other Percentage) bool {
	return p.Rat().Cmp(other.Rat()) == 0
}

// String renders the rate without trailing zeros: "20", "12.5".
func (p Percentage) String() string {
	s := p.Rat().FloatString(4)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
