package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		m, err := NewMoney(99950, 100)
		require.NoError(t, err)
		assert.Equal(t, "999.50", m.String())
	})

	t.Run("rejects non-positive denominator", func(t *testing.T) {
		_, err := NewMoney(1, 0)
		assert.Error(t, err)
		_, err = NewMoney(1, -5)
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MustMoney(1000, 1)
	b := MustMoney(250, 1)

	assert.True(t, a.Add(b).Equals(MustMoney(1250, 1)))
	assert.True(t, a.Subtract(b).Equals(MustMoney(750, 1)))
	assert.True(t, a.MultiplyByRat(big.NewRat(1, 4)).Equals(b))
	assert.True(t, b.Subtract(a).IsNegative())
	assert.True(t, b.Subtract(a).ClampZero().IsZero())

	t.Run("operations do not mutate operands", func(t *testing.T) {
		_ = a.Add(b)
		assert.Equal(t, "1000.00", a.String())
	})
}

func TestMoney_Round2(t *testing.T) {
	tests := []struct {
		name string
		in   *Money
		want string
	}{
		{"half rounds away from zero", MustMoney(12345, 1000), "12.35"},
		{"below half rounds down", MustMoney(12344, 1000), "12.34"},
		{"negative half rounds away from zero", MustMoney(-12345, 1000), "-12.35"},
		{"already two places", MustMoney(1050, 100), "10.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Round2().String())
		})
	}
}

func TestPercentage(t *testing.T) {
	t.Run("bounds", func(t *testing.T) {
		_, err := PercentageFromInt(-1)
		assert.ErrorIs(t, err, ErrInvalidDiscountPercent)
		_, err = PercentageFromInt(101)
		assert.ErrorIs(t, err, ErrInvalidDiscountPercent)
		_, err = PercentageFromInt(100)
		assert.NoError(t, err)
	})

	t.Run("zero value is zero percent", func(t *testing.T) {
		var p Percentage
		assert.True(t, p.IsZero())
		assert.Equal(t, "0", p.String())
		assert.True(t, p.Equals(MustPercentage(0)))
	})

	t.Run("string trims trailing zeros", func(t *testing.T) {
		p, err := NewPercentage(big.NewRat(25, 2))
		require.NoError(t, err)
		assert.Equal(t, "12.5", p.String())
		assert.Equal(t, "20", MustPercentage(20).String())
	})
}
