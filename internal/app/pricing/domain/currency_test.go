package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" egp ")
	require.NoError(t, err)
	assert.Equal(t, EGP, c)

	_, err = ParseCurrency("XYZ")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	t.Run("geolocation currencies are not pricing currencies", func(t *testing.T) {
		_, err := ParseCurrency("KWD")
		require.NoError(t, err)
		_, err = ParsePricingCurrency("KWD")
		assert.ErrorIs(t, err, ErrUnsupportedCurrency)
	})
}

func TestPricingCurrencies(t *testing.T) {
	assert.Equal(t, []Currency{EGP, SAR, AED, USD}, PricingCurrencies())
	for _, c := range PricingCurrencies() {
		assert.True(t, c.IsPricing(), c)
	}
	assert.Len(t, AllCurrencies(), 19)
}

func TestCurrency_Symbol(t *testing.T) {
	assert.Equal(t, "EGP", EGP.Symbol(locale.English))
	assert.Equal(t, "ج.م", EGP.Symbol(locale.Arabic))
	assert.Equal(t, "$", USD.Symbol(locale.Arabic))
	assert.Equal(t, "XYZ", Currency("XYZ").Symbol(locale.English))
	assert.Equal(t, "Saudi Riyal", SAR.Name(locale.English))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   *Money
		currency Currency
		loc      locale.Locale
		want     string
	}{
		{"whole amount has no decimals", MustMoney(700, 1), EGP, locale.English, "700 EGP"},
		{"fractional amount has two decimals", MustMoney(69950, 100), EGP, locale.English, "699.50 EGP"},
		{"arabic symbol", MustMoney(700, 1), EGP, locale.Arabic, "700 ج.م"},
		{"dollar prefix", MustMoney(1250, 100), USD, locale.English, "$12.50"},
		{"rounds to whole", MustMoney(699999, 1000), SAR, locale.English, "700 SAR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency, tt.loc))
		})
	}
}
