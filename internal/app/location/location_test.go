package location

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

func TestCountryTable(t *testing.T) {
	assert.Equal(t, 18, Countries())

	c, ok := LookupCountry("ae")
	require.True(t, ok)
	assert.Equal(t, "AED", string(c.Currency))

	t.Run("unknown codes map to Egypt", func(t *testing.T) {
		for _, code := range []string{"US", "", "xx"} {
			c := CountryFor(code)
			assert.Equal(t, "EG", c.Code)
			assert.Equal(t, "EGP", string(c.Currency))
		}
	})
}

func TestFresh(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	at := func(d time.Duration) UserLocation { return UserLocation{DetectedAt: now.Add(-d)} }

	assert.True(t, Fresh(at(23*time.Hour), now, DefaultTTL))
	assert.False(t, Fresh(at(24*time.Hour), now, DefaultTTL))
	assert.False(t, Fresh(at(25*time.Hour), now, DefaultTTL))
	assert.False(t, Fresh(UserLocation{}, now, DefaultTTL))
}

func TestNewUserLocation(t *testing.T) {
	now := time.Now()
	l := NewUserLocation("SA", "Kingdom of Saudi Arabia", locale.Arabic, now)
	assert.Equal(t, "Kingdom of Saudi Arabia", l.CountryName)
	assert.Equal(t, "ر.س", l.CurrencySymbol)
	assert.Equal(t, "SAR", l.Localized(locale.English).CurrencySymbol)

	fallback := NewUserLocation("FR", "France", locale.English, now)
	assert.Equal(t, "Egypt", fallback.CountryName)
}

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateUnresolved, StateResolving, true},
		{StateUnresolved, StateResolved, true},
		{StateUnresolved, StateFallback, false},
		{StateResolving, StateResolved, true},
		{StateResolving, StateFallback, true},
		{StateResolving, StateUnresolved, false},
		{StateFallback, StateResolved, true},
		{StateResolved, StateUnresolved, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}

	m := newMachine()
	assert.ErrorIs(t, m.to(StateFallback), ErrIllegalTransition)
	assert.Equal(t, StateUnresolved, m.state)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewMemoryStore(clk)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotCached)

	require.NoError(t, s.Set(ctx, "k", UserLocation{Country: "QA"}, time.Hour))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "QA", got.Country)

	clk.Advance(time.Hour)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotCached)
}
