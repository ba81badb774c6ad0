package location

import (
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

// DefaultTTL is how long a detected location stays valid.
const DefaultTTL = 24 * time.Hour

// UserLocation is the detected or chosen country of a visitor and the currency shown to them.
type UserLocation struct {
	Country        string    `json:"country"`
	CountryName    string    `json:"countryName"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currencySymbol"`
	DetectedAt     time.Time `json:"detectedAt"`
}

// NewUserLocation builds a location for a country code. Unknown codes map to Egypt.
// name overrides the table name when the provider supplied one for a known country.
func NewUserLocation(code, name string, loc locale.Locale, detectedAt time.Time) UserLocation {
	c, known := LookupCountry(code)
	if !known {
		c = CountryFor(DefaultCountry)
		name = ""
	}
	if name == "" {
		name = c.Name
	}
	return UserLocation{
		Country:        c.Code,
		CountryName:    name,
		Currency:       string(c.Currency),
		CurrencySymbol: c.Currency.Symbol(loc),
		DetectedAt:     detectedAt.UTC(),
	}
}

// Fresh reports whether loc was detected less than ttl before now.
func Fresh(loc UserLocation, now time.Time, ttl time.Duration) bool {
	if loc.DetectedAt.IsZero() {
		return false
	}
	return now.Sub(loc.DetectedAt) < ttl
}

// State is the resolution state of a visitor's location.
type State string

const (
	StateUnresolved State = "UNRESOLVED"
	StateResolving  State = "RESOLVING"
	StateResolved   State = "RESOLVED"
	StateFallback   State = "FALLBACK"
)

// Source names where a resolved location came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceIP       Source = "ip"
	SourceGeocode  Source = "geocode"
	SourceManual   Source = "manual"
	SourceFallback Source = "fallback"
)

var ErrIllegalTransition = errors.New("illegal location state transition")

var transitions = map[State][]State{
	StateUnresolved: {StateResolving, StateResolved},
	StateResolving:  {StateResolved, StateFallback},
	StateResolved:   {StateResolving, StateResolved},
	StateFallback:   {StateResolving, StateResolved},
}

// CanTransition reports whether moving from s to next is allowed.
// A manual choice may move any state except RESOLVING straight to RESOLVED.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// machine tracks the state of one resolution.
type machine struct {
	state State
}

func newMachine() *machine {
	return &machine{state: StateUnresolved}
}

func (m *machine) to(next State) error {
	if !m.state.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.state, next)
	}
	m.state = next
	return nil
}

// Result is the outcome of a resolution. Location is always usable, even on FALLBACK.
type Result struct {
	State    State        `json:"state"`
	Source   Source       `json:"source"`
	Location UserLocation `json:"location"`
}

// Localized returns a copy of l with the currency symbol for the given locale.
func (l UserLocation) Localized(loc locale.Locale) UserLocation {
	l.CurrencySymbol = CountryFor(l.Country).Currency.Symbol(loc)
	return l
}
