package location

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/locale"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

// ErrEmptyKey is returned when a manual choice has no visitor key to store it under.
var ErrEmptyKey = errors.New("visitor key is required")

// Request describes the visitor whose location is resolved.
type Request struct {
	// Key identifies the visitor's cache entry (session or device id). Empty disables caching.
	Key         string
	ClientIP    string
	Coordinates *Coordinates
	Locale      locale.Locale
}

// Resolver detects a visitor's country: cache first, then IP lookup, then reverse
// geocoding, then the Egypt fallback. It never returns an error to the caller.
type Resolver struct {
	store   Store
	ip      IPLookup
	geo     ReverseGeocoder
	clock   clock.Clock
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewResolver wires a Resolver. A zero ttl means DefaultTTL.
func NewResolver(store Store, ip IPLookup, geo ReverseGeocoder, clk clock.Clock, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, ip: ip, geo: geo, clock: clk, ttl: ttl, logger: logger, metrics: m}
}

// TTL returns the freshness window applied to cached locations.
func (r *Resolver) TTL() time.Duration {
	return r.ttl
}

// Resolve runs the detection chain. Cancelling ctx stops any in-flight lookup and
// yields the fallback without touching the cache.
func (r *Resolver) Resolve(ctx context.Context, req Request) Result {
	m := newMachine()
	log := r.logger.With(zap.String("key", req.Key))

	if cached, ok := r.cached(ctx, req.Key, log); ok {
		return r.finish(m, StateResolved, SourceCache, cached.Localized(req.Locale))
	}

	r.mustTransition(m, StateResolving)

	det, source, err := r.detect(ctx, req, log)
	if err != nil {
		log.Warn("location detection failed, using fallback", zap.Error(err))
		return r.fallback(m, req.Locale)
	}

	if _, known := LookupCountry(det.CountryCode); !known {
		log.Warn("detected country is not supported, using fallback",
			zap.String("country", det.CountryCode),
			zap.String("source", string(source)),
		)
		return r.fallback(m, req.Locale)
	}

	loc := NewUserLocation(det.CountryCode, det.CountryName, req.Locale, r.clock.Now())
	r.save(ctx, req.Key, loc, log)
	return r.finish(m, StateResolved, source, loc)
}

// SetManually stores the visitor's explicit choice so later resolutions return it until
// it expires. Unknown codes map to Egypt.
func (r *Resolver) SetManually(ctx context.Context, key, countryCode string, loc locale.Locale) (Result, error) {
	if strings.TrimSpace(key) == "" {
		return Result{}, ErrEmptyKey
	}
	ul := NewUserLocation(countryCode, "", loc, r.clock.Now())
	if err := r.store.Set(ctx, key, ul, r.ttl); err != nil {
		return Result{}, err
	}

	m := newMachine()
	return r.finish(m, StateResolved, SourceManual, ul), nil
}

func (r *Resolver) cached(ctx context.Context, key string, log *zap.Logger) (UserLocation, bool) {
	if key == "" || r.store == nil {
		return UserLocation{}, false
	}
	loc, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotCached) {
			log.Warn("location cache read failed", zap.Error(err))
		}
		return UserLocation{}, false
	}
	if !Fresh(loc, r.clock.Now(), r.ttl) {
		log.Debug("cached location expired", zap.Time("detected_at", loc.DetectedAt))
		return UserLocation{}, false
	}
	return loc, true
}

func (r *Resolver) detect(ctx context.Context, req Request, log *zap.Logger) (Detection, Source, error) {
	var ipErr error
	if r.ip != nil {
		det, err := r.ip.LookupIP(ctx, req.ClientIP)
		if err == nil {
			return det, SourceIP, nil
		}
		ipErr = err
		log.Info("ip lookup failed, trying coordinates", zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return Detection{}, "", err
	}

	if req.Coordinates == nil {
		return Detection{}, "", errors.Join(ipErr, errors.New("geolocation permission denied"))
	}
	if r.geo == nil {
		return Detection{}, "", errors.Join(ipErr, errors.New("no reverse geocoder configured"))
	}

	det, err := r.geo.ReverseGeocode(ctx, *req.Coordinates)
	if err != nil {
		return Detection{}, "", errors.Join(ipErr, err)
	}
	return det, SourceGeocode, nil
}

func (r *Resolver) save(ctx context.Context, key string, loc UserLocation, log *zap.Logger) {
	if key == "" || r.store == nil {
		return
	}
	if err := r.store.Set(ctx, key, loc, r.ttl); err != nil {
		log.Warn("location cache write failed", zap.Error(err))
	}
}

func (r *Resolver) fallback(m *machine, loc locale.Locale) Result {
	ul := NewUserLocation(DefaultCountry, "", loc, r.clock.Now())
	return r.finish(m, StateFallback, SourceFallback, ul)
}

func (r *Resolver) finish(m *machine, state State, source Source, loc UserLocation) Result {
	r.mustTransition(m, state)
	r.metrics.ObserveLocation(string(source))
	return Result{State: m.state, Source: source, Location: loc}
}

// mustTransition panics on a transition the resolver itself never requests.
func (r *Resolver) mustTransition(m *machine, next State) {
	if err := m.to(next); err != nil {
		panic(err)
	}
}
