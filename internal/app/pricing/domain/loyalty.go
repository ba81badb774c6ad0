package domain

import "fmt"

// LoyaltyConfig is the loyalty setting for one price tier. A disabled config has
// both values absent, which is different from an enabled config awarding 0 points.
type LoyaltyConfig struct {
	pointsAwarded  *int64
	pointsRequired *int64
}

// DisabledLoyalty returns a config with no points awarded or required.
func DisabledLoyalty() LoyaltyConfig {
	return LoyaltyConfig{}
}

// EnabledLoyalty validates and builds an enabled config.
func EnabledLoyalty(awarded, required int64) (LoyaltyConfig, error) {
	if awarded < 0 || required < 0 {
		return LoyaltyConfig{}, fmt.Errorf("%w: awarded=%d required=%d", ErrInvalidLoyaltyPoints, awarded, required)
	}
	return LoyaltyConfig{pointsAwarded: &awarded, pointsRequired: &required}, nil
}

// ReconstructLoyalty loads stored, possibly NULL, values.
func ReconstructLoyalty(awarded, required *int64) LoyaltyConfig {
	return LoyaltyConfig{pointsAwarded: copyInt(awarded), pointsRequired: copyInt(required)}
}

func (l LoyaltyConfig) Enabled() bool {
	return l.pointsAwarded != nil || l.pointsRequired != nil
}

func (l LoyaltyConfig) PointsAwarded() *int64  { return copyInt(l.pointsAwarded) }
func (l LoyaltyConfig) PointsRequired() *int64 { return copyInt(l.pointsRequired) }

func copyInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
