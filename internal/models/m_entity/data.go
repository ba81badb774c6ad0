package m_entity

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the priced_entities table.
type Data struct {
	EntityID              string              `spanner:"entity_id"`
	Kind                  string              `spanner:"kind"`
	Name                  string              `spanner:"name"`
	DurationDays          int64               `spanner:"duration_days"`
	GiftDays              int64               `spanner:"gift_days"`
	DiscountPercent       spanner.NullNumeric `spanner:"discount_percent"`
	NormalPointsAwarded   spanner.NullInt64   `spanner:"normal_points_awarded"`
	NormalPointsRequired  spanner.NullInt64   `spanner:"normal_points_required"`
	MedicalPointsAwarded  spanner.NullInt64   `spanner:"medical_points_awarded"`
	MedicalPointsRequired spanner.NullInt64   `spanner:"medical_points_required"`
	CreatedAt             time.Time           `spanner:"created_at"`
	UpdatedAt             time.Time           `spanner:"updated_at"`
}
