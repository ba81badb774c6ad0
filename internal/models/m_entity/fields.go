package m_entity

// Field name constants for the priced_entities table.
const (
	TableName = "priced_entities"

	EntityID              = "entity_id"
	Kind                  = "kind"
	Name                  = "name"
	DurationDays          = "duration_days"
	GiftDays              = "gift_days"
	DiscountPercent       = "discount_percent"
	NormalPointsAwarded   = "normal_points_awarded"
	NormalPointsRequired  = "normal_points_required"
	MedicalPointsAwarded  = "medical_points_awarded"
	MedicalPointsRequired = "medical_points_required"
	CreatedAt             = "created_at"
	UpdatedAt             = "updated_at"
)

// Columns lists every column in read order.
var Columns = []string{
	EntityID,
	Kind,
	Name,
	DurationDays,
	GiftDays,
	DiscountPercent,
	NormalPointsAwarded,
	NormalPointsRequired,
	MedicalPointsAwarded,
	MedicalPointsRequired,
	CreatedAt,
	UpdatedAt,
}
