package m_entity

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe mutations for the priced_entities table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a new entity.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.EntityID,
		data.Kind,
		data.Name,
		data.DurationDays,
		data.GiftDays,
		data.DiscountPercent,
		data.NormalPointsAwarded,
		data.NormalPointsRequired,
		data.MedicalPointsAwarded,
		data.MedicalPointsRequired,
		data.CreatedAt,
		data.UpdatedAt,
	})
}

// UpdateMut creates a mutation writing only the given columns.
func (m *Model) UpdateMut(entityID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, EntityID)
	values = append(values, entityID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
