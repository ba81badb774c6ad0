package m_price

import "cloud.google.com/go/spanner"

// Model provides type-safe mutations for the prices table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a new price record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.EntityID,
		data.PriceID,
		data.Currency,
		data.PriceType,
		&data.Amount,
		data.CreatedAt,
		data.SupersededAt,
	})
}

// SupersedeMut marks a price record as replaced at the commit timestamp.
func (m *Model) SupersedeMut(entityID, priceID string) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{EntityID, PriceID, SupersededAt},
		[]interface{}{entityID, priceID, spanner.CommitTimestamp},
	)
}
