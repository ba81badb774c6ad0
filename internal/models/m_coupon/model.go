package m_coupon

import "cloud.google.com/go/spanner"

// Model provides type-safe mutations for the coupons table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates or replaces a coupon.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns, []interface{}{
		data.Code,
		&data.Percentage,
		data.Active,
		data.ExpiresAt,
		data.CreatedAt,
	})
}
