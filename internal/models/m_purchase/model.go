package m_purchase

import "cloud.google.com/go/spanner"

// Model provides type-safe mutations for the purchases table. Purchases are append-only.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.PurchaseID,
		data.EntityID,
		data.UserID,
		data.Currency,
		data.PriceType,
		&data.BaseAmount,
		&data.EntityDiscount,
		data.CouponCode,
		&data.CouponDiscount,
		&data.FinalAmount,
		data.PointsAwarded,
		data.CreatedAt,
	})
}
