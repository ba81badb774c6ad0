package m_price

// Field name constants for the prices table. Rows are never updated except to set
// superseded_at; the current price of a slot is the row with superseded_at NULL.
const (
	TableName = "prices"

	EntityID     = "entity_id"
	PriceID      = "price_id"
	Currency     = "currency"
	PriceType    = "price_type"
	Amount       = "amount"
	CreatedAt    = "created_at"
	SupersededAt = "superseded_at"
)

var Columns = []string{EntityID, PriceID, Currency, PriceType, Amount, CreatedAt, SupersededAt}
