package m_price

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the prices table.
type Data struct {
	EntityID     string           `spanner:"entity_id"`
	PriceID      string           `spanner:"price_id"`
	Currency     string           `spanner:"currency"`
	PriceType    string           `spanner:"price_type"`
	Amount       big.Rat          `spanner:"amount"`
	CreatedAt    time.Time        `spanner:"created_at"`
	SupersededAt spanner.NullTime `spanner:"superseded_at"`
}
