package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// PriceRepo implements PriceRepository for Spanner.
type PriceRepo struct {
	client *spanner.Client
	model  *m_price.Model
}

func NewPriceRepo(client *spanner.Client) contracts.PriceRepository {
	return &PriceRepo{client: client, model: m_price.NewModel()}
}

func (r *PriceRepo) InsertMut(entityID string, p *domain.Price) *spanner.Mutation {
	return r.model.InsertMut(&m_price.Data{
		EntityID:  entityID,
		PriceID:   p.ID(),
		Currency:  string(p.Currency()),
		PriceType: string(p.Type()),
		Amount:    *p.Amount().Rat(),
		CreatedAt: p.CreatedAt(),
	})
}

func (r *PriceRepo) SupersedeMut(entityID string, p *domain.Price) *spanner.Mutation {
	return r.model.SupersedeMut(entityID, p.ID())
}

// History lists all price records of an entity, newest first.
func (r *PriceRepo) History(ctx context.Context, entityID string, limit int) ([]contracts.PriceRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	stmt := query.From(m_price.TableName).
		Select(m_price.Columns...).
		Where(query.Eq(m_price.EntityID, entityID)).
		OrderBy(m_price.CreatedAt, query.Desc).
		Limit(int64(limit)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var records []contracts.PriceRecord
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate price history: %w", err)
		}
		var data m_price.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		rec := contracts.PriceRecord{Price: priceDataToDomain(&data)}
		if data.SupersededAt.Valid {
			t := data.SupersededAt.Time
			rec.SupersededAt = &t
		}
		records = append(records, rec)
	}
	return records, nil
}

func priceDataToDomain(data *m_price.Data) *domain.Price {
	return domain.ReconstructPrice(
		data.PriceID,
		domain.Currency(data.Currency),
		domain.PriceType(data.PriceType),
		domain.NewMoneyFromRat(&data.Amount),
		data.CreatedAt,
	)
}
