package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_entity"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// EntityRepo implements EntityRepository for Spanner.
type EntityRepo struct {
	client *spanner.Client
	model  *m_entity.Model
	clock  clock.Clock
}

// NewEntityRepo creates a new EntityRepo.
func NewEntityRepo(client *spanner.Client, clk clock.Clock) contracts.EntityRepository {
	return &EntityRepo{
		client: client,
		model:  m_entity.NewModel(),
		clock:  clk,
	}
}

func (r *EntityRepo) InsertMut(e *domain.PricedEntity) *spanner.Mutation {
	return r.model.InsertMut(r.domainToData(e))
}

// UpdateMut creates a mutation for the dirty columns only.
func (r *EntityRepo) UpdateMut(e *domain.PricedEntity) *spanner.Mutation {
	changes := e.Changes()
	if !changes.HasChanges() {
		return nil
	}

	data := r.domainToData(e)
	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_entity.Name] = data.Name
	}
	if changes.Dirty(domain.FieldDuration) {
		updates[m_entity.DurationDays] = data.DurationDays
	}
	if changes.Dirty(domain.FieldGiftDays) {
		updates[m_entity.GiftDays] = data.GiftDays
	}
	if changes.Dirty(domain.FieldDiscount) {
		updates[m_entity.DiscountPercent] = data.DiscountPercent
	}
	if changes.Dirty(domain.FieldLoyaltyNormal) {
		updates[m_entity.NormalPointsAwarded] = data.NormalPointsAwarded
		updates[m_entity.NormalPointsRequired] = data.NormalPointsRequired
	}
	if changes.Dirty(domain.FieldLoyaltyMedical) {
		updates[m_entity.MedicalPointsAwarded] = data.MedicalPointsAwarded
		updates[m_entity.MedicalPointsRequired] = data.MedicalPointsRequired
	}

	updates[m_entity.UpdatedAt] = e.UpdatedAt()

	return r.model.UpdateMut(e.ID(), updates)
}

// GetByID reads the entity row and its current prices in one snapshot.
func (r *EntityRepo) GetByID(ctx context.Context, entityID string) (*domain.PricedEntity, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_entity.TableName, spanner.Key{entityID}, m_entity.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to read entity: %w", err)
	}

	var data m_entity.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse entity: %w", err)
	}

	stmt := query.From(m_price.TableName).
		Select(m_price.Columns...).
		Where(query.Eq(m_price.EntityID, entityID)).
		Where(query.IsNull(m_price.SupersededAt)).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var prices []*domain.Price
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate prices: %w", err)
		}
		var pd m_price.Data
		if err := row.ToStruct(&pd); err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		prices = append(prices, priceDataToDomain(&pd))
	}

	return r.dataToDomain(&data, prices)
}

func (r *EntityRepo) domainToData(e *domain.PricedEntity) *m_entity.Data {
	data := &m_entity.Data{
		EntityID:        e.ID(),
		Kind:            string(e.Kind()),
		Name:            e.Name(),
		DurationDays:    e.DurationDays(),
		GiftDays:        e.GiftDays(),
		DiscountPercent: spanner.NullNumeric{Numeric: *e.Discount().Rat(), Valid: true},
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}

	data.NormalPointsAwarded, data.NormalPointsRequired = loyaltyToData(e.Loyalty(domain.PriceNormal))
	data.MedicalPointsAwarded, data.MedicalPointsRequired = loyaltyToData(e.Loyalty(domain.PriceMedical))
	return data
}

func (r *EntityRepo) dataToDomain(data *m_entity.Data, prices []*domain.Price) (*domain.PricedEntity, error) {
	var discount domain.Percentage
	if data.DiscountPercent.Valid {
		var err error
		discount, err = domain.NewPercentage(&data.DiscountPercent.Numeric)
		if err != nil {
			return nil, fmt.Errorf("invalid stored discount: %w", err)
		}
	}

	loyalty := map[domain.PriceType]domain.LoyaltyConfig{
		domain.PriceNormal:  domain.ReconstructLoyalty(nullInt(data.NormalPointsAwarded), nullInt(data.NormalPointsRequired)),
		domain.PriceMedical: domain.ReconstructLoyalty(nullInt(data.MedicalPointsAwarded), nullInt(data.MedicalPointsRequired)),
	}

	return domain.ReconstructPricedEntity(
		data.EntityID,
		domain.EntityKind(data.Kind),
		data.Name,
		data.DurationDays,
		data.GiftDays,
		prices,
		discount,
		loyalty,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}

func loyaltyToData(cfg domain.LoyaltyConfig) (awarded, required spanner.NullInt64) {
	if v := cfg.PointsAwarded(); v != nil {
		awarded = spanner.NullInt64{Int64: *v, Valid: true}
	}
	if v := cfg.PointsRequired(); v != nil {
		required = spanner.NullInt64{Int64: *v, Valid: true}
	}
	return awarded, required
}

func nullInt(v spanner.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
