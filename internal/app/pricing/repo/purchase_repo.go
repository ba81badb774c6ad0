package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_purchase"
)

// PurchaseRepo implements PurchaseRepository for Spanner.
type PurchaseRepo struct {
	model *m_purchase.Model
}

func NewPurchaseRepo() contracts.PurchaseRepository {
	return &PurchaseRepo{model: m_purchase.NewModel()}
}

func (r *PurchaseRepo) InsertMut(p *domain.PurchaseSnapshot) *spanner.Mutation {
	data := &m_purchase.Data{
		PurchaseID:     p.ID,
		EntityID:       p.EntityID,
		UserID:         p.UserID,
		Currency:       string(p.Currency),
		PriceType:      string(p.Type),
		BaseAmount:     *p.Base.Rat(),
		EntityDiscount: *p.EntityDiscount.Rat(),
		CouponDiscount: *p.CouponDiscount.Rat(),
		FinalAmount:    *p.Final.Rat(),
		CreatedAt:      p.CreatedAt,
	}
	if p.CouponCode != "" {
		data.CouponCode = spanner.NullString{StringVal: p.CouponCode, Valid: true}
	}
	if p.PointsAwarded != nil {
		data.PointsAwarded = spanner.NullInt64{Int64: *p.PointsAwarded, Valid: true}
	}
	return r.model.InsertMut(data)
}
