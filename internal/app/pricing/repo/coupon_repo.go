package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_coupon"
)

// CouponRepo implements CouponRepository for Spanner.
type CouponRepo struct {
	client *spanner.Client
	model  *m_coupon.Model
}

func NewCouponRepo(client *spanner.Client) contracts.CouponRepository {
	return &CouponRepo{client: client, model: m_coupon.NewModel()}
}

func (r *CouponRepo) UpsertMut(c *domain.Coupon, now time.Time) *spanner.Mutation {
	data := &m_coupon.Data{
		Code:       c.Code(),
		Percentage: *c.Percentage().Rat(),
		Active:     c.Active(),
		CreatedAt:  now,
	}
	if exp := c.ExpiresAt(); exp != nil {
		data.ExpiresAt = spanner.NullTime{Time: *exp, Valid: true}
	}
	return r.model.UpsertMut(data)
}

func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	code = domain.NormalizeCouponCode(code)
	row, err := r.client.Single().ReadRow(ctx, m_coupon.TableName, spanner.Key{code}, m_coupon.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to read coupon: %w", err)
	}

	var data m_coupon.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse coupon: %w", err)
	}

	pct, err := domain.NewPercentage(&data.Percentage)
	if err != nil {
		return nil, fmt.Errorf("invalid stored coupon percentage: %w", err)
	}
	var expiresAt *time.Time
	if data.ExpiresAt.Valid {
		t := data.ExpiresAt.Time
		expiresAt = &t
	}
	return domain.NewCoupon(data.Code, pct, data.Active, expiresAt)
}
