package domain

import "math/big"

// Breakdown is the result of applying discounts to a base price.
type Breakdown struct {
	Base           *Money
	EntityDiscount *Money
	CouponDiscount *Money
	Final          *Money
}

// TotalDiscount is the sum of both discount amounts.
func (b *Breakdown) TotalDiscount() *Money {
	return b.EntityDiscount.Add(b.CouponDiscount)
}

// Rounded returns the breakdown in whole cents. Each discount is rounded on its own and
// Final is derived from the rounded lines, so base minus discounts always equals final.
func (b *Breakdown) Rounded() *Breakdown {
	base := b.Base.Round2()
	entity := b.EntityDiscount.Round2()
	coupon := b.CouponDiscount.Round2()
	return &Breakdown{
		Base:           base,
		EntityDiscount: entity,
		CouponDiscount: coupon,
		Final:          base.Subtract(entity).Subtract(coupon).ClampZero(),
	}
}

// PricingCalculator is the discount engine. Both discounts are computed on the original
// base price and added together; they never compound.
type PricingCalculator struct{}

func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// DiscountAmount returns base * pct / 100.
func (pc *PricingCalculator) DiscountAmount(base *Money, pct Percentage) *Money {
	return base.MultiplyByRat(pct.Multiplier())
}

// Apply computes the breakdown for base with the entity discount and an optional coupon.
//
//	afterEntity    = base * (1 - e/100)
//	entityDiscount = base - afterEntity
//	couponDiscount = base * c/100
//	final          = max(0, base - entityDiscount - couponDiscount)
func (pc *PricingCalculator) Apply(base *Money, entity Percentage, coupon *Percentage) *Breakdown {
	keep := new(big.Rat).Sub(big.NewRat(1, 1), entity.Multiplier())
	afterEntity := base.MultiplyByRat(keep)
	entityDiscount := base.Subtract(afterEntity)

	couponDiscount := Zero()
	if coupon != nil {
		couponDiscount = pc.DiscountAmount(base, *coupon)
	}

	final := base.Subtract(entityDiscount).Subtract(couponDiscount).ClampZero()

	return &Breakdown{
		Base:           base.Copy(),
		EntityDiscount: entityDiscount,
		CouponDiscount: couponDiscount,
		Final:          final,
	}
}
