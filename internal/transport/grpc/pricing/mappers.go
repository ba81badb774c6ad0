package pricing

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/amount"
)

// fields reads typed values out of a request Struct. Missing and null fields read as zero.
type fields struct {
	s *structpb.Struct
}

func (f fields) value(name string) *structpb.Value {
	v := f.s.GetFields()[name]
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	return v
}

func (f fields) has(name string) bool {
	return f.value(name) != nil
}

func (f fields) str(name string) string {
	return f.value(name).GetStringValue()
}

func (f fields) boolean(name string) bool {
	return f.value(name).GetBoolValue()
}

func (f fields) integer(name string) (int64, error) {
	v := f.value(name)
	if v == nil {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > 1<<53 {
		return 0, invalidArg("%s must be an integer", name)
	}
	return int64(n.NumberValue), nil
}

// rat accepts a decimal string, a JSON number or a big-decimal object; nil when absent.
func (f fields) rat(name string) (*big.Rat, error) {
	v := f.value(name)
	if v == nil {
		return nil, nil
	}
	return valueRat(name, v)
}

func (f fields) instant(name string) (*time.Time, error) {
	s := f.str(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, invalidArg("%s must be an RFC 3339 timestamp", name)
	}
	return &t, nil
}

func (f fields) list(name string) []*structpb.Value {
	return f.value(name).GetListValue().GetValues()
}

func (f fields) object(name string) fields {
	return fields{s: f.value(name).GetStructValue()}
}

func valueRat(name string, v *structpb.Value) (*big.Rat, error) {
	raw, err := protojson.Marshal(v)
	if err != nil {
		return nil, invalidArg("%s: %v", name, err)
	}
	r, err := amount.Parse(raw)
	if err != nil {
		return nil, invalidArg("%s: %v", name, err)
	}
	return r, nil
}

func invalidArg(format string, args ...any) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf(format, args...))
}

// Response values are restricted to what structpb.NewValue accepts.

func money(m *domain.Money) any {
	if m == nil {
		return nil
	}
	return m.String()
}

func timestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func optionalInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func anyStrings(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func breakdownMap(b *domain.Breakdown) map[string]any {
	return map[string]any{
		"base":           money(b.Base),
		"entityDiscount": money(b.EntityDiscount),
		"couponDiscount": money(b.CouponDiscount),
		"totalDiscount":  money(b.TotalDiscount()),
		"final":          money(b.Final),
	}
}

func loyaltyMap(l domain.LoyaltyConfig) any {
	if !l.Enabled() {
		return nil
	}
	return map[string]any{
		"pointsAwarded":  optionalInt(l.PointsAwarded()),
		"pointsRequired": optionalInt(l.PointsRequired()),
	}
}

func purchaseMap(p *domain.PurchaseSnapshot) map[string]any {
	return map[string]any{
		"purchaseId":     p.ID,
		"entityId":       p.EntityID,
		"userId":         p.UserID,
		"currency":       string(p.Currency),
		"type":           string(p.Type),
		"base":           money(p.Base),
		"entityDiscount": money(p.EntityDiscount),
		"couponCode":     p.CouponCode,
		"couponDiscount": money(p.CouponDiscount),
		"final":          money(p.Final),
		"pointsAwarded":  optionalInt(p.PointsAwarded),
		"createdAt":      timestamp(p.CreatedAt),
	}
}

func priceRecordMap(r contracts.PriceRecord) map[string]any {
	out := map[string]any{
		"priceId":      r.Price.ID(),
		"currency":     string(r.Price.Currency()),
		"type":         string(r.Price.Type()),
		"amount":       money(r.Price.Amount()),
		"createdAt":    timestamp(r.Price.CreatedAt()),
		"supersededAt": nil,
	}
	if r.SupersededAt != nil {
		out["supersededAt"] = timestamp(*r.SupersededAt)
	}
	return out
}

func eventMap(e contracts.EventDTO) map[string]any {
	return map[string]any{
		"eventId":     e.EventID,
		"eventType":   e.EventType,
		"aggregateId": e.AggregateID,
		"payload":     e.Payload,
		"status":      e.Status,
		"createdAt":   timestamp(e.CreatedAt),
	}
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return s, nil
}
