// Package pricing is the admin gRPC surface. Messages are google.protobuf.Struct envelopes
// whose fields are documented on each AdminServer method; amounts travel as decimal strings.
package pricing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pricing.admin.v1.PricingAdmin"

// AdminServer is implemented by Handler.
type AdminServer interface {
	// {kind, name, durationDays, giftDays, discountPercent, prices:[{currency, type, amount}]} -> {entityId}
	CreateEntity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, prices:[{currency, type, amount}], remove:[{currency, type}]} -> {}
	SetPrices(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, factorPercent} -> {suggestions:[{currency, normal, medical, current}]}
	SuggestMedicalPrices(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, factorPercent, overrides:{CUR: amount}} -> {applied:{CUR: amount}}
	ApplyMedicalPrices(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, percent} -> {}
	UpdateDiscount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, type, enabled, pointsAwarded, pointsRequired} -> {}
	UpdateLoyalty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {code, percent, active, expiresAt} -> {code}
	UpsertCoupon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, currency, type, couponCode, locale} -> breakdown
	Quote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, userId, currency, type, couponCode} -> purchase snapshot
	Checkout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {from, to} -> {lines, totalUsd, purchases, skipped, ratesUpdatedAt, source, stale}
	RevenueReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {entityId, limit} -> {records:[...]}
	PriceHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// {aggregateId, limit} -> {events:[...]}
	ListEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AdminServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func method(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AdminServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AdminServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the admin service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		method("CreateEntity", AdminServer.CreateEntity),
		method("SetPrices", AdminServer.SetPrices),
		method("SuggestMedicalPrices", AdminServer.SuggestMedicalPrices),
		method("ApplyMedicalPrices", AdminServer.ApplyMedicalPrices),
		method("UpdateDiscount", AdminServer.UpdateDiscount),
		method("UpdateLoyalty", AdminServer.UpdateLoyalty),
		method("UpsertCoupon", AdminServer.UpsertCoupon),
		method("Quote", AdminServer.Quote),
		method("Checkout", AdminServer.Checkout),
		method("RevenueReport", AdminServer.RevenueReport),
		method("PriceHistory", AdminServer.PriceHistory),
		method("ListEvents", AdminServer.ListEvents),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/admin/v1/admin.proto",
}

// Register adds srv to s.
func Register(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the admin service over any connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with req converted to a Struct.
func (c *Client) Call(ctx context.Context, method string, req map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
