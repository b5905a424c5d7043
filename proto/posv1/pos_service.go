// Package posv1 carries the POSService wire contract described in
// proto/pos.proto. Messages are google.protobuf.Struct, so the service
// descriptor and client are kept by hand instead of generated.
package posv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "pos.v1.POSService"

const (
	MethodListMenu        = "ListMenu"
	MethodUpsertItem      = "UpsertItem"
	MethodRemoveItem      = "RemoveItem"
	MethodSetAvailability = "SetAvailability"
	MethodSetImage        = "SetImage"
	MethodGetCart         = "GetCart"
	MethodAddItem         = "AddItem"
	MethodUpdateQuantity  = "UpdateQuantity"
	MethodRemoveLine      = "RemoveLine"
	MethodClearCart       = "ClearCart"
	MethodCompleteSale    = "CompleteSale"
	MethodReceipt         = "Receipt"
	MethodMonthlySales    = "MonthlySales"
	MethodMonthlyReport   = "MonthlyReport"
	MethodGetSettings     = "GetSettings"
	MethodSetSettings     = "SetSettings"
	MethodPaymentRequest  = "PaymentRequest"
)

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type POSServiceServer interface {
	ListMenu(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpsertItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAvailability(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetImage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateQuantity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveLine(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearCart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompleteSale(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Receipt(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MonthlySales(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MonthlyReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PaymentRequest(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(POSServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(POSServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(POSServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var POSService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*POSServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodListMenu, POSServiceServer.ListMenu),
		unaryMethod(MethodUpsertItem, POSServiceServer.UpsertItem),
		unaryMethod(MethodRemoveItem, POSServiceServer.RemoveItem),
		unaryMethod(MethodSetAvailability, POSServiceServer.SetAvailability),
		unaryMethod(MethodSetImage, POSServiceServer.SetImage),
		unaryMethod(MethodGetCart, POSServiceServer.GetCart),
		unaryMethod(MethodAddItem, POSServiceServer.AddItem),
		unaryMethod(MethodUpdateQuantity, POSServiceServer.UpdateQuantity),
		unaryMethod(MethodRemoveLine, POSServiceServer.RemoveLine),
		unaryMethod(MethodClearCart, POSServiceServer.ClearCart),
		unaryMethod(MethodCompleteSale, POSServiceServer.CompleteSale),
		unaryMethod(MethodReceipt, POSServiceServer.Receipt),
		unaryMethod(MethodMonthlySales, POSServiceServer.MonthlySales),
		unaryMethod(MethodMonthlyReport, POSServiceServer.MonthlyReport),
		unaryMethod(MethodGetSettings, POSServiceServer.GetSettings),
		unaryMethod(MethodSetSettings, POSServiceServer.SetSettings),
		unaryMethod(MethodPaymentRequest, POSServiceServer.PaymentRequest),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pos.proto",
}

func RegisterPOSServiceServer(s grpc.ServiceRegistrar, srv POSServiceServer) {
	s.RegisterService(&POSService_ServiceDesc, srv)
}

// POSServiceClient calls POSService methods by name.
type POSServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPOSServiceClient(cc grpc.ClientConnInterface) *POSServiceClient {
	return &POSServiceClient{cc: cc}
}

func (c *POSServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
