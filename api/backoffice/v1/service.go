// Package backofficev1 описывает gRPC API бэк-офиса: сообщения, дескриптор
// сервиса и клиент. Сообщения передаются в JSON через кодек CodecName.
package backofficev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "backoffice.v1.BackofficeService"

// Полные имена методов.
const (
	MethodRegisterCustomer   = "/" + ServiceName + "/RegisterCustomer"
	MethodListCustomers      = "/" + ServiceName + "/ListCustomers"
	MethodLookupPostalCode   = "/" + ServiceName + "/LookupPostalCode"
	MethodListCities         = "/" + ServiceName + "/ListCities"
	MethodCreateOrder        = "/" + ServiceName + "/CreateOrder"
	MethodUpdateOrderStatus  = "/" + ServiceName + "/UpdateOrderStatus"
	MethodListOrders         = "/" + ServiceName + "/ListOrders"
	MethodGetOrder           = "/" + ServiceName + "/GetOrder"
	MethodListPaymentMethods = "/" + ServiceName + "/ListPaymentMethods"
	MethodListChannels       = "/" + ServiceName + "/ListChannels"
	MethodListCategories     = "/" + ServiceName + "/ListCategories"
	MethodListProducts       = "/" + ServiceName + "/ListProducts"
	MethodGetDashboardStats  = "/" + ServiceName + "/GetDashboardStats"
	MethodRevenueByDay       = "/" + ServiceName + "/RevenueByDay"
	MethodOrdersByDay        = "/" + ServiceName + "/OrdersByDay"
	MethodLatestOrders       = "/" + ServiceName + "/LatestOrders"
)

// BackofficeServiceServer описывает серверную часть API.
type BackofficeServiceServer interface {
	RegisterCustomer(context.Context, *RegisterCustomerRequest) (*OperationResponse, error)
	ListCustomers(context.Context, *emptypb.Empty) (*ListCustomersResponse, error)
	LookupPostalCode(context.Context, *LookupPostalCodeRequest) (*LookupPostalCodeResponse, error)
	ListCities(context.Context, *emptypb.Empty) (*ListCitiesResponse, error)
	CreateOrder(context.Context, *CreateOrderRequest) (*OperationResponse, error)
	UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*OperationResponse, error)
	ListOrders(context.Context, *emptypb.Empty) (*ListOrdersResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*OrderDetails, error)
	ListPaymentMethods(context.Context, *emptypb.Empty) (*ListPaymentMethodsResponse, error)
	ListChannels(context.Context, *emptypb.Empty) (*ListChannelsResponse, error)
	ListCategories(context.Context, *emptypb.Empty) (*ListCategoriesResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	GetDashboardStats(context.Context, *emptypb.Empty) (*DashboardStatsResponse, error)
	RevenueByDay(context.Context, *ReportWindowRequest) (*RevenueByDayResponse, error)
	OrdersByDay(context.Context, *ReportWindowRequest) (*OrdersByDayResponse, error)
	LatestOrders(context.Context, *LatestOrdersRequest) (*LatestOrdersResponse, error)
}

// UnimplementedBackofficeServiceServer отвечает Unimplemented на все методы.
type UnimplementedBackofficeServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedBackofficeServiceServer) RegisterCustomer(context.Context, *RegisterCustomerRequest) (*OperationResponse, error) {
	return nil, unimplemented("RegisterCustomer")
}
func (UnimplementedBackofficeServiceServer) ListCustomers(context.Context, *emptypb.Empty) (*ListCustomersResponse, error) {
	return nil, unimplemented("ListCustomers")
}
func (UnimplementedBackofficeServiceServer) LookupPostalCode(context.Context, *LookupPostalCodeRequest) (*LookupPostalCodeResponse, error) {
	return nil, unimplemented("LookupPostalCode")
}
func (UnimplementedBackofficeServiceServer) ListCities(context.Context, *emptypb.Empty) (*ListCitiesResponse, error) {
	return nil, unimplemented("ListCities")
}
func (UnimplementedBackofficeServiceServer) CreateOrder(context.Context, *CreateOrderRequest) (*OperationResponse, error) {
	return nil, unimplemented("CreateOrder")
}
func (UnimplementedBackofficeServiceServer) UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*OperationResponse, error) {
	return nil, unimplemented("UpdateOrderStatus")
}
func (UnimplementedBackofficeServiceServer) ListOrders(context.Context, *emptypb.Empty) (*ListOrdersResponse, error) {
	return nil, unimplemented("ListOrders")
}
func (UnimplementedBackofficeServiceServer) GetOrder(context.Context, *GetOrderRequest) (*OrderDetails, error) {
	return nil, unimplemented("GetOrder")
}
func (UnimplementedBackofficeServiceServer) ListPaymentMethods(context.Context, *emptypb.Empty) (*ListPaymentMethodsResponse, error) {
	return nil, unimplemented("ListPaymentMethods")
}
func (UnimplementedBackofficeServiceServer) ListChannels(context.Context, *emptypb.Empty) (*ListChannelsResponse, error) {
	return nil, unimplemented("ListChannels")
}
func (UnimplementedBackofficeServiceServer) ListCategories(context.Context, *emptypb.Empty) (*ListCategoriesResponse, error) {
	return nil, unimplemented("ListCategories")
}
func (UnimplementedBackofficeServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, unimplemented("ListProducts")
}
func (UnimplementedBackofficeServiceServer) GetDashboardStats(context.Context, *emptypb.Empty) (*DashboardStatsResponse, error) {
	return nil, unimplemented("GetDashboardStats")
}
func (UnimplementedBackofficeServiceServer) RevenueByDay(context.Context, *ReportWindowRequest) (*RevenueByDayResponse, error) {
	return nil, unimplemented("RevenueByDay")
}
func (UnimplementedBackofficeServiceServer) OrdersByDay(context.Context, *ReportWindowRequest) (*OrdersByDayResponse, error) {
	return nil, unimplemented("OrdersByDay")
}
func (UnimplementedBackofficeServiceServer) LatestOrders(context.Context, *LatestOrdersRequest) (*LatestOrdersResponse, error) {
	return nil, unimplemented("LatestOrders")
}

// RegisterBackofficeServiceServer регистрирует реализацию на gRPC-сервере.
func RegisterBackofficeServiceServer(s grpc.ServiceRegistrar, srv BackofficeServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary строит обработчик метода так же, как это делает protoc-gen-go-grpc.
func unary[Req, Resp any](fullMethod string, call func(BackofficeServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BackofficeServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BackofficeServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc описывает BackofficeService для grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BackofficeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterCustomer", Handler: unary(MethodRegisterCustomer, BackofficeServiceServer.RegisterCustomer)},
		{MethodName: "ListCustomers", Handler: unary(MethodListCustomers, BackofficeServiceServer.ListCustomers)},
		{MethodName: "LookupPostalCode", Handler: unary(MethodLookupPostalCode, BackofficeServiceServer.LookupPostalCode)},
		{MethodName: "ListCities", Handler: unary(MethodListCities, BackofficeServiceServer.ListCities)},
		{MethodName: "CreateOrder", Handler: unary(MethodCreateOrder, BackofficeServiceServer.CreateOrder)},
		{MethodName: "UpdateOrderStatus", Handler: unary(MethodUpdateOrderStatus, BackofficeServiceServer.UpdateOrderStatus)},
		{MethodName: "ListOrders", Handler: unary(MethodListOrders, BackofficeServiceServer.ListOrders)},
		{MethodName: "GetOrder", Handler: unary(MethodGetOrder, BackofficeServiceServer.GetOrder)},
		{MethodName: "ListPaymentMethods", Handler: unary(MethodListPaymentMethods, BackofficeServiceServer.ListPaymentMethods)},
		{MethodName: "ListChannels", Handler: unary(MethodListChannels, BackofficeServiceServer.ListChannels)},
		{MethodName: "ListCategories", Handler: unary(MethodListCategories, BackofficeServiceServer.ListCategories)},
		{MethodName: "ListProducts", Handler: unary(MethodListProducts, BackofficeServiceServer.ListProducts)},
		{MethodName: "GetDashboardStats", Handler: unary(MethodGetDashboardStats, BackofficeServiceServer.GetDashboardStats)},
		{MethodName: "RevenueByDay", Handler: unary(MethodRevenueByDay, BackofficeServiceServer.RevenueByDay)},
		{MethodName: "OrdersByDay", Handler: unary(MethodOrdersByDay, BackofficeServiceServer.OrdersByDay)},
		{MethodName: "LatestOrders", Handler: unary(MethodLatestOrders, BackofficeServiceServer.LatestOrders)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "backoffice/v1/backoffice_service.json",
}
