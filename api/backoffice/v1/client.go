package backofficev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// BackofficeServiceClient описывает клиентскую часть API.
type BackofficeServiceClient interface {
	RegisterCustomer(ctx context.Context, in *RegisterCustomerRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	ListCustomers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCustomersResponse, error)
	LookupPostalCode(ctx context.Context, in *LookupPostalCodeRequest, opts ...grpc.CallOption) (*LookupPostalCodeResponse, error)
	ListCities(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCitiesResponse, error)
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*OperationResponse, error)
	ListOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderDetails, error)
	ListPaymentMethods(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListPaymentMethodsResponse, error)
	ListChannels(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListChannelsResponse, error)
	ListCategories(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error)
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	GetDashboardStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*DashboardStatsResponse, error)
	RevenueByDay(ctx context.Context, in *ReportWindowRequest, opts ...grpc.CallOption) (*RevenueByDayResponse, error)
	OrdersByDay(ctx context.Context, in *ReportWindowRequest, opts ...grpc.CallOption) (*OrdersByDayResponse, error)
	LatestOrders(ctx context.Context, in *LatestOrdersRequest, opts ...grpc.CallOption) (*LatestOrdersResponse, error)
}

type backofficeServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBackofficeServiceClient создаёт клиента поверх соединения. Все вызовы
// идут с content-subtype CodecName.
func NewBackofficeServiceClient(cc grpc.ClientConnInterface) BackofficeServiceClient {
	return &backofficeServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backofficeServiceClient) RegisterCustomer(ctx context.Context, in *RegisterCustomerRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodRegisterCustomer, in, opts)
}

func (c *backofficeServiceClient) ListCustomers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCustomersResponse, error) {
	return invoke[ListCustomersResponse](ctx, c.cc, MethodListCustomers, in, opts)
}

func (c *backofficeServiceClient) LookupPostalCode(ctx context.Context, in *LookupPostalCodeRequest, opts ...grpc.CallOption) (*LookupPostalCodeResponse, error) {
	return invoke[LookupPostalCodeResponse](ctx, c.cc, MethodLookupPostalCode, in, opts)
}

func (c *backofficeServiceClient) ListCities(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCitiesResponse, error) {
	return invoke[ListCitiesResponse](ctx, c.cc, MethodListCities, in, opts)
}

func (c *backofficeServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodCreateOrder, in, opts)
}

func (c *backofficeServiceClient) UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*OperationResponse, error) {
	return invoke[OperationResponse](ctx, c.cc, MethodUpdateOrderStatus, in, opts)
}

func (c *backofficeServiceClient) ListOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, MethodListOrders, in, opts)
}

func (c *backofficeServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderDetails, error) {
	return invoke[OrderDetails](ctx, c.cc, MethodGetOrder, in, opts)
}

func (c *backofficeServiceClient) ListPaymentMethods(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListPaymentMethodsResponse, error) {
	return invoke[ListPaymentMethodsResponse](ctx, c.cc, MethodListPaymentMethods, in, opts)
}

func (c *backofficeServiceClient) ListChannels(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListChannelsResponse, error) {
	return invoke[ListChannelsResponse](ctx, c.cc, MethodListChannels, in, opts)
}

func (c *backofficeServiceClient) ListCategories(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, MethodListCategories, in, opts)
}

func (c *backofficeServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, MethodListProducts, in, opts)
}

func (c *backofficeServiceClient) GetDashboardStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*DashboardStatsResponse, error) {
	return invoke[DashboardStatsResponse](ctx, c.cc, MethodGetDashboardStats, in, opts)
}

func (c *backofficeServiceClient) RevenueByDay(ctx context.Context, in *ReportWindowRequest, opts ...grpc.CallOption) (*RevenueByDayResponse, error) {
	return invoke[RevenueByDayResponse](ctx, c.cc, MethodRevenueByDay, in, opts)
}

func (c *backofficeServiceClient) OrdersByDay(ctx context.Context, in *ReportWindowRequest, opts ...grpc.CallOption) (*OrdersByDayResponse, error) {
	return invoke[OrdersByDayResponse](ctx, c.cc, MethodOrdersByDay, in, opts)
}

func (c *backofficeServiceClient) LatestOrders(ctx context.Context, in *LatestOrdersRequest, opts ...grpc.CallOption) (*LatestOrdersResponse, error) {
	return invoke[LatestOrdersResponse](ctx, c.cc, MethodLatestOrders, in, opts)
}

var _ BackofficeServiceClient = (*backofficeServiceClient)(nil)
