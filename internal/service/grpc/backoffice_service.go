// Package grpcsvc публикует сервис бэк-офиса по gRPC.
package grpcsvc

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	backofficev1 "github.com/vladislavdragonenkov/backoffice/api/backoffice/v1"
	"github.com/vladislavdragonenkov/backoffice/internal/service/backoffice"
	"github.com/vladislavdragonenkov/backoffice/internal/validation"
)

// BackofficeService реализует gRPC API поверх backoffice.Service.
type BackofficeService struct {
	backofficev1.UnimplementedBackofficeServiceServer

	svc    *backoffice.Service
	logger *log.Entry
}

// NewBackofficeService конструирует адаптер.
func NewBackofficeService(svc *backoffice.Service, logger *log.Entry) *BackofficeService {
	if logger == nil {
		logger = log.New().WithField("component", "backoffice-grpc")
	}
	return &BackofficeService{svc: svc, logger: logger}
}

func errRequestRequired() error {
	return status.Error(codes.InvalidArgument, "request is required")
}

func operationResponse(res backoffice.Result) *backofficev1.OperationResponse {
	return &backofficev1.OperationResponse{ID: res.ID, Message: res.Message}
}

// RegisterCustomer проверяет и сохраняет нового покупателя.
func (s *BackofficeService) RegisterCustomer(ctx context.Context, req *backofficev1.RegisterCustomerRequest) (*backofficev1.OperationResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}

	res, err := s.svc.RegisterCustomer(ctx, backoffice.RegisterCustomerInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return nil, s.toStatus("RegisterCustomer", err)
	}
	return operationResponse(res), nil
}

func (s *BackofficeService) ListCustomers(ctx context.Context, _ *emptypb.Empty) (*backofficev1.ListCustomersResponse, error) {
	customers, err := s.svc.Customers(ctx)
	if err != nil {
		return nil, s.toStatus("ListCustomers", err)
	}

	resp := &backofficev1.ListCustomersResponse{Customers: make([]*backofficev1.Customer, 0, len(customers))}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, toProtoCustomer(c))
	}
	return resp, nil
}

func (s *BackofficeService) LookupPostalCode(_ context.Context, req *backofficev1.LookupPostalCodeRequest) (*backofficev1.LookupPostalCodeResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}
	city := strings.TrimSpace(req.City)
	return &backofficev1.LookupPostalCodeResponse{City: city, PostalCode: s.svc.PostalCode(city)}, nil
}

func (s *BackofficeService) ListCities(context.Context, *emptypb.Empty) (*backofficev1.ListCitiesResponse, error) {
	return &backofficev1.ListCitiesResponse{Cities: s.svc.Cities()}, nil
}

// CreateOrder создаёт заказ с позициями в одной транзакции.
func (s *BackofficeService) CreateOrder(ctx context.Context, req *backofficev1.CreateOrderRequest) (*backofficev1.OperationResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}

	items := make([]backoffice.OrderItemInput, 0, len(req.Items))
	for idx, item := range req.Items {
		if item == nil {
			return nil, status.Errorf(codes.InvalidArgument, "item[%d] is nil", idx)
		}
		items = append(items, backoffice.OrderItemInput{
			ProductName: item.ProductName,
			Quantity:    int(item.Quantity),
			UnitPrice:   item.UnitPrice,
		})
	}

	res, err := s.svc.CreateOrder(ctx, backoffice.CreateOrderInput{
		CustomerID:      req.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		ChannelID:       req.ChannelID,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		return nil, s.toStatus("CreateOrder", err)
	}
	return operationResponse(res), nil
}

// UpdateOrderStatus меняет статус и, при необходимости, дату отгрузки.
func (s *BackofficeService) UpdateOrderStatus(ctx context.Context, req *backofficev1.UpdateOrderStatusRequest) (*backofficev1.OperationResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}

	res, err := s.updateStatus(ctx, req)
	if err != nil {
		return nil, s.toStatus("UpdateOrderStatus", err)
	}
	return operationResponse(res), nil
}

func (s *BackofficeService) updateStatus(ctx context.Context, req *backofficev1.UpdateOrderStatusRequest) (backoffice.Result, error) {
	if strings.TrimSpace(req.ShipDate) == "" {
		return s.svc.UpdateOrderStatus(ctx, req.OrderID, req.Status, nil)
	}
	parsed, err := validation.ParseDate(req.ShipDate)
	if err != nil {
		return backoffice.Result{}, err
	}
	return s.svc.UpdateOrderStatus(ctx, req.OrderID, req.Status, &parsed)
}

func (s *BackofficeService) ListOrders(ctx context.Context, _ *emptypb.Empty) (*backofficev1.ListOrdersResponse, error) {
	orders, err := s.svc.Orders(ctx)
	if err != nil {
		return nil, s.toStatus("ListOrders", err)
	}

	resp := &backofficev1.ListOrdersResponse{Orders: make([]*backofficev1.OrderSummary, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toProtoOrderSummary(o))
	}
	return resp, nil
}

func (s *BackofficeService) GetOrder(ctx context.Context, req *backofficev1.GetOrderRequest) (*backofficev1.OrderDetails, error) {
	if req == nil || req.OrderID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}

	order, err := s.svc.Order(ctx, req.OrderID)
	if err != nil {
		return nil, s.toStatus("GetOrder", err)
	}
	return toProtoOrderDetails(order), nil
}

func (s *BackofficeService) ListPaymentMethods(ctx context.Context, _ *emptypb.Empty) (*backofficev1.ListPaymentMethodsResponse, error) {
	methods, err := s.svc.PaymentMethods(ctx)
	if err != nil {
		return nil, s.toStatus("ListPaymentMethods", err)
	}

	resp := &backofficev1.ListPaymentMethodsResponse{PaymentMethods: make([]*backofficev1.PaymentMethod, 0, len(methods))}
	for _, m := range methods {
		resp.PaymentMethods = append(resp.PaymentMethods, &backofficev1.PaymentMethod{ID: m.ID, Name: m.Name})
	}
	return resp, nil
}

func (s *BackofficeService) ListChannels(ctx context.Context, _ *emptypb.Empty) (*backofficev1.ListChannelsResponse, error) {
	channels, err := s.svc.Channels(ctx)
	if err != nil {
		return nil, s.toStatus("ListChannels", err)
	}

	resp := &backofficev1.ListChannelsResponse{Channels: make([]*backofficev1.Channel, 0, len(channels))}
	for _, c := range channels {
		resp.Channels = append(resp.Channels, &backofficev1.Channel{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return resp, nil
}

func (s *BackofficeService) ListCategories(ctx context.Context, _ *emptypb.Empty) (*backofficev1.ListCategoriesResponse, error) {
	categories, err := s.svc.Categories(ctx)
	if err != nil {
		return nil, s.toStatus("ListCategories", err)
	}

	resp := &backofficev1.ListCategoriesResponse{Categories: make([]*backofficev1.Category, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, &backofficev1.Category{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return resp, nil
}

func (s *BackofficeService) ListProducts(ctx context.Context, req *backofficev1.ListProductsRequest) (*backofficev1.ListProductsResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}

	products, err := s.svc.Products(ctx, req.CategoryID)
	if err != nil {
		return nil, s.toStatus("ListProducts", err)
	}

	resp := &backofficev1.ListProductsResponse{Products: make([]*backofficev1.Product, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, toProtoProduct(p))
	}
	return resp, nil
}

func (s *BackofficeService) GetDashboardStats(ctx context.Context, _ *emptypb.Empty) (*backofficev1.DashboardStatsResponse, error) {
	stats, err := s.svc.DashboardStats(ctx)
	if err != nil {
		return nil, s.toStatus("GetDashboardStats", err)
	}

	resp := &backofficev1.DashboardStatsResponse{
		TotalRevenue:   money(stats.TotalRevenue),
		TotalOrders:    stats.TotalOrders,
		TotalCustomers: stats.TotalCustomers,
		AvgOrderValue:  money(stats.AvgOrderValue),
		OrdersByStatus: make([]*backofficev1.StatusCount, 0, len(stats.OrdersByStatus)),
	}
	for _, sc := range stats.OrdersByStatus {
		resp.OrdersByStatus = append(resp.OrdersByStatus, &backofficev1.StatusCount{Status: string(sc.Status), Count: sc.Count})
	}
	return resp, nil
}

func (s *BackofficeService) RevenueByDay(ctx context.Context, req *backofficev1.ReportWindowRequest) (*backofficev1.RevenueByDayResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}

	days, err := s.svc.RevenueByDay(ctx, int(req.Limit))
	if err != nil {
		return nil, s.toStatus("RevenueByDay", err)
	}

	resp := &backofficev1.RevenueByDayResponse{Days: make([]*backofficev1.DailyRevenue, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, &backofficev1.DailyRevenue{Date: day(d.Date), Revenue: money(d.Revenue)})
	}
	return resp, nil
}

func (s *BackofficeService) OrdersByDay(ctx context.Context, req *backofficev1.ReportWindowRequest) (*backofficev1.OrdersByDayResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}

	days, err := s.svc.OrdersByDay(ctx, int(req.Limit))
	if err != nil {
		return nil, s.toStatus("OrdersByDay", err)
	}

	resp := &backofficev1.OrdersByDayResponse{Days: make([]*backofficev1.DailyOrderCount, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, &backofficev1.DailyOrderCount{Date: day(d.Date), Count: d.Count})
	}
	return resp, nil
}

func (s *BackofficeService) LatestOrders(ctx context.Context, req *backofficev1.LatestOrdersRequest) (*backofficev1.LatestOrdersResponse, error) {
	if req == nil {
		return nil, errRequestRequired()
	}

	rows, err := s.svc.LatestOrders(ctx, int(req.Limit), int(req.Offset))
	if err != nil {
		return nil, s.toStatus("LatestOrders", err)
	}

	resp := &backofficev1.LatestOrdersResponse{Rows: make([]*backofficev1.LatestOrderRow, 0, len(rows))}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, toProtoLatestOrder(r))
	}
	return resp, nil
}

var _ backofficev1.BackofficeServiceServer = (*BackofficeService)(nil)
