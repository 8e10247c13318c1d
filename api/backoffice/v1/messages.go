package backofficev1

// Денежные суммы передаются строками с двумя знаками после точки, даты в RFC 3339.

// RegisterCustomerRequest содержит поля формы регистрации покупателя.
type RegisterCustomerRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// OperationResponse возвращается мутирующими операциями.
type OperationResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
}

type ListCustomersResponse struct {
	Customers []*Customer `json:"customers"`
}

type LookupPostalCodeRequest struct {
	City string `json:"city"`
}

type LookupPostalCodeResponse struct {
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type ListCitiesResponse struct {
	Cities []string `json:"cities"`
}

type OrderItem struct {
	ProductName string `json:"product_name"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal,omitempty"`
}

type CreateOrderRequest struct {
	CustomerID      int64        `json:"customer_id"`
	PaymentMethodID int64        `json:"payment_method_id"`
	ChannelID       int64        `json:"channel_id"`
	TotalAmount     string       `json:"total_amount"`
	ShippingAddress string       `json:"shipping_address"`
	Items           []*OrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	OrderID  int64  `json:"order_id"`
	Status   string `json:"status"`
	ShipDate string `json:"ship_date,omitempty"`
}

type OrderSummary struct {
	ID                int64  `json:"id"`
	OrderDate         string `json:"order_date"`
	ShipDate          string `json:"ship_date,omitempty"`
	Status            string `json:"status"`
	TotalAmount       string `json:"total_amount"`
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	PaymentMethod     string `json:"payment_method"`
	Channel           string `json:"channel"`
}

type ListOrdersResponse struct {
	Orders []*OrderSummary `json:"orders"`
}

type GetOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

type OrderDetails struct {
	ID                int64        `json:"id"`
	OrderDate         string       `json:"order_date"`
	TotalAmount       string       `json:"total_amount"`
	Status            string       `json:"status"`
	CustomerFirstName string       `json:"customer_first_name"`
	CustomerLastName  string       `json:"customer_last_name"`
	CustomerEmail     string       `json:"customer_email"`
	PaymentMethod     string       `json:"payment_method"`
	Channel           string       `json:"channel"`
	ShipDate          string       `json:"ship_date,omitempty"`
	ShippingAddress   string       `json:"shipping_address"`
	Items             []*OrderItem `json:"items"`
}

type PaymentMethod struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ListPaymentMethodsResponse struct {
	PaymentMethods []*PaymentMethod `json:"payment_methods"`
}

type Channel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListChannelsResponse struct {
	Channels []*Channel `json:"channels"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type ListProductsRequest struct {
	CategoryID int64 `json:"category_id"`
}

type Product struct {
	ID            int64  `json:"id"`
	CategoryID    int64  `json:"category_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	UnitPrice     string `json:"unit_price"`
	StockQuantity int32  `json:"stock_quantity"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardStatsResponse struct {
	TotalRevenue   string         `json:"total_revenue"`
	TotalOrders    int64          `json:"total_orders"`
	TotalCustomers int64          `json:"total_customers"`
	AvgOrderValue  string         `json:"avg_order_value"`
	OrdersByStatus []*StatusCount `json:"orders_by_status"`
}

// ReportWindowRequest задаёт размер окна последних заказов. 0 означает окно по умолчанию.
type ReportWindowRequest struct {
	Limit int32 `json:"limit"`
}

type DailyRevenue struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
}

type RevenueByDayResponse struct {
	Days []*DailyRevenue `json:"days"`
}

type DailyOrderCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type OrdersByDayResponse struct {
	Days []*DailyOrderCount `json:"days"`
}

type LatestOrdersRequest struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

type LatestOrderRow struct {
	OrderID       int64  `json:"order_id"`
	CustomerCode  string `json:"customer_code"`
	OrderDate     string `json:"order_date"`
	ShipDate      string `json:"ship_date,omitempty"`
	Status        string `json:"status"`
	Category      string `json:"category"`
	Channel       string `json:"channel"`
	TotalAmount   string `json:"total_amount"`
	Discount      string `json:"discount"`
	PaymentMethod string `json:"payment_method"`
}

type LatestOrdersResponse struct {
	Rows []*LatestOrderRow `json:"rows"`
}
