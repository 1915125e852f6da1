package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ecommerce-service/internal/persistence"
	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// SalesData is a label/value series for dashboard charts.
type SalesData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BestSeller is one entry of the top-selling listing.
type BestSeller struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	TotalSales  float64 `json:"totalSales"`
}

// DashboardService computes order and sales aggregates, caching the results
// in Redis until an order event invalidates them.
type DashboardService struct {
	orders repository.OrderRepository
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(orders repository.OrderRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{orders: orders, cache: cache, ttl: ttl, logger: logger}
}

// OrdersPerMonth counts the caller's orders grouped by calendar month.
func (s *DashboardService) OrdersPerMonth(ctx context.Context, username string) (*SalesData, error) {
	key := "dashboard:orders-per-month:" + username
	var data SalesData
	if s.cacheGet(ctx, key, &data) {
		return &data, nil
	}

	metrics, err := s.orders.CountByMonth(ctx, username)
	if err != nil {
		return nil, err
	}
	data = monthSeries(metrics)
	s.cacheSet(ctx, key, data)
	return &data, nil
}

// OrdersByStatus counts Placed/Delivered orders. Admins see every order,
// other callers only their own.
func (s *DashboardService) OrdersByStatus(ctx context.Context, username string, admin bool) (*SalesData, error) {
	scope := username
	if admin {
		scope = ""
	}
	key := "dashboard:orders-by-status:" + scope
	var data SalesData
	if s.cacheGet(ctx, key, &data) {
		return &data, nil
	}

	counts, err := s.orders.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	data = SalesData{}
	for _, sc := range counts {
		data.Labels = append(data.Labels, sc.Status)
		data.Values = append(data.Values, float64(sc.Count))
	}
	s.cacheSet(ctx, key, data)
	return &data, nil
}

// LastFourOrders returns the four most recent orders across all users.
func (s *DashboardService) LastFourOrders(ctx context.Context) ([]BestSellerOrder, error) {
	orders, err := s.orders.LastOrders(ctx, 4)
	if err != nil {
		return nil, err
	}
	out := make([]BestSellerOrder, 0, len(orders))
	for _, order := range orders {
		out = append(out, BestSellerOrder{
			OrderID:     order.ID,
			ProductName: order.ProductName,
			FullName:    order.FullName,
			Amount:      order.Amount,
			Status:      string(order.Status),
			OrderDate:   order.OrderDate,
		})
	}
	return out, nil
}

// BestSellerOrder is one row of the recent-orders widget.
type BestSellerOrder struct {
	OrderID     int64     `json:"orderId"`
	ProductName string    `json:"productName"`
	FullName    string    `json:"fullName"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"orderDate"`
}

// SalesPerMonth sums order amounts grouped by calendar month (admin-wide).
func (s *DashboardService) SalesPerMonth(ctx context.Context) (*SalesData, error) {
	const key = "dashboard:sales-per-month"
	var data SalesData
	if s.cacheGet(ctx, key, &data) {
		return &data, nil
	}

	metrics, err := s.orders.SalesPerMonth(ctx)
	if err != nil {
		return nil, err
	}
	data = monthSeries(metrics)
	s.cacheSet(ctx, key, data)
	return &data, nil
}

// TopSelling lists the five best-selling products of the last month.
func (s *DashboardService) TopSelling(ctx context.Context) ([]BestSeller, error) {
	const key = "dashboard:top-selling"
	var sellers []BestSeller
	if s.cacheGet(ctx, key, &sellers) {
		return sellers, nil
	}

	sales, err := s.orders.TopSellingSince(ctx, time.Now().AddDate(0, -1, 0), 5)
	if err != nil {
		return nil, err
	}
	sellers = make([]BestSeller, 0, len(sales))
	for _, sale := range sales {
		sellers = append(sellers, BestSeller{
			ProductID:   sale.ProductID,
			ProductName: sale.ProductName,
			TotalSales:  sale.Total,
		})
	}
	s.cacheSet(ctx, key, sellers)
	return sellers, nil
}

// Invalidate drops the cached aggregates touched by an order of the given
// user.
func (s *DashboardService) Invalidate(ctx context.Context, username string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	keys := []string{
		"dashboard:orders-per-month:" + username,
		"dashboard:orders-by-status:" + username,
		"dashboard:orders-by-status:",
		"dashboard:sales-per-month",
		"dashboard:top-selling",
	}
	if err := s.cache.Client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil || s.cache.Client == nil {
		return false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("corrupt dashboard cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DashboardService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func monthSeries(metrics []repository.MonthMetric) SalesData {
	var data SalesData
	for _, m := range metrics {
		data.Labels = append(data.Labels, m.Month)
		data.Values = append(data.Values, m.Value)
	}
	return data
}
