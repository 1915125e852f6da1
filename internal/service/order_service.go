package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/events"
	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// OrderItem is one product line of a checkout.
type OrderItem struct {
	ProductID int64
	Quantity  int
}

// OrderInput carries the checkout form.
type OrderInput struct {
	FullName               string
	FullAddress            string
	ContactNumber          string
	AlternateContactNumber string
	FromCart               bool
	Items                  []OrderItem
}

// OrderService handles order placement and status transitions.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	carts      repository.CartRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, carts repository.CartRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts, dispatcher: dispatcher}
}

// Place creates one order row per product line. The unit price is the
// discounted price when set, otherwise the actual price. A cart checkout
// empties the cart afterwards.
func (s *OrderService) Place(ctx context.Context, username string, input OrderInput) ([]domain.Order, error) {
	var placed []domain.Order
	var total float64

	for _, item := range input.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		amount := product.EffectivePrice() * float64(quantity)

		order := &domain.Order{
			FullName:               input.FullName,
			FullAddress:            input.FullAddress,
			ContactNumber:          input.ContactNumber,
			AlternateContactNumber: input.AlternateContactNumber,
			Status:                 domain.OrderStatusPlaced,
			Amount:                 amount,
			ProductID:              product.ID,
			ProductName:            product.Name,
			Username:               username,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return nil, err
		}
		placed = append(placed, *order)
		total += amount
	}

	if input.FromCart {
		if err := s.carts.ClearUser(ctx, username); err != nil {
			return nil, err
		}
	}

	if s.dispatcher != nil && len(placed) > 0 {
		ids := make([]int64, len(placed))
		for i, order := range placed {
			ids[i] = order.ID
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderPlaced,
			Username:  username,
			Timestamp: time.Now(),
			Payload:   events.OrderPlacedPayload{OrderIDs: ids, TotalAmount: total},
		})
	}

	return placed, nil
}

// MyOrders returns one page of the caller's orders filtered by name.
func (s *OrderService) MyOrders(ctx context.Context, username, searchKey string, page, size int) ([]domain.Order, int64, error) {
	return s.orders.SearchByUser(ctx, username, searchKey, page, size)
}

// AllOrders returns one page of every order; status "all" disables the
// status filter.
func (s *OrderService) AllOrders(ctx context.Context, searchKey, status string, page, size int) ([]domain.Order, int64, error) {
	return s.orders.Search(ctx, searchKey, status, page, size)
}

// ChangeStatus updates one order's status and emits the change event.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			Username:  order.Username,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   orderID,
				OldStatus: order.Status,
				NewStatus: status,
			},
		})
	}
	return nil
}
