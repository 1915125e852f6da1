package service

import (
	"context"
	"testing"

	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/events"
)

func seedProduct(t *testing.T, products *fakeProductRepo, name string, actual, discounted float64) domain.Product {
	t.Helper()
	product := domain.Product{Name: name, ActualPrice: actual, DiscountedPrice: discounted}
	if err := products.Create(context.Background(), &product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestPlaceOrderUsesDiscountedPrice(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	dispatcher := &fakeDispatcher{}
	svc := NewOrderService(orders, products, carts, dispatcher)
	ctx := context.Background()

	discounted := seedProduct(t, products, "keyboard", 100, 80)
	fullPrice := seedProduct(t, products, "mouse", 40, 0)

	placed, err := svc.Place(ctx, "alice", OrderInput{
		FullName:      "Alice Smith",
		FullAddress:   "1 Main St",
		ContactNumber: "555-0100",
		Items: []OrderItem{
			{ProductID: discounted.ID, Quantity: 2},
			{ProductID: fullPrice.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(placed) != 2 {
		t.Fatalf("placed %d orders, want 2 (one row per product)", len(placed))
	}
	if placed[0].Amount != 160 {
		t.Errorf("discounted line amount = %v, want 160", placed[0].Amount)
	}
	if placed[1].Amount != 40 {
		t.Errorf("full-price line amount = %v, want 40", placed[1].Amount)
	}
	for _, order := range placed {
		if order.Status != domain.OrderStatusPlaced {
			t.Errorf("status = %q, want Placed", order.Status)
		}
		if order.Username != "alice" {
			t.Errorf("username = %q, want alice", order.Username)
		}
	}

	published := dispatcher.events()
	if len(published) != 1 || published[0].Type != events.EventOrderPlaced {
		t.Fatalf("published events = %v, want one order_placed", published)
	}
}

func TestPlaceOrderDefaultsZeroQuantityToOne(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	svc := NewOrderService(orders, products, newFakeCartRepo(), &fakeDispatcher{})

	product := seedProduct(t, products, "cable", 10, 0)
	placed, err := svc.Place(context.Background(), "alice", OrderInput{
		FullName:      "Alice Smith",
		FullAddress:   "1 Main St",
		ContactNumber: "555-0100",
		Items:         []OrderItem{{ProductID: product.ID, Quantity: 0}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placed[0].Amount != 10 {
		t.Errorf("amount = %v, want 10 for quantity defaulted to 1", placed[0].Amount)
	}
}

func TestPlaceOrderFromCartClearsCart(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	svc := NewOrderService(orders, products, carts, &fakeDispatcher{})
	ctx := context.Background()

	product := seedProduct(t, products, "monitor", 200, 0)
	if err := carts.Add(ctx, &domain.CartItem{Username: "alice", Product: product}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	_, err := svc.Place(ctx, "alice", OrderInput{
		FullName:      "Alice Smith",
		FullAddress:   "1 Main St",
		ContactNumber: "555-0100",
		FromCart:      true,
		Items:         []OrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	remaining, _ := carts.ListByUser(ctx, "alice")
	if len(remaining) != 0 {
		t.Fatalf("cart still holds %d items after checkout", len(remaining))
	}
}

func TestChangeStatusPublishesEvent(t *testing.T) {
	orders := newFakeOrderRepo()
	products := newFakeProductRepo()
	dispatcher := &fakeDispatcher{}
	svc := NewOrderService(orders, products, newFakeCartRepo(), dispatcher)
	ctx := context.Background()

	product := seedProduct(t, products, "desk", 300, 0)
	placed, err := svc.Place(ctx, "alice", OrderInput{
		FullName:      "Alice Smith",
		FullAddress:   "1 Main St",
		ContactNumber: "555-0100",
		Items:         []OrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if err := svc.ChangeStatus(ctx, placed[0].ID, domain.OrderStatusDelivered); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	updated, err := orders.GetByID(ctx, placed[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Status != domain.OrderStatusDelivered {
		t.Errorf("status = %q, want Delivered", updated.Status)
	}

	published := dispatcher.events()
	last := published[len(published)-1]
	if last.Type != events.EventOrderStatusChanged {
		t.Fatalf("last event = %q, want order_status_changed", last.Type)
	}
	payload, ok := last.Payload.(events.OrderStatusChangedPayload)
	if !ok {
		t.Fatalf("payload type %T", last.Payload)
	}
	if payload.OldStatus != domain.OrderStatusPlaced || payload.NewStatus != domain.OrderStatusDelivered {
		t.Errorf("payload transition = %q -> %q, want Placed -> Delivered", payload.OldStatus, payload.NewStatus)
	}
}
