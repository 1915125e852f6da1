package worker

import (
	"context"

	"github.com/spec-kit/ecommerce-service/internal/events"
	"github.com/spec-kit/ecommerce-service/internal/service"
)

// StartDashboardWorker drops cached dashboard aggregates whenever an order
// changes.
func StartDashboardWorker(dispatcher events.Dispatcher, dashboard *service.DashboardService) {
	if dispatcher == nil || dashboard == nil {
		return
	}

	invalidate := func(ctx context.Context, event events.Event) error {
		dashboard.Invalidate(ctx, event.Username)
		return nil
	}
	dispatcher.Subscribe(events.EventOrderPlaced, invalidate)
	dispatcher.Subscribe(events.EventOrderStatusChanged, invalidate)
}
