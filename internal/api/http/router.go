package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ecommerce-service/internal/api/http/handlers"
	"github.com/spec-kit/ecommerce-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Products  *handlers.ProductsHandler
	Cart      *handlers.CartHandler
	Orders    *handlers.OrdersHandler
	Dashboard *handlers.DashboardHandler
	Images    *handlers.ImagesHandler
	Export    *handlers.ExportHandler
	Payments  *handlers.PaymentsHandler
	Filter    *auth.Filter
	Policy    *auth.Policy
	Logger    *zap.Logger
}

// AccessPolicy returns the ordered authorization rule table. Earlier rules
// win; requests matching no rule require any authenticated principal.
func AccessPolicy() *auth.Policy {
	return auth.NewPolicy(
		auth.Permit("/health/**"),
		auth.PermitMethod(fiber.MethodPost, "/api/v1/registerNewUser"),
		auth.PermitMethod(fiber.MethodPost, "/api/v1/authenticate"),
		auth.PermitMethod(fiber.MethodGet, "/api/v1/products/**"),
		auth.PermitMethod(fiber.MethodGet, "/api/v1/product/**"),
		auth.Require(auth.AdminRole, "/api/v1/images/**"),
		auth.Require(auth.AdminRole, "/api/v1/products/**"),
		auth.Require(auth.AdminRole, "/api/v1/product/**"),
		auth.Require(auth.AdminRole, "/api/v1/markOrderAsDelivered/**"),
		auth.Require(auth.AdminRole, "/api/v1/getAllOrderDetailsPaginated/**"),
		auth.Require(auth.AdminRole, "/api/v1/createNewRole"),
		auth.Require(auth.AdminRole, "/api/v1/export/**"),
		auth.Require(auth.AdminRole, "/api/v1/dashboard/sales-per-month-admin"),
		auth.Require(auth.AdminRole, "/api/v1/dashboard/top-selling"),
		auth.Require(auth.UserRole, "/api/v1/placeOrder"),
		auth.Require(auth.UserRole, "/api/v1/cart/addToCart/**"),
	)
}

// RegisterRoutes wires HTTP routes behind the token filter and the
// authorization policy.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Filter.Handle)
	app.Use(cfg.Policy.Middleware(cfg.Logger))

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api/v1")

	api.Post("/authenticate", cfg.Auth.Authenticate)
	api.Post("/registerNewUser", cfg.Auth.Register)
	api.Post("/createNewRole", cfg.Auth.CreateRole)

	api.Get("/products", cfg.Products.List)
	api.Get("/products/paginated", cfg.Products.Search)
	api.Post("/products", cfg.Products.Create)
	api.Get("/product/:productId", cfg.Products.Get)
	api.Put("/product/:productId", cfg.Products.Update)
	api.Delete("/product/:productId", cfg.Products.Delete)
	api.Get("/getProductDetails/:isSingleProductCheckout/:productId", cfg.Products.CheckoutDetails)

	api.Post("/cart/addToCart/:productId", cfg.Cart.Add)
	api.Get("/cart", cfg.Cart.List)
	api.Get("/cart/paginated", cfg.Cart.Search)
	api.Delete("/cart/:cartId", cfg.Cart.Delete)
	api.Delete("/cart", cfg.Cart.Clear)

	api.Post("/placeOrder", cfg.Orders.Place)
	api.Get("/getMyOrderDetailsPaginated", cfg.Orders.MyOrders)
	api.Get("/getAllOrderDetailsPaginated/:status", cfg.Orders.AllOrders)
	api.Get("/markOrderAsDelivered/:orderId", cfg.Orders.MarkDelivered)

	api.Get("/dashboard/orders-per-month", cfg.Dashboard.OrdersPerMonth)
	api.Get("/dashboard/orders-by-status", cfg.Dashboard.OrdersByStatus)
	api.Get("/dashboard/last-orders", cfg.Dashboard.LastOrders)
	api.Get("/dashboard/sales-per-month-admin", cfg.Dashboard.SalesPerMonth)
	api.Get("/dashboard/top-selling", cfg.Dashboard.TopSelling)

	api.Get("/images", cfg.Images.ListMeta)
	api.Get("/images/by-name/:name", cfg.Images.GetByName)
	api.Get("/images/:imageId", cfg.Images.GetByID)
	api.Post("/images/:productId", cfg.Images.Upload)
	api.Delete("/images/:imageId", cfg.Images.Delete)

	api.Get("/export/products.csv", cfg.Export.ProductsCSV)

	api.Post("/payments", cfg.Payments.Create)
	api.Get("/payments/success", cfg.Payments.Success)
	api.Get("/payments/cancel", cfg.Payments.Cancel)
	api.Get("/payments/error", cfg.Payments.Error)
}
