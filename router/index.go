package router

import (
	"restaurant_pos/handler"
	"restaurant_pos/middleware"
	"restaurant_pos/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, apiLogs middleware.APILogRecorder) {
	cfg := h.Config
	api := app.Group("/", logger.New())
	protected := middleware.Protected(h.Auth)
	admin := middleware.AdminToken(cfg.AdminToken)
	id := validate.UUIDParam("id")

	api.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	auth := api.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", protected, h.Me)

	restaurants := api.Group("/restaurants")
	restaurants.Get("/me", protected, h.MyRestaurant)
	restaurants.Post("/", admin, validate.CreateRestaurant(), h.CreateRestaurant)
	restaurants.Get("/:id", admin, id, h.GetRestaurant)
	restaurants.Put("/:id", admin, id, validate.UpdateRestaurant(), h.UpdateRestaurant)
	restaurants.Post("/:id/menu-document", protected, id, h.UploadMenuDocument)

	api.Post("/users", admin, validate.CreateUser(), h.CreateUser)

	products := api.Group("/products", protected)
	products.Get("/", validate.FilterProduct(), h.ListProducts)
	products.Post("/", validate.CreateProduct(), h.CreateProduct)
	products.Get("/:id", id, h.GetProduct)
	products.Put("/:id", id, validate.UpdateProduct(), h.UpdateProduct)
	products.Delete("/:id", id, h.DeleteProduct)
	products.Put("/:id/recipe", id, validate.SaveRecipe(), h.SaveRecipe)
	products.Post("/:id/image", id, h.UploadProductImage)

	addons := api.Group("/addons", protected)
	addons.Get("/", h.ListAddons)
	addons.Post("/", validate.CreateAddon(), h.CreateAddon)
	addons.Get("/:id", id, h.GetAddon)
	addons.Put("/:id", id, validate.UpdateAddon(), h.UpdateAddon)
	addons.Delete("/:id", id, h.DeleteAddon)

	customers := api.Group("/customers", protected)
	customers.Get("/", validate.FilterCustomer(), h.ListCustomers)
	customers.Post("/", validate.CreateCustomer(), h.CreateCustomer)
	customers.Get("/by-phone/:phone", h.GetCustomerByPhone)
	customers.Get("/:id", id, h.GetCustomer)
	customers.Put("/:id", id, validate.EditCustomer(), h.UpdateCustomer)

	rules := api.Group("/delivery-rules", protected)
	rules.Get("/", h.ListDeliveryRules)
	rules.Get("/search", h.SearchDeliveryRules)
	rules.Post("/", validate.DeliveryRule(), h.CreateDeliveryRule)
	rules.Put("/:id", id, validate.DeliveryRule(), h.UpdateDeliveryRule)
	rules.Delete("/:id", id, h.DeleteDeliveryRule)

	api.Post("/delivery/fee", protected, middleware.APILogger(apiLogs), validate.DeliveryFee(), h.QuoteDeliveryFee)

	stock := api.Group("/stock-items", protected)
	stock.Get("/", h.ListStockItems)
	stock.Get("/low", h.LowStockItems)
	stock.Post("/", validate.CreateStockItem(), h.CreateStockItem)
	stock.Get("/:id", id, h.GetStockItem)
	stock.Put("/:id", id, validate.UpdateStockItem(), h.UpdateStockItem)
	stock.Post("/:id/adjust", id, validate.AdjustStock(), h.AdjustStockItem)

	payments := api.Group("/payment-methods", protected)
	payments.Get("/", h.ListPaymentMethods)
	payments.Post("/", validate.CreatePaymentMethod(), h.CreatePaymentMethod)
	payments.Get("/:id", id, h.GetPaymentMethod)
	payments.Put("/:id", id, validate.UpdatePaymentMethod(), h.UpdatePaymentMethod)
	payments.Delete("/:id", id, h.DeletePaymentMethod)

	comandas := api.Group("/comandas", protected)
	comandas.Get("/", h.ListComandas)
	comandas.Post("/", validate.OpenComanda(), h.OpenComanda)
	comandas.Get("/:id", id, h.GetComanda)
	comandas.Post("/:id/close", id, validate.CloseComanda(), h.CloseComanda)

	orders := api.Group("/orders", protected)
	orders.Get("/", validate.FilterOrderQuery(), h.ListOrders)
	orders.Post("/", validate.FilterOrderBody(), h.ListOrders)
	orders.Post("/create", validate.CreateOrder(), h.CreateOrder)
	orders.Post("/update-status", validate.UpdateOrderStatus(), h.UpdateOrderStatus)
	orders.Get("/export", validate.FilterOrderQuery(), h.ExportOrders)
	orders.Get("/:id", id, h.GetOrder)
	orders.Post("/:id/cancel", id, h.CancelOrder)
	orders.Get("/:id/print-data", id, h.PrintData)
	orders.Get("/:id/print-pdf", id, h.PrintPDF)
	orders.Post("/:id/send-customer-pdf", id, h.SendCustomerPDF)

	api.Get("/activity-logs", protected, h.ListActivityLogs)

	ai := api.Group("/ai", middleware.APIKey(cfg.AIAPIKey), middleware.APILogger(apiLogs))
	ai.Post("/orders/cancel", validate.CancelOrder(), h.CancelOrderAI)

	// Preflight is answered by the app-wide cors middleware.
	qz := api.Group("/qz", middleware.QZOrigin(cfg.QZ.AllowedOrigins))
	qz.Get("/cert", h.QZCertificate)
	qz.Post("/cert", h.QZCertificate)
	qz.Post("/sign", h.QZSign)

	api.Get("/ws/orders", protected, h.OrdersSocketUpgrade, websocket.New(h.OrdersSocket))
}
