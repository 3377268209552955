package router

import (
	"resto_manager/handler"
	"resto_manager/middleware"
	"resto_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)

	account := v1.Group("/account", logger.New())
	account.Get("/me", middleware.Protected(), handler.Me)

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), handler.GetOrders)
	order.Post("/", middleware.Protected(), validate.CreateOrder(), handler.CreateOrder)
	order.Patch("/items", middleware.Protected(), validate.BatchUpdateItems(), handler.BatchUpdateItems)
	order.Patch("/item/:itemId", middleware.Protected(), validate.GetById("itemId"), validate.UpdateItem(), handler.UpdateItem)
	order.Delete("/item/:itemId", middleware.Protected(), validate.GetById("itemId"), handler.DeleteItem)
	order.Post("/item/:itemId/cancel", middleware.Protected(), validate.GetById("itemId"), handler.CancelItem)
	order.Get("/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.GetOrderById)
	order.Patch("/:orderId/status", middleware.Protected(), validate.GetById("orderId"), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	order.Patch("/:orderId/claim", middleware.Protected(), validate.GetById("orderId"), handler.ClaimOrder)
	order.Get("/:orderId/transactions", middleware.Protected(), validate.GetById("orderId"), handler.GetOrderTransactions)
	order.Delete("/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.DeleteOrder)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/", middleware.Protected(), validate.Pay(), handler.Pay)

	table := v1.Group("/table", logger.New())
	table.Get("/", middleware.Protected(), handler.GetTables)
	table.Post("/", middleware.Protected(), validate.CreateTable(), handler.CreateTable)
	table.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteTables)
	table.Patch("/:tableId/release", middleware.Protected(), validate.GetById("tableId"), handler.ForceReleaseTable)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", middleware.Protected(), handler.GetMenu)
	menu.Get("/availability", middleware.Protected(), handler.GetMenuAvailability)
	menu.Post("/", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteMenuItems)

	inventory := v1.Group("/inventory", logger.New())
	inventory.Get("/", middleware.Protected(), handler.GetInventory)
	inventory.Post("/", middleware.Protected(), validate.CreateInventoryItem(), handler.CreateInventoryItem)
	inventory.Patch("/:inventoryId/stock", middleware.Protected(), validate.GetById("inventoryId"), validate.AdjustStock(), handler.AdjustStock)
	inventory.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteInventoryItems)

	stats := v1.Group("/stats", logger.New())
	stats.Get("/preptime", middleware.Protected(), handler.GetPrepTimeStats)
	stats.Post("/preptime/run", middleware.Protected(), handler.RunPrepTimeStats)
	stats.Get("/sales", middleware.Protected(), handler.GetSalesStats)

	// Canal en tiempo real por organización
	app.Use("/ws/:orgId", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:orgId", websocket.New(handler.WebSocketConnection))
}
