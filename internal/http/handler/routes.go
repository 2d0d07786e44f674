package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"famick/internal/http/middleware"
	"famick/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth        service.AuthService
	Products    service.ProductService
	Stock       service.StockService
	Shopping    service.ShoppingService
	Transfers   service.TransferService
	Attachments service.AttachmentService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, parser middleware.TokenParser, svcs Services) {
	// Health endpoints are public.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	auth := app.Group("/auth")
	auth.Post("/register", Register(svcs.Auth))
	auth.Post("/login", Login(svcs.Auth))
	auth.Post("/refresh", RefreshToken(svcs.Auth))

	// Everything below requires a valid access token.
	api := app.Group("/", middleware.AuthRequired(parser))

	products := api.Group("/products")
	products.Post("/", CreateProduct(svcs.Products))
	products.Get("/", ListProducts(svcs.Products))
	products.Get("/lookup/:barcode", LookupProduct(svcs.Products))
	products.Get("/:id", GetProduct(svcs.Products))
	products.Delete("/:id", DeleteProduct(svcs.Products))

	stock := api.Group("/stock")
	stock.Post("/", AddStock(svcs.Stock))
	stock.Get("/", ListStock(svcs.Stock))
	stock.Post("/consume", ConsumeStock(svcs.Stock))
	stock.Get("/expiring", ExpiringStock(svcs.Stock))
	stock.Delete("/:id", RemoveStock(svcs.Stock))

	shopping := api.Group("/shopping")
	shopping.Post("/lists", CreateShoppingList(svcs.Shopping))
	shopping.Get("/lists", ListShoppingLists(svcs.Shopping))
	shopping.Post("/lists/:id/items", AddShoppingItem(svcs.Shopping))
	shopping.Get("/lists/:id/items", ListShoppingItems(svcs.Shopping))
	shopping.Patch("/items/:id/done", SetShoppingItemDone(svcs.Shopping))
	shopping.Post("/sessions", StartShoppingSession(svcs.Shopping))
	shopping.Get("/sessions/:id", GetShoppingSession(svcs.Shopping))
	shopping.Post("/sync", SyncShoppingSession(svcs.Shopping))

	api.Get("/widget/items", WidgetItems(svcs.Shopping))

	transfers := api.Group("/transfers")
	transfers.Post("/", CreateTransfer(svcs.Transfers))
	transfers.Post("/:id/run", RunTransfer(svcs.Transfers))
	transfers.Get("/:id", GetTransferStatus(svcs.Transfers))

	files := api.Group("/files")
	files.Post("/", UploadAttachment(svcs.Attachments))
	files.Get("/", ListAttachments(svcs.Attachments))
	files.Get("/:id", GetAttachment(svcs.Attachments))
	files.Get("/:id/download", DownloadAttachment(svcs.Attachments))
	files.Get("/:id/url", PresignAttachment(svcs.Attachments))
	files.Delete("/:id", DeleteAttachment(svcs.Attachments))
}
