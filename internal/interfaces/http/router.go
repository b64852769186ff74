package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/caja-api/internal/application/auth"
	"github.com/jhoicas/caja-api/internal/application/catalog"
	"github.com/jhoicas/caja-api/internal/application/inventory"
	"github.com/jhoicas/caja-api/internal/application/sale"
	"github.com/jhoicas/caja-api/internal/application/till"
	"github.com/jhoicas/caja-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	ReceiveUC   *inventory.ReceiveStockUseCase
	StockQuery  *inventory.StockQuery
	Till        *till.Till
	SaleQueryUC *sale.QueryUseCase
	ReverseUC   *sale.ReverseSaleUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/users", adminOnly, authHandler.CreateUser)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Inventory: entradas de mercancía y existencias
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReceiveUC, deps.StockQuery)
	invGroup.Post("/receipts", adminOnly, inventoryHandler.Receive)
	invGroup.Get("/stock/:product_id", inventoryHandler.Stock)
	invGroup.Get("/movements/:product_id", inventoryHandler.Movements)

	// Till (caja)
	tillGroup := protected.Group("/till")
	tillHandler := NewTillHandler(deps.Till)
	tillGroup.Get("/cart", tillHandler.Cart)
	tillGroup.Delete("/cart", tillHandler.Cancel)
	tillGroup.Post("/scan", tillHandler.Scan)
	tillGroup.Put("/items/:product_id", tillHandler.SetQuantity)
	tillGroup.Post("/items/:product_id/adjust", tillHandler.Adjust)
	tillGroup.Delete("/items/:product_id", tillHandler.Remove)
	tillGroup.Post("/checkout", tillHandler.Checkout)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleQueryUC, deps.ReverseUC)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Delete("/:id", adminOnly, saleHandler.Reverse)
}
