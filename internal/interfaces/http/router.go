package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	appcart "github.com/jhoicas/tienda-api/internal/application/cart"
	appcheckout "github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CartUC     *appcart.CartUseCase
	CheckoutUC *appcheckout.CheckoutUseCase
	ReceiptUC  *appcheckout.ReceiptUseCase
	ProductUC  *usecase.ProductUseCase
	UserRepo   repository.UserRepository
	JWTSecret  string
}

// Router registra las rutas de la API. Todo excepto register/login y la lectura
// del catálogo exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protect := AuthMiddleware(deps.JWTSecret, deps.UserRepo)

	// Users: auth (público) + sesión/carrito (protegido)
	users := api.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC)
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/auth", protect, authHandler.Verify)
	users.Post("/logout", protect, authHandler.Logout)

	cartHandler := NewCartHandler(deps.CartUC)
	users.Post("/cart", protect, cartHandler.Add)
	users.Delete("/cart", protect, cartHandler.Remove)

	// Products: lectura pública, publicación protegida
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", protect, productHandler.Create)

	// Payment: checkout y comprobante (protegido)
	payment := api.Group("/payment", protect)
	paymentHandler := NewPaymentHandler(deps.CheckoutUC, deps.ReceiptUC)
	payment.Post("/", paymentHandler.Checkout)
	payment.Get("/:id/receipt", paymentHandler.Receipt)
}
