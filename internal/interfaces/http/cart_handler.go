package http

import (
	"github.com/gofiber/fiber/v2"

	appcart "github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// CartHandler maneja las operaciones del carrito (protegido).
type CartHandler struct {
	uc *appcart.CartUseCase
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *appcart.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Add godoc
// @Summary      Añadir un producto al carrito (merge si ya existe la línea)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "productId"
// @Success      201   {array}   entity.CartLine
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/cart [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	cart, err := h.uc.Add(GetUserID(c), in.ProductID)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId inválido"})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// Remove godoc
// @Summary      Quitar un producto del carrito y devolver la vista hidratada
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  true  "ID del producto"
// @Success      200  {object}  dto.CartViewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/cart [delete]
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	// Quitar un producto que no está en el carrito es un no-op exitoso.
	out, err := h.uc.Remove(GetUserID(c), productID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
