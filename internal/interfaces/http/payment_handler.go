package http

import (
	"github.com/gofiber/fiber/v2"

	appcheckout "github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// PaymentHandler maneja el checkout y el comprobante de pago (protegido).
type PaymentHandler struct {
	checkoutUC *appcheckout.CheckoutUseCase
	receiptUC  *appcheckout.ReceiptUseCase
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(checkoutUC *appcheckout.CheckoutUseCase, receiptUC *appcheckout.ReceiptUseCase) *PaymentHandler {
	return &PaymentHandler{checkoutUC: checkoutUC, receiptUC: receiptUC}
}

// Checkout godoc
// @Summary      Procesar la compra del carrito
// @Description  Anexa el historial, vacía el carrito, registra el pago y actualiza
// @Description  los contadores de vendidos. Si falla el paso de contadores responde
// @Description  500 pero el historial/carrito/pago ya quedaron escritos.
// @Tags         payment
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CheckoutRequest  true  "cartDetail"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/payment [post]
func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no verificada"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.CartDetail) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cartDetail es requerido"})
	}
	if err := h.checkoutUC.Checkout(user, in); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cada línea necesita _id y quantity > 0"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}

// Receipt godoc
// @Summary      Descargar el comprobante PDF de un pago
// @Tags         payment
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.Context(), id, GetUserID(c))
	if err != nil {
		if err == domain.ErrPaymentNotFound || err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el pago pertenece a otro usuario"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recibo-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
