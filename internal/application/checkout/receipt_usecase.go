package checkout

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un pago del libro.
type ReceiptUseCase struct {
	paymentRepo repository.PaymentRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso del comprobante.
func NewReceiptUseCase(paymentRepo repository.PaymentRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{paymentRepo: paymentRepo, generator: generator}
}

// GenerateReceipt carga el pago y devuelve los bytes del PDF.
// Solo el comprador del pago puede pedir su comprobante.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, paymentID, requesterID string) ([]byte, error) {
	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	if payment.User.ID != requesterID {
		return nil, domain.ErrUnauthorized
	}
	return uc.generator.GenerateReceiptPDF(ctx, payment)
}
