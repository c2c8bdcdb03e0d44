package checkout

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ReceiptPDFGenerator puerto para generar el comprobante PDF de un pago.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, payment *entity.Payment) ([]byte, error)
}
