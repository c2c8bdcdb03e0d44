package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// CheckoutUseCase procesa la compra del carrito: anexa el historial, vacía el
// carrito, registra el pago en el libro y actualiza los contadores de vendidos.
//
// La secuencia NO es atómica entre documentos: si falla el paso de contadores,
// el history/carrito y el Payment ya quedaron escritos y no se revierten. Es una
// ventana de inconsistencia aceptada; se registra en el log para reconciliación.
type CheckoutUseCase struct {
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso de checkout.
func NewCheckoutUseCase(
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// Checkout ejecuta la compra para el usuario autenticado.
//
//  1. Construye un PurchaseRecord por línea, con timestamp y payment_id uuid frescos.
//  2. Anexa los registros al history del usuario y vacía su carrito en un solo update.
//  3. Persiste el documento Payment con snapshot del comprador y las mismas líneas.
//  4. Incrementa el contador sold de cada producto, uno a uno y en el orden de
//     entrada, para acotar la concurrencia de escritura contra el catálogo.
//
// No es idempotente: dos llamadas con el mismo cartDetail producen dos pagos.
func (uc *CheckoutUseCase) Checkout(user *entity.User, in dto.CheckoutRequest) error {
	if len(in.CartDetail) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range in.CartDetail {
		if line.ID == "" || line.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}

	now := time.Now()
	records := make([]entity.PurchaseRecord, 0, len(in.CartDetail))
	for _, line := range in.CartDetail {
		records = append(records, entity.PurchaseRecord{
			DateOfPurchase: now,
			Name:           line.Title,
			ProductID:      line.ID,
			Price:          line.Price,
			Quantity:       line.Quantity,
			PaymentID:      uuid.New().String(),
		})
	}

	if err := uc.userRepo.AppendHistoryAndClearCart(user.ID.Hex(), records); err != nil {
		return fmt.Errorf("anexar history y vaciar carrito: %w", err)
	}

	payment := &entity.Payment{
		User: entity.PaymentUser{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
		},
		Product:   records,
		CreatedAt: now,
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return fmt.Errorf("registrar pago: %w", err)
	}

	for _, record := range records {
		if err := uc.productRepo.IncrementSold(record.ProductID, record.Quantity); err != nil {
			// El history, el carrito vacío y el Payment ya están comprometidos.
			uc.log.Error().Err(err).
				Str("user_id", user.ID.Hex()).
				Str("product_id", record.ProductID).
				Int("quantity", record.Quantity).
				Msg("checkout: fallo al incrementar vendidos; pago ya registrado")
			return fmt.Errorf("incrementar vendidos de %s: %w", record.ProductID, err)
		}
	}
	return nil
}
