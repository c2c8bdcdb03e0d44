package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para el libro de pagos.
// Append-only: no hay Update ni Delete.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
}
