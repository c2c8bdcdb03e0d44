package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre MongoDB.
type PaymentRepo struct {
	coll *mongo.Collection
}

// NewPaymentRepository construye el adaptador de persistencia para pagos.
func NewPaymentRepository(coll *mongo.Collection) *PaymentRepo {
	return &PaymentRepo{coll: coll}
}

// Create persiste un nuevo documento de pago en el libro.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	ctx, cancel := opContext()
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID; nil si no existe.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := opContext()
	defer cancel()
	var p entity.Payment
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by id: %w", err)
	}
	return &p, nil
}
