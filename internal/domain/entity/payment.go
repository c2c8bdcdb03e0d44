package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentUser snapshot del comprador embebido en Payment (no es una referencia viva).
type PaymentUser struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Payment documento del libro de pagos (colección payments). Se crea exactamente
// una vez por checkout; este core nunca lo actualiza ni lo borra.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      PaymentUser        `bson:"user"`
	Product   []PurchaseRecord   `bson:"product"` // mismas líneas que se anexan al history del usuario
	CreatedAt time.Time          `bson:"created_at"`
}
