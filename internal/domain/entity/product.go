package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product entidad del catálogo. El carrito y el historial lo referencian por ID;
// solo en el momento de la compra se copian nombre y precio al PurchaseRecord.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Writer      primitive.ObjectID `bson:"writer,omitempty"` // usuario que lo publicó
	Sold        int                `bson:"sold"` // acumulado de unidades vendidas
	CreatedAt   time.Time          `bson:"created_at"`
}
