package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa un usuario de la tienda. El carrito y el historial de compras
// viven embebidos en el mismo documento (colección users).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"` // único en la colección
	PasswordHash string             `bson:"password"` // bcrypt hash, nunca plano después de persistir
	Name         string             `bson:"name"`
	Role         string             `bson:"role"`
	Image        string             `bson:"image,omitempty"`
	Cart         []CartLine         `bson:"cart"`
	History      []PurchaseRecord   `bson:"history"` // append-only: solo crece en checkout
	CreatedAt    time.Time          `bson:"created_at"`
}

// CartLine línea del carrito embebida en User. Como máximo una línea por producto:
// añadir un producto repetido incrementa Quantity en vez de crear otra línea.
type CartLine struct {
	ProductID string    `bson:"id" json:"id"` // referencia débil al producto (hex)
	Quantity  int       `bson:"quantity" json:"quantity"`
	Date      time.Time `bson:"date" json:"date"`
}

// PurchaseRecord línea de compra embebida en User.History y en Payment.Product.
// Nombre y precio son snapshot del producto al momento de la compra; inmutable una vez creada.
type PurchaseRecord struct {
	DateOfPurchase time.Time `bson:"date_of_purchase" json:"dateOfPurchase"`
	Name           string    `bson:"name" json:"name"`
	ProductID      string    `bson:"id" json:"id"`
	Price          float64   `bson:"price" json:"price"`
	Quantity       int       `bson:"quantity" json:"quantity"`
	PaymentID      string    `bson:"payment_id" json:"paymentId"` // uuid generado por línea
}
