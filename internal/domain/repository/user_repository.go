package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Las operaciones de carrito son actualizaciones atómicas sobre un solo documento:
// la decisión incremento-vs-push se resuelve en el filtro, no con lectura previa.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)

	// IncrementCartQuantity suma 1 a la línea del carrito que ya contiene el producto.
	// Devuelve el usuario actualizado, o nil si no existía línea para ese producto.
	IncrementCartQuantity(userID, productID string) (*entity.User, error)
	// PushCartLine añade una línea nueva solo si el producto aún no está en el carrito.
	// Devuelve el usuario actualizado, o nil si la línea ya existía (carrera perdida).
	PushCartLine(userID string, line entity.CartLine) (*entity.User, error)
	// PullCartLine elimina la línea del producto indicado. Si no existe es un no-op;
	// siempre devuelve el usuario resultante.
	PullCartLine(userID, productID string) (*entity.User, error)
	// AppendHistoryAndClearCart anexa los registros de compra al history y vacía el
	// carrito en una sola actualización del documento.
	AppendHistoryAndClearCart(userID string, records []entity.PurchaseRecord) error

	// FindByID y FindByEmail alias semánticos para uso en auth.
	FindByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
