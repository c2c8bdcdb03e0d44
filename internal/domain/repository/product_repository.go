package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDs devuelve los productos cuyos IDs estén en la lista, para hidratar
	// el carrito. IDs inexistentes simplemente no aparecen en el resultado.
	GetByIDs(ids []string) ([]*entity.Product, error)
	List(limit, skip int, search string) ([]*entity.Product, error)
	// IncrementSold suma quantity al contador de vendidos del producto.
	IncrementSold(productID string, quantity int) error
}
