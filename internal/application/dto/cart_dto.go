package dto

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// AddToCartRequest entrada para añadir un producto al carrito.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// CartViewResponse vista hidratada del carrito tras eliminar una línea:
// las líneas restantes más los detalles vivos de sus productos.
type CartViewResponse struct {
	ProductInfo []ProductResponse `json:"productInfo"`
	Cart        []entity.CartLine `json:"cart"`
}
