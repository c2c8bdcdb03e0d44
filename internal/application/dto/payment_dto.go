package dto

// CheckoutLine línea de detalle del carrito tal como la envía el cliente.
// El precio y la cantidad vienen del caller; ver DESIGN.md sobre el límite de confianza.
type CheckoutLine struct {
	Title    string  `json:"title" validate:"required"`
	ID       string  `json:"_id" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest entrada del checkout: las líneas del carrito a comprar.
type CheckoutRequest struct {
	CartDetail []CheckoutLine `json:"cartDetail" validate:"required,min=1"`
}
