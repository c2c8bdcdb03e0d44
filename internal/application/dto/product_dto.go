package dto

import "time"

// CreateProductRequest entrada para publicar un producto en el catálogo.
type CreateProductRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Writer      string    `json:"writer,omitempty"`
	Sold        int       `json:"sold"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Limit    int               `json:"limit"`
	Skip     int               `json:"skip"`
}
