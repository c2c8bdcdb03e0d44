package usecase

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create publica un producto en el catálogo con el usuario autenticado como writer.
func (uc *ProductUseCase) Create(writerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Title == "" || in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	writer, err := primitive.ObjectIDFromHex(writerID)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Writer:      writer,
		Sold:        0,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto del catálogo; nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)
	return &out, nil
}

// List lista productos con paginación y búsqueda por título.
func (uc *ProductUseCase) List(limit, skip int, search string) (*dto.ProductListResponse, error) {
	products, err := uc.repo.List(limit, skip, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return &dto.ProductListResponse{Products: out, Limit: limit, Skip: skip}, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Writer:      p.Writer.Hex(),
		Sold:        p.Sold,
		CreatedAt:   p.CreatedAt,
	}
}
