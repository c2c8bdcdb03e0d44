package cart

import (
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CartUseCase casos de uso del carrito: añadir con merge y eliminar con vista hidratada.
type CartUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso del carrito.
func NewCartUseCase(userRepo repository.UserRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{userRepo: userRepo, productRepo: productRepo}
}

// Add añade un producto al carrito del usuario. Si ya hay una línea para ese
// producto incrementa su cantidad; si no, crea una línea con cantidad 1.
// Ambos pasos son updates condicionales de un solo documento, así que dos Add
// concurrentes del mismo producto nunca dejan dos líneas.
func (uc *CartUseCase) Add(userID, productID string) ([]entity.CartLine, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.IncrementCartQuantity(userID, productID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// No había línea: push protegido con filtro "el producto no está en el carrito".
		line := entity.CartLine{ProductID: productID, Quantity: 1, Date: time.Now()}
		user, err = uc.userRepo.PushCartLine(userID, line)
		if err != nil {
			return nil, err
		}
		if user == nil {
			// Otra petición ganó la carrera e insertó la línea: incrementar sobre ella.
			user, err = uc.userRepo.IncrementCartQuantity(userID, productID)
			if err != nil {
				return nil, err
			}
		}
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user.Cart, nil
}

// Remove elimina la línea del producto indicado (no-op si no existe) y devuelve la
// vista hidratada: líneas restantes más detalles vivos de sus productos.
func (uc *CartUseCase) Remove(userID, productID string) (*dto.CartViewResponse, error) {
	user, err := uc.userRepo.PullCartLine(userID, productID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	cart := user.Cart
	if cart == nil {
		cart = []entity.CartLine{}
	}
	ids := make([]string, 0, len(cart))
	for _, line := range cart {
		ids = append(ids, line.ProductID)
	}

	products, err := uc.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	info := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		info = append(info, toProductResponse(p))
	}
	return &dto.CartViewResponse{ProductInfo: info, Cart: cart}, nil
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
