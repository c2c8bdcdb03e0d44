package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) error {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Image:        in.Image,
		Cart:         []entity.CartLine{},
		History:      []entity.PurchaseRecord{},
		CreatedAt:    time.Now(),
	}
	// El índice único de email en la colección cubre la carrera entre el GetByEmail
	// y el insert: el repo traduce la violación a ErrEmailAlreadyExists.
	return uc.userRepo.Create(user)
}

// Login verifica email/password, genera JWT (1 hora por defecto) y retorna token + usuario.
// Las dos causas de fallo se mantienen distinguibles: ErrEmailNotFound y ErrWrongPassword.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrEmailNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrWrongPassword
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID.Hex(), user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		User:        *ToUserResponse(user),
		AccessToken: token,
	}, nil
}

// ToUserResponse proyecta un usuario a su vista pública, sin el hash de password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	cart := u.Cart
	if cart == nil {
		cart = []entity.CartLine{}
	}
	history := u.History
	if history == nil {
		history = []entity.PurchaseRecord{}
	}
	return &dto.UserResponse{
		ID:      u.ID.Hex(),
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.Role,
		Image:   u.Image,
		Cart:    cart,
		History: history,
	}
}
