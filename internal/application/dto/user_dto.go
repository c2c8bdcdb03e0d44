package dto

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// RegisterRequest entrada para registro (auth): email, password y datos de perfil.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	Image    string `json:"image" validate:"omitempty,max=500"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse proyección pública de un usuario: nunca incluye el hash de password.
type UserResponse struct {
	ID      string                  `json:"_id"`
	Email   string                  `json:"email"`
	Name    string                  `json:"name"`
	Role    string                  `json:"role"`
	Image   string                  `json:"image,omitempty"`
	Cart    []entity.CartLine       `json:"cart"`
	History []entity.PurchaseRecord `json:"history"`
}

// LoginResponse salida de login: proyección del usuario + token de acceso.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}
