package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID      = "user_id"
	LocalCurrentUser = "current_user"
)

// AuthMiddleware valida el Bearer Token JWT, resuelve el subject a un usuario vivo
// de la colección y lo deja en c.Locals. Cualquier fallo (token ausente, inválido,
// expirado, o usuario inexistente) corta la petición con 401 sin invocar el handler.
func AuthMiddleware(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		user, err := users.FindByID(userID)
		if err != nil || user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario del token no existe"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCurrentUser, user)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCurrentUser devuelve el usuario resuelto por el middleware de auth.
func GetCurrentUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalCurrentUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
