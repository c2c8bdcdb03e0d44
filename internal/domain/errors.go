package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrPaymentNotFound    = errors.New("pago no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmailNotFound      = errors.New("email no registrado")
	ErrWrongPassword      = errors.New("contraseña incorrecta")
	ErrUnauthorized       = errors.New("no autorizado")
)
