package domain

import "errors"

// Errores de dominio de la red de kioscos. La capa HTTP los traduce a códigos con errors.Is;
// los errores del flujo de redistribución los envuelven con %w.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual de la solicitud")
	ErrInsufficientStock  = errors.New("stock insuficiente en el kiosco de origen")
)
