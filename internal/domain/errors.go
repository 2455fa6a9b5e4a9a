package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; los casos de uso
// los comparan con errors.Is para decidir cada resultado de negocio.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrContractNotFound   = errors.New("no existe contrato entre la compañía y el proveedor")
	ErrOverReserved       = errors.New("sobreoferta de reservas: la reserva supera el stock disponible")
	ErrInvalidQuantity    = errors.New("cantidad inválida para la operación de stock")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
