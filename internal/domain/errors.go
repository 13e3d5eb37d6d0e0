package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrRegenerationInProgress = errors.New("ya hay una generación de horarios en curso")
	ErrRegenerationFailed     = errors.New("la generación de horarios falló; los horarios anteriores se conservan")
)

// ErrorKind conjunto cerrado de categorías de error visibles para el cliente.
type ErrorKind string

const (
	KindValidation         ErrorKind = "VALIDATION"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindConflict           ErrorKind = "CONFLICT"
	KindUnauthorized       ErrorKind = "UNAUTHORIZED"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindRegenerationFailed ErrorKind = "REGENERATION_FAILED"
	KindInternal           ErrorKind = "INTERNAL"
)

// Kind clasifica cualquier error. Lo que no es un error de dominio conocido es KindInternal:
// el detalle se registra en el log del servidor y no se devuelve al cliente.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict), errors.Is(err, ErrRegenerationInProgress):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrRegenerationFailed):
		return KindRegenerationFailed
	default:
		return KindInternal
	}
}
