package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

const internalMessage = "error interno del servidor"

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con el sobre {"error","code"}. Los errores internos se registran
// completos y al cliente solo llega un mensaje genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	kind := domain.Kind(err)
	msg := err.Error()
	if kind == domain.KindInternal {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg = internalMessage
	} else if kind == domain.KindRegenerationFailed {
		log.Error().Err(err).Str("path", c.Path()).Msg("regeneración de horarios falló")
		msg = domain.ErrRegenerationFailed.Error()
	}
	return c.Status(statusFor(kind)).JSON(dto.ErrorResponse{Error: msg, Code: string(kind)})
}

func respond(c *fiber.Ctx, status int, kind domain.ErrorKind, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, Code: string(kind)})
}

// ErrorHandler manejador de fiber para errores no capturados (panics recuperados, 404 de rutas).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if fe, ok := err.(*fiber.Error); ok {
			kind := domain.KindInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				kind = domain.KindNotFound
			case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
				kind = domain.KindValidation
			}
			return respond(c, fe.Code, kind, fe.Message)
		}
		return writeError(c, log, err)
	}
}
