package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/application/usecase"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc  *usecase.CompanyUseCase
	log *logger.Logger
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, log: log}
}

// Resource expone el handler al despachador genérico. Las empresas no se eliminan por la API.
func (h *CompanyHandler) Resource() Resource {
	return Resource{List: h.List, Upsert: h.Upsert}
}

// List godoc
// @Summary      Listar empresas por nombre
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertCompanyRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.CompanyEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, domain.KindValidation, "cuerpo inválido")
	}
	out, err := h.uc.Upsert(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.CompanyEnvelope{Company: *out})
}
