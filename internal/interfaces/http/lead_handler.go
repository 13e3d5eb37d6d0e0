package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/application/usecase"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// MessageLeadDeleted confirmación de DELETE /api/leads/:id.
const MessageLeadDeleted = "Lead excluído com sucesso"

// LeadHandler maneja las peticiones HTTP para el recurso Lead.
type LeadHandler struct {
	uc  *usecase.LeadUseCase
	log *logger.Logger
}

// NewLeadHandler construye el handler inyectando el caso de uso.
func NewLeadHandler(uc *usecase.LeadUseCase, log *logger.Logger) *LeadHandler {
	return &LeadHandler{uc: uc, log: log}
}

// Resource expone el handler al despachador genérico.
func (h *LeadHandler) Resource() Resource {
	return Resource{List: h.List, Upsert: h.Upsert, Delete: h.Delete}
}

// List godoc
// @Summary      Listar leads (más recientes primero)
// @Tags         leads
// @Produce      json
// @Success      200  {object}  dto.LeadListResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertLeadRequest  true  "Lead"
// @Success      200   {object}  dto.LeadEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, domain.KindValidation, "cuerpo inválido")
	}
	out, err := h.uc.Upsert(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.LeadEnvelope{Lead: *out})
}

// Delete godoc
// @Summary      Eliminar lead
// @Tags         leads
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx, id string) error {
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: MessageLeadDeleted})
}

// UpdateStage godoc
// @Summary      Mover lead a otra etapa del funil
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lead"
// @Param        body  body  dto.UpdateStageRequest  true  "Etapa destino"
// @Success      200   {object}  dto.LeadEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/stage [patch]
func (h *LeadHandler) UpdateStage(c *fiber.Ctx) error {
	var in dto.UpdateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, domain.KindValidation, "cuerpo inválido")
	}
	out, err := h.uc.UpdateStage(c.Context(), c.Params("id"), in.Stage)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.LeadEnvelope{Lead: *out})
}
