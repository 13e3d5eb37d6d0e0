package http

import (
	"github.com/gofiber/fiber/v2"

	appagenda "github.com/jhoicas/flowboard-api/internal/application/agenda"
	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

const agendaPDFTitle = "Agenda de disponibilidade"

// AgendaHandler generación y lectura de horarios.
type AgendaHandler struct {
	regenerate *appagenda.RegenerateUseCase
	calendar   *appagenda.CalendarUseCase
	log        *logger.Logger
}

// NewAgendaHandler construye el handler.
func NewAgendaHandler(regenerate *appagenda.RegenerateUseCase, calendar *appagenda.CalendarUseCase, log *logger.Logger) *AgendaHandler {
	return &AgendaHandler{regenerate: regenerate, calendar: calendar, log: log}
}

// Generate godoc
// @Summary      Regenerar horarios desde una plantilla semanal
// @Tags         agenda
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateSlotsRequest  true  "Plantilla"
// @Success      200   {object}  dto.RegenerationReport
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/agenda/generate [post]
func (h *AgendaHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateSlotsRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, domain.KindValidation, "cuerpo inválido")
	}
	tpl, err := appagenda.TemplateFromRequest(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	report, err := h.regenerate.Regenerate(c.Context(), appagenda.RegenerateInput{
		Template:      tpl,
		LookaheadDays: in.LookaheadDays,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("user_id", GetUserID(c)).
		Int64("inserted", report.Inserted).
		Int64("deleted", report.Deleted).
		Msg("horarios regenerados")
	return c.JSON(report)
}

// Slots godoc
// @Summary      Listar horarios por fecha y hora
// @Tags         agenda
// @Produce      json
// @Success      200  {object}  dto.SlotListResponse
// @Router       /api/agenda/slots [get]
func (h *AgendaHandler) Slots(c *fiber.Ctx) error {
	out, err := h.calendar.Slots(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Events godoc
// @Summary      Horarios proyectados como eventos de calendario
// @Tags         agenda
// @Produce      json
// @Success      200  {object}  dto.CalendarEventListResponse
// @Router       /api/agenda/events [get]
func (h *AgendaHandler) Events(c *fiber.Ctx) error {
	out, err := h.calendar.Events(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Agenda imprimible de la ventana actual
// @Tags         agenda
// @Produce      application/pdf
// @Success      200
// @Router       /api/agenda/slots.pdf [get]
func (h *AgendaHandler) PDF(c *fiber.Ctx) error {
	pdf, err := h.calendar.PDF(c.Context(), agendaPDFTitle)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="agenda.pdf"`)
	return c.Send(pdf)
}
