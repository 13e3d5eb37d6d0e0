package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/flowboard-api/internal/application/analytics"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve el resumen del funil.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_leads, total_companies, by_stage[5],
// open_pipeline_value, won_value, conversion_rate).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
