package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/internal/infrastructure/metrics"
)

func TestRecorder_ContadoresDeNegocio(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.StageChanged("FECHADO")
	r.StageChanged("FECHADO")
	r.RegenerationFinished("ok", 54)
	r.RegenerationFinished("failed", 0)

	n, err := testutil.GatherAndCount(reg, "flowboard_stage_changes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "una serie por etapa")

	n, err = testutil.GatherAndCount(reg, "flowboard_slot_regenerations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_MiddlewareUsaRuta(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	app := fiber.New()
	app.Use(r.Middleware())
	app.Get("/api/leads/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, id := range []string{"a", "b", "c"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/leads/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	n, err := testutil.GatherAndCount(reg, "flowboard_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "los ids no generan series nuevas")
}
