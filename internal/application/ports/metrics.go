package ports

// Metrics puerto de métricas de negocio. La implementación Prometheus vive en infrastructure/metrics.
type Metrics interface {
	StageChanged(stage string)
	RegenerationFinished(result string, slots int)
}

// NopMetrics descarta todo.
type NopMetrics struct{}

func (NopMetrics) StageChanged(string)              {}
func (NopMetrics) RegenerationFinished(string, int) {}
