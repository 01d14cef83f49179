package ports

// WorkflowMetrics puerto de métricas del flujo de redistribución.
type WorkflowMetrics interface {
	// RequestCreated origin: manual, surplus o auto.
	RequestCreated(direction, origin string)
	// RequestDecided status: approved o rejected.
	RequestDecided(status string)
	// SettlementFailed reason: insufficient_stock, conflict o error.
	SettlementFailed(reason string)
}

// NopMetrics implementación vacía para tests y despliegues sin Prometheus.
type NopMetrics struct{}

func (NopMetrics) RequestCreated(string, string) {}
func (NopMetrics) RequestDecided(string)         {}
func (NopMetrics) SettlementFailed(string)       {}
