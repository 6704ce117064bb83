package components

import (
	"studio-ops/internal/handler"
	"studio-ops/internal/handler/api"
	"studio-ops/internal/handler/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewMetricsRegistry,
		middleware.NewMetrics,
		api.NewAuthHandler,
		api.NewPackageHandler,
		api.NewCreditHandler,
		api.NewSubmissionHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewMetricsRegistry() (*prometheus.Registry, prometheus.Registerer) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return reg, reg
}
