package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"studio-ops/internal/domain/user"
	"studio-ops/internal/handler/api"
	"studio-ops/internal/handler/middleware"
	"studio-ops/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	packageHandler *api.PackageHandler,
	creditHandler *api.CreditHandler,
	submissionHandler *api.SubmissionHandler,
	authMiddleware *middleware.AuthMiddleware,
	metrics *middleware.Metrics,
	registry *prometheus.Registry,
) {
	setupMiddleware(engine, cfg, metrics)
	setupRoutes(engine, authHandler, packageHandler, creditHandler, submissionHandler, authMiddleware, registry)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, metrics *middleware.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(metrics.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	packageHandler *api.PackageHandler,
	creditHandler *api.CreditHandler,
	submissionHandler *api.SubmissionHandler,
	authMiddleware *middleware.AuthMiddleware,
	registry *prometheus.Registry,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Reads need a login; writes additionally need the operator role.
	operatorOnly := authMiddleware.RequireRoleAtLeast(user.RoleOperator)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		packages := apiGroup.Group("/packages")
		packages.Use(authMiddleware.RequireAuth())
		{
			addRoutes(packages, []route{
				{Method: http.MethodGet, Path: "", Handler: packageHandler.ListPackages},
				{Method: http.MethodGet, Path: "/:id", Handler: packageHandler.GetPackage},
			})
		}

		clients := apiGroup.Group("/clients")
		clients.Use(authMiddleware.RequireAuth())
		{
			addRoutes(clients, []route{
				{Method: http.MethodGet, Path: "/:id/credit", Handler: creditHandler.GetClientCredit},
				{Method: http.MethodGet, Path: "/:id/assignments", Handler: creditHandler.ListAssignments},
				{Method: http.MethodGet, Path: "/:id/submissions", Handler: submissionHandler.ListClientSubmissions},
				{Method: http.MethodPost, Path: "/:id/assignment/preview", Handler: creditHandler.PreviewAssignment, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPut, Path: "/:id/assignment", Handler: creditHandler.AssignPackage, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}

		submissions := apiGroup.Group("/submissions")
		submissions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(submissions, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: submissionHandler.GetSubmission},
				{Method: http.MethodPost, Path: "", Handler: submissionHandler.CreateSubmission, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: submissionHandler.UpdateStatus, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/edits", Handler: submissionHandler.RecordEdit, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: submissionHandler.CancelSubmission, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
