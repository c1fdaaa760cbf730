// Package router wires the HTTP handlers onto a gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/ideascope/internal/http/handler"
	"github.com/raphaelgruber/ideascope/internal/http/middleware"
	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/service"
)

// Services are the collaborators behind the API. Reports may be nil, in
// which case the report routes are not registered.
type Services struct {
	Analyzer handler.Analyzer
	Evidence service.EvidenceFetcher
	Refiner  handler.Suggester
	Repos    handler.RepoSearcher
	Reports  *service.ReportService
	Metrics  *metrics.Collector
}

// New returns an engine with recovery and logging middleware and all routes.
func New(services Services) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	SetupRoutes(router, services)
	return router
}

func SetupRoutes(router *gin.Engine, services Services) {
	meta := handler.NewMetaHandler(services.Metrics)
	router.GET("/health", meta.Health)

	api := router.Group("/api")
	{
		analysis := handler.NewAnalysisHandler(services.Analyzer, services.Reports)
		api.POST("/analyze", analysis.Analyze)
		api.GET("/analyze/stream", analysis.Stream)

		evidence := handler.NewEvidenceHandler(services.Evidence)
		api.POST("/research-papers", evidence.ResearchPapers)
		api.POST("/classify", evidence.Classify)

		api.POST("/refine", handler.NewRefineHandler(services.Refiner).Refine)
		api.POST("/github-repos", handler.NewRepoHandler(services.Repos).Search)

		api.GET("/schema", meta.Schema)
		api.GET("/stats", meta.Stats)

		if services.Reports != nil {
			ReportRouter(api.Group("/reports"), handler.NewReportHandler(services.Reports))
		}
	}
}

func ReportRouter(rg *gin.RouterGroup, h *handler.ReportHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
}
