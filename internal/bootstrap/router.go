package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/blockpad-io/blockpad-backend/internal/api/http"
	"github.com/blockpad-io/blockpad-backend/internal/api/http/middleware"
	"github.com/blockpad-io/blockpad-backend/internal/boards"
	"github.com/blockpad-io/blockpad-backend/internal/console"
	"github.com/blockpad-io/blockpad-backend/internal/projects"
	sessionhttp "github.com/blockpad-io/blockpad-backend/internal/session/http"
	"github.com/blockpad-io/blockpad-backend/internal/session/service"
	"github.com/blockpad-io/blockpad-backend/internal/workspace"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	DB           *pgxpool.Pool // nil in standalone mode
	Redis        *redis.Client
	Store        projects.Store
	Bridge       *workspace.Bridge
	ConsoleRepo  *console.Repo
	Catalog      *boards.Catalog
	Orchestrator *service.Orchestrator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	// the editing surface is served from another origin
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	sessionhttp.Register(api.Group("/session"), dep.Orchestrator)
	projects.Register(api.Group("/projects"), dep.Store)
	boards.Register(api.Group("/boards"), dep.Catalog)
	workspace.Register(api.Group("/workspace"), dep.Bridge, dep.Orchestrator.MarkDirty)
	console.Register(api.Group("/console"), dep.ConsoleRepo)

	r.GET("/debug/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, service.GetMetrics())
	})

	return r
}
