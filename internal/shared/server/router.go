package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/agents"
	"recruitedge-api/internal/shared/config"
	"recruitedge-api/internal/shared/metrics"
	"recruitedge-api/internal/shared/server/middleware"
	"recruitedge-api/internal/shared/server/respond"
)

const (
	rateGroupDefault  = "DEFAULT"
	rateGroupGenerate = "GENERATE"
)

// Registrar is implemented by every agent handler.
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config config.Config
	// Agents maps an agent slug to its handler.
	Agents       map[string]Registrar
	Interactions Registrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "env": deps.Config.Env})
	})
	api.GET("/metrics", metrics.Handler())
	api.GET("/agents", func(c *gin.Context) {
		respond.OK(c, gin.H{"items": agents.Catalog})
	})

	scoped := []gin.HandlerFunc{middleware.Identity(), middleware.RateLimit(rateLimitConfig(deps.Config))}

	me := api.Group("", scoped...)
	registerMeRoutes(me)
	if deps.Interactions != nil {
		deps.Interactions.RegisterRoutes(me)
	}

	agentRoutes := api.Group("/agents", scoped...)
	for _, info := range agents.Catalog {
		h, ok := deps.Agents[info.Slug]
		if !ok || h == nil {
			continue
		}
		h.RegisterRoutes(agentRoutes.Group("/"+info.Slug, middleware.Agent(info.Slug)))
		h.RegisterRoutes(agentRoutes.Group("/"+info.Category+"/"+info.Slug, middleware.Agent(info.Slug)))
	}

	return r
}

func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	rps, burst := cfg.RateLimitRPS, cfg.RateLimitBurst
	return middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault:  {Rate: rps, Burst: burst},
			rateGroupGenerate: {Rate: max(1, rps/10), Burst: max(2, burst/10)},
		},
	}
}

// rateGroupFor puts the mock-AI and probe endpoints in the stricter bucket.
func rateGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return rateGroupDefault
	}
	path := c.FullPath()
	for _, suffix := range []string{"/generate", "/import", "/run"} {
		if strings.HasSuffix(path, suffix) {
			return rateGroupGenerate
		}
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
