package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/event-planner-service/internal/auth"
	"github.com/gatherly/event-planner-service/internal/config"
	"github.com/gatherly/event-planner-service/internal/conflicts"
	"github.com/gatherly/event-planner-service/internal/handlers"
	"github.com/gatherly/event-planner-service/internal/store"
)

// NewRouter wires public endpoints and authenticated APIs.
// Public: /health, /ready, /auth/register, /auth/login
// Authenticated: /me, /events, /events/conflicts, /invites, /polls, /push
func NewRouter(cfg config.Config, st *store.PostgresStore) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterAuthRoutes(r, st, cfg.JWTSecret)

	// Auth group enforces user context via Authorization: Bearer.
	authGroup := r.Group("/")
	authGroup.Use(auth.SessionMiddleware(cfg.JWTSecret))

	handlers.RegisterProfileRoutes(authGroup, st)
	handlers.RegisterEventRoutes(authGroup, st)
	handlers.RegisterConflictRoutes(authGroup, conflicts.NewResolver(st))
	handlers.RegisterInviteRoutes(authGroup, st)
	handlers.RegisterPollRoutes(authGroup, st)
	handlers.RegisterPushRoutes(authGroup, st)

	return r
}
