package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/event-planner-service/internal/auth"
	"github.com/gatherly/event-planner-service/internal/conflicts"
	"github.com/gatherly/event-planner-service/internal/models"
)

// RegisterConflictRoutes registers the scheduling-conflict endpoint.
//
// POST /events/conflicts
//   - Requires a session; the 401 fires before any storage access
//   - Body {userIds: [...], date: "YYYY-MM-DD"}
//   - Empty userIds or date short-circuits to {"conflicts": {}}
func RegisterConflictRoutes(r gin.IRoutes, resolver *conflicts.Resolver) {
	r.POST("/events/conflicts", func(c *gin.Context) {
		if auth.UserID(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req models.ConflictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		result, err := resolver.Resolve(c.Request.Context(), req.UserIDs, req.Date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		c.JSON(http.StatusOK, models.ConflictResponse{Conflicts: result})
	})
}
