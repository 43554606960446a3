package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/event-planner-service/internal/auth"
	"github.com/gatherly/event-planner-service/internal/models"
	"github.com/gatherly/event-planner-service/internal/store"
)

// RegisterPushRoutes registers push-subscription storage. The service
// only keeps the endpoints; it never delivers notifications itself.
//
// POST   /push/subscriptions           - upsert an endpoint for the caller
// DELETE /push/subscriptions?endpoint= - drop an endpoint
func RegisterPushRoutes(r gin.IRoutes, st *store.PostgresStore) {
	r.POST("/push/subscriptions", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var sub models.PushSubscription
		if err := c.ShouldBindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if sub.Endpoint == "" || sub.P256dh == "" || sub.Auth == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint, p256dh, auth required"})
			return
		}
		sub.UserID = userID

		if err := st.SavePushSubscription(c.Request.Context(), sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"endpoint": sub.Endpoint})
	})

	r.DELETE("/push/subscriptions", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		endpoint := c.Query("endpoint")
		if endpoint == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint required"})
			return
		}

		if err := st.DeletePushSubscription(c.Request.Context(), userID, endpoint); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db delete failed"})
			return
		}

		c.Status(http.StatusNoContent)
	})
}
