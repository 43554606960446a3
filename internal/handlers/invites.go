package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gatherly/event-planner-service/internal/auth"
	"github.com/gatherly/event-planner-service/internal/models"
	"github.com/gatherly/event-planner-service/internal/store"
)

// RegisterInviteRoutes registers the participation endpoints.
//
// POST /events/:id/invites  - organizer invites a user (pending record)
// GET  /invites             - caller's open invites
// POST /invites/:id/respond - invitee accepts or declines
func RegisterInviteRoutes(r gin.IRoutes, st *store.PostgresStore) {
	r.POST("/events/:id/invites", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		e, err := st.EventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if e.CreatedBy != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can invite"})
			return
		}

		var req models.InviteRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
			return
		}

		if _, err := st.UserByID(c.Request.Context(), req.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		pa := models.Participation{
			ID:      uuid.New().String(),
			EventID: e.ID,
			UserID:  req.UserID,
		}

		inserted, err := st.InviteUser(c.Request.Context(), pa)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		// 201 for new invites, 200 for repeats (idempotent success).
		status := http.StatusCreated
		if !inserted {
			status = http.StatusOK
		}
		c.JSON(status, gin.H{"id": pa.ID, "duplicate": !inserted})
	})

	r.GET("/invites", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		invites, err := st.PendingInvitesForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if invites == nil {
			invites = []models.Invite{}
		}

		c.JSON(http.StatusOK, gin.H{"invites": invites})
	})

	r.POST("/invites/:id/respond", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req models.InviteResponseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if req.Status != models.ParticipationAccepted && req.Status != models.ParticipationDeclined {
			c.JSON(http.StatusBadRequest, gin.H{"error": `status must be "accepted" or "declined"`})
			return
		}

		pa, err := st.ParticipationByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "invite not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if pa.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your invite"})
			return
		}

		if err := st.SetParticipationStatus(c.Request.Context(), pa.ID, req.Status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusConflict, gin.H{"error": "invite already answered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}

		pa.Status = req.Status
		c.JSON(http.StatusOK, pa)
	})
}
