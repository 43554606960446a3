package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gatherly/event-planner-service/internal/auth"
	"github.com/gatherly/event-planner-service/internal/models"
	"github.com/gatherly/event-planner-service/internal/store"
)

// parseRFC3339 parses an RFC3339 timestamp.
func parseRFC3339(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339, ts)
}

// RegisterEventRoutes registers event CRUD.
//
// POST   /events     - create an event owned by the caller
// GET    /events     - events the caller organizes or accepted, time-ascending
// GET    /events/:id - fetch one event
// PUT    /events/:id - organizer only
// DELETE /events/:id - organizer only
func RegisterEventRoutes(r gin.IRoutes, st *store.PostgresStore) {
	r.POST("/events", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req models.EventCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		if req.StartsAt == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startsAt required"})
			return
		}

		startsAt, err := parseRFC3339(req.StartsAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startsAt must be RFC3339"})
			return
		}

		e := models.Event{
			ID:          uuid.New().String(),
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			StartsAt:    startsAt,
			CreatedBy:   userID,
		}

		if err := st.CreateEvent(c.Request.Context(), e); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		c.JSON(http.StatusCreated, e)
	})

	r.GET("/events", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		events, err := st.EventsForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if events == nil {
			events = []models.Event{}
		}

		c.JSON(http.StatusOK, gin.H{"events": events})
	})

	r.GET("/events/:id", func(c *gin.Context) {
		if auth.UserID(c) == "" {
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

		c.JSON(http.StatusOK, e)
	})

	r.PUT("/events/:id", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		existing, err := st.EventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if existing.CreatedBy != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can modify an event"})
			return
		}

		var req models.EventCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if req.Title == "" || req.StartsAt == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and startsAt required"})
			return
		}

		startsAt, err := parseRFC3339(req.StartsAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startsAt must be RFC3339"})
			return
		}

		existing.Title = req.Title
		existing.Description = req.Description
		existing.Location = req.Location
		existing.StartsAt = startsAt

		if err := st.UpdateEvent(c.Request.Context(), existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}

		c.JSON(http.StatusOK, existing)
	})

	r.DELETE("/events/:id", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		existing, err := st.EventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if existing.CreatedBy != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can delete an event"})
			return
		}

		if err := st.DeleteEvent(c.Request.Context(), existing.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db delete failed"})
			return
		}

		c.Status(http.StatusNoContent)
	})
}
