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

// RegisterPollRoutes registers the scheduling-poll endpoints.
//
// POST /events/:id/polls - organizer opens a poll over candidate times
// GET  /polls/:id        - poll with options and vote counts
// POST /polls/:id/vote   - one vote per user, re-voting moves it
// POST /polls/:id/close  - organizer only; winning time is applied to the event
func RegisterPollRoutes(r gin.IRoutes, st *store.PostgresStore) {
	r.POST("/events/:id/polls", func(c *gin.Context) {
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
			c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can open a poll"})
			return
		}

		var req models.PollCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		if len(req.Options) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least two options required"})
			return
		}

		poll := models.Poll{
			ID:      uuid.New().String(),
			EventID: e.ID,
			Title:   req.Title,
		}
		for _, raw := range req.Options {
			startsAt, err := parseRFC3339(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "options must be RFC3339 timestamps"})
				return
			}
			poll.Options = append(poll.Options, models.PollOption{
				ID:       uuid.New().String(),
				StartsAt: startsAt,
			})
		}

		if err := st.CreatePoll(c.Request.Context(), poll); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		c.JSON(http.StatusCreated, poll)
	})

	r.GET("/polls/:id", func(c *gin.Context) {
		if auth.UserID(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		poll, err := st.PollByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "poll not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		c.JSON(http.StatusOK, poll)
	})

	r.POST("/polls/:id/vote", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req models.VoteRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.OptionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "optionId required"})
			return
		}

		err := st.Vote(c.Request.Context(), c.Param("id"), req.OptionID, userID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "poll or option not found"})
		case errors.Is(err, store.ErrPollClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "poll is closed"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"pollId": c.Param("id"), "optionId": req.OptionID})
		}
	})

	r.POST("/polls/:id/close", func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		poll, err := st.PollByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "poll not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		e, err := st.EventByID(c.Request.Context(), poll.EventID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}
		if e.CreatedBy != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can close a poll"})
			return
		}

		closed, err := st.ClosePoll(c.Request.Context(), poll.ID)
		switch {
		case errors.Is(err, store.ErrPollClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "poll is closed"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
		default:
			c.JSON(http.StatusOK, closed)
		}
	})
}
