package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/domain"
)

func (h *Handler) listExercises(c *gin.Context) {
	exercises := h.wellness.ListExercises(c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

func (h *Handler) getExercise(c *gin.Context) {
	exercise, err := h.wellness.GetExercise(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": exercise})
}

type recordCompletionRequest struct {
	ExerciseSlug    string `json:"exercise_slug" binding:"required"`
	DurationSeconds int    `json:"duration_seconds"`
	MoodBefore      int    `json:"mood_before"`
	MoodAfter       int    `json:"mood_after"`
	Rating          int    `json:"rating"`
}

func (h *Handler) recordCompletion(c *gin.Context) {
	var req recordCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	completion, err := h.wellness.RecordCompletion(c.Request.Context(), userID(c),
		req.ExerciseSlug, req.DurationSeconds, req.MoodBefore, req.MoodAfter, req.Rating)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"completion": completion})
}

func (h *Handler) listCompletions(c *gin.Context) {
	completions, err := h.wellness.ListCompletions(c.Request.Context(), userID(c), queryInt(c, "days", 0), queryInt(c, "limit", 0))
	if err != nil {
		slog.Error("list completions failed", "error", err, "user_id", userID(c))
		completions = []domain.WellnessCompletion{}
	}
	c.JSON(http.StatusOK, gin.H{"completions": completions})
}

func (h *Handler) wellnessStats(c *gin.Context) {
	stats, err := h.wellness.Stats(c.Request.Context(), userID(c), queryInt(c, "days", 30))
	if err != nil {
		slog.Error("wellness stats failed", "error", err, "user_id", userID(c))
		stats = &domain.WellnessStats{AvgMoodDelta: "0.00", AvgRating: "0.00"}
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) listResources(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"resources": h.catalog.ResourcesFor(category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": h.catalog.Resources})
}
