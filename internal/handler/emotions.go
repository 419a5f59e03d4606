package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/domain"
)

type analyzeEmotionRequest struct {
	Text string `json:"text"`
	// Clients that record audio send the on-device transcript alongside the
	// payload; the audio bytes themselves are never decoded server-side.
	Transcript  string `json:"transcript"`
	AudioBase64 string `json:"audio_base64"`
}

func (h *Handler) analyzeEmotion(c *gin.Context) {
	var req analyzeEmotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		text = strings.TrimSpace(req.Transcript)
	}
	if text == "" {
		fail(c, domain.ErrEmptyText)
		return
	}

	c.JSON(http.StatusOK, h.emotionAnalyzer.Analyze(text, 5))
}

type recordEmotionRequest struct {
	Emotion   string `json:"emotion" binding:"required"`
	Intensity int    `json:"intensity"`
	Notes     string `json:"notes"`
}

func (h *Handler) recordEmotion(c *gin.Context) {
	var req recordEmotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.emotions.Record(c.Request.Context(), userID(c), req.Emotion, req.Intensity, req.Notes)
	if err != nil {
		failStorage(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *Handler) listEmotions(c *gin.Context) {
	entries, err := h.emotions.List(c.Request.Context(), userID(c), queryInt(c, "days", 0), queryInt(c, "limit", 0))
	if err != nil {
		slog.Error("list emotions failed", "error", err, "user_id", userID(c))
		entries = []domain.EmotionEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) emotionSummary(c *gin.Context) {
	summary, err := h.emotions.Summary(c.Request.Context(), userID(c), queryInt(c, "days", 30))
	if err != nil {
		slog.Error("emotion summary failed", "error", err, "user_id", userID(c))
		summary = &domain.EmotionSummary{ByEmotion: []domain.EmotionBreakdown{}}
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) deleteEmotion(c *gin.Context) {
	if err := h.emotions.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
