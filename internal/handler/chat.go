package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/domain"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
	ChatID  string `json:"chat_id"`
}

type chatResponse struct {
	ChatID string `json:"chat_id"`
	*domain.AssistantReply
}

// chat runs one turn of the assistant pipeline. The exchange and the updated
// mental-health context are persisted after the reply is generated; a
// persistence failure is logged but does not eat a reply the user already
// earned.
func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)

	chat, err := h.chats.EnsureChat(ctx, uid, req.ChatID)
	if err != nil {
		failStorage(c, err)
		return
	}

	mc := chat.Context
	if mc == nil {
		mc = domain.NewMentalHealthContext()
	}

	reply, err := h.orchestrator.Process(ctx, chat.ID, req.Message, mc)
	if err != nil {
		fail(c, err)
		return
	}

	if _, err := h.chats.AppendExchange(ctx, uid, chat.ID, req.Message, reply.Response); err != nil {
		slog.Error("append exchange failed", "error", err, "chat_id", chat.ID)
	}
	if err := h.chats.SaveContext(ctx, uid, chat.ID, mc); err != nil {
		slog.Error("save context failed", "error", err, "chat_id", chat.ID)
	}

	c.JSON(http.StatusOK, chatResponse{ChatID: chat.ID, AssistantReply: reply})
}

// sessionHistory returns the in-memory conversation window, not the persisted
// transcript; GET /api/chats/:id serves the latter.
func (h *Handler) sessionHistory(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.chats.GetChat(c.Request.Context(), userID(c), id); err != nil {
		fail(c, err)
		return
	}

	sc := h.orchestrator.Memory().Context(id)
	c.JSON(http.StatusOK, gin.H{
		"session_id":       id,
		"summary":          sc.Summary,
		"critical_context": sc.Critical,
		"history":          sc.Recent,
	})
}

// clearSession drops the session's short-term memory. The persisted chat is
// untouched.
func (h *Handler) clearSession(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.chats.GetChat(c.Request.Context(), userID(c), id); err != nil {
		fail(c, err)
		return
	}

	h.orchestrator.Memory().Clear(id)
	c.JSON(http.StatusOK, gin.H{"session_id": id, "status": "cleared"})
}

func (h *Handler) memoryStats(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.chats.GetChat(c.Request.Context(), userID(c), id); err != nil {
		fail(c, err)
		return
	}

	stats, found := h.orchestrator.Memory().Stats(id)
	if !found {
		stats.SessionID = id
	}
	c.JSON(http.StatusOK, stats)
}
