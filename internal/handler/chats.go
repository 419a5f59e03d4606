package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/domain"
)

func (h *Handler) listChats(c *gin.Context) {
	chats, err := h.chats.ListChats(c.Request.Context(), userID(c))
	if err != nil {
		slog.Error("list chats failed", "error", err, "user_id", userID(c))
		chats = []domain.ChatHistory{}
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

type createChatRequest struct {
	Title string `json:"title"`
}

func (h *Handler) createChat(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	chat, err := h.chats.CreateChat(c.Request.Context(), userID(c), req.Title)
	if err != nil {
		failStorage(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chat": chat})
}

func (h *Handler) getChat(c *gin.Context) {
	chat, err := h.chats.GetChat(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

type updateChatRequest struct {
	Title  *string `json:"title"`
	Pinned *bool   `json:"pinned"`
}

func (h *Handler) updateChat(c *gin.Context) {
	var req updateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)
	id := c.Param("id")

	if req.Title != nil {
		if err := h.chats.RenameChat(ctx, uid, id, *req.Title); err != nil {
			fail(c, err)
			return
		}
	}
	if req.Pinned != nil {
		if err := h.chats.SetPinned(ctx, uid, id, *req.Pinned); err != nil {
			fail(c, err)
			return
		}
	}

	chat, err := h.chats.GetChat(ctx, uid, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

// deleteChat removes the persisted chat and its short-term memory together.
func (h *Handler) deleteChat(c *gin.Context) {
	id := c.Param("id")
	if err := h.chats.DeleteChat(c.Request.Context(), userID(c), id); err != nil {
		fail(c, err)
		return
	}
	h.orchestrator.Memory().Clear(id)
	c.Status(http.StatusNoContent)
}
