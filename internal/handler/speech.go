package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/speech"
)

type prepareSpeechRequest struct {
	Text string `json:"text" binding:"required"`
	Lang string `json:"lang"`
	// Voices the client's synthesis engine reports as available.
	Voices []speech.Voice `json:"voices"`
}

// prepareSpeech strips markdown from assistant text and picks a voice for the
// client to synthesize with. No audio is produced server-side.
func (h *Handler) prepareSpeech(c *gin.Context) {
	var req prepareSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp := gin.H{"text": speech.StripMarkdown(req.Text)}
	if voice := speech.ChooseVoice(req.Voices, req.Lang); voice != nil {
		resp["voice"] = voice
	}
	c.JSON(http.StatusOK, resp)
}
