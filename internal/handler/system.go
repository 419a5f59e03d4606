package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) systemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":            "serenity",
		"version":         h.version,
		"model":           h.cfg.LLMModel,
		"index_documents": h.retriever.Index().Size(),
		"memory_sessions": h.orchestrator.Memory().SessionCount(),
		"cache_entries":   h.cache.Len(),
		"web_search":      h.cfg.WebSearchEnabled,
	})
}

// rebuildIndexes rebuilds the retrieval index from the embedded corpus.
func (h *Handler) rebuildIndexes(c *gin.Context) {
	h.retriever.Index().Rebuild(h.catalog.Corpus)
	c.JSON(http.StatusOK, gin.H{
		"status":          "rebuilt",
		"index_documents": h.retriever.Index().Size(),
	})
}
