package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/assistant"
	"github.com/serenity-health/serenity/internal/catalog"
	"github.com/serenity-health/serenity/internal/config"
	"github.com/serenity-health/serenity/internal/emotion"
	"github.com/serenity-health/serenity/internal/middleware"
	"github.com/serenity-health/serenity/internal/repository"
	"github.com/serenity-health/serenity/internal/retrieval"
	"github.com/serenity-health/serenity/internal/service"
)

// Handler holds all dependencies needed by HTTP route handlers.
type Handler struct {
	cfg             *config.Config
	users           *service.UserService
	chats           *service.ChatService
	emotions        *service.EmotionService
	safety          *service.SafetyService
	wellness        *service.WellnessService
	orchestrator    *assistant.Orchestrator
	emotionAnalyzer *emotion.Analyzer
	catalog         *catalog.Catalog
	retriever       *retrieval.Retriever
	cache           *service.ResponseCache
	store           *repository.Store
	version         string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg             *config.Config
	Users           *service.UserService
	Chats           *service.ChatService
	Emotions        *service.EmotionService
	Safety          *service.SafetyService
	Wellness        *service.WellnessService
	Orchestrator    *assistant.Orchestrator
	EmotionAnalyzer *emotion.Analyzer
	Catalog         *catalog.Catalog
	Retriever       *retrieval.Retriever
	Cache           *service.ResponseCache
	Store           *repository.Store
	Version         string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:             deps.Cfg,
		users:           deps.Users,
		chats:           deps.Chats,
		emotions:        deps.Emotions,
		safety:          deps.Safety,
		wellness:        deps.Wellness,
		orchestrator:    deps.Orchestrator,
		emotionAnalyzer: deps.EmotionAnalyzer,
		catalog:         deps.Catalog,
		retriever:       deps.Retriever,
		cache:           deps.Cache,
		store:           deps.Store,
		version:         deps.Version,
	}
}

// Routes mounts every endpoint on the engine. The chat route carries its own
// tighter rate limit, counted after auth so it is per-user.
func (h *Handler) Routes(r *gin.Engine) {
	r.Use(middleware.Recover(), middleware.Logging(), middleware.CORS(h.cfg.AllowedOrigins))

	r.GET("/health", h.health)

	public := r.Group("/api", middleware.RateLimit(h.store, "api", config.RateLimitDefault))
	{
		public.POST("/auth/register", h.register)
		public.POST("/auth/login", h.login)
	}

	api := r.Group("/api", middleware.RateLimit(h.store, "api", config.RateLimitDefault), middleware.Auth(h.users))
	{
		api.GET("/auth/me", h.me)

		api.POST("/chat", middleware.RateLimit(h.store, "chat", config.RateLimitChat), h.chat)
		api.GET("/sessions/:id/history", h.sessionHistory)
		api.DELETE("/sessions/:id", h.clearSession)
		api.GET("/memory/:id", h.memoryStats)

		api.GET("/chats", h.listChats)
		api.POST("/chats", h.createChat)
		api.GET("/chats/:id", h.getChat)
		api.PATCH("/chats/:id", h.updateChat)
		api.DELETE("/chats/:id", h.deleteChat)

		api.POST("/emotion/analyze", h.analyzeEmotion)
		api.POST("/emotions", h.recordEmotion)
		api.GET("/emotions", h.listEmotions)
		api.GET("/emotions/summary", h.emotionSummary)
		api.DELETE("/emotions/:id", h.deleteEmotion)

		api.GET("/safety-plan", h.getSafetyPlan)
		api.GET("/safety-plan/export", h.exportSafetyPlan)
		api.POST("/safety-plan/share", h.shareSafetyPlan)
		api.POST("/safety-plan/items", h.addPlanItem)
		api.DELETE("/safety-plan/items/:id", h.removePlanItem)
		api.PUT("/safety-plan/sections/:kind", h.replacePlanSection)
		api.POST("/safety-plan/contacts", h.addPlanContact)
		api.PUT("/safety-plan/contacts/:id", h.updatePlanContact)
		api.DELETE("/safety-plan/contacts/:id", h.removePlanContact)

		api.GET("/exercises", h.listExercises)
		api.GET("/exercises/:slug", h.getExercise)
		api.POST("/wellness/completions", h.recordCompletion)
		api.GET("/wellness/completions", h.listCompletions)
		api.GET("/wellness/stats", h.wellnessStats)
		api.GET("/resources", h.listResources)

		api.POST("/speech/prepare", h.prepareSpeech)

		api.GET("/system/info", h.systemInfo)
		api.POST("/system/rebuild-indexes", h.rebuildIndexes)
	}
}
