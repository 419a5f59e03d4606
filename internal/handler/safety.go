package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-health/serenity/internal/domain"
)

func (h *Handler) getSafetyPlan(c *gin.Context) {
	plan, err := h.safety.GetPlan(c.Request.Context(), userID(c))
	if err != nil {
		failStorage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *Handler) exportSafetyPlan(c *gin.Context) {
	text, err := h.safety.Export(c.Request.Context(), userID(c))
	if err != nil {
		failStorage(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

type sharePlanRequest struct {
	Shared bool `json:"shared"`
}

func (h *Handler) shareSafetyPlan(c *gin.Context) {
	var req sharePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.safety.SetShared(c.Request.Context(), userID(c), req.Shared); err != nil {
		failStorage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shared": req.Shared})
}

type addPlanItemRequest struct {
	Section string `json:"section" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

func (h *Handler) addPlanItem(c *gin.Context) {
	var req addPlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.safety.AddItem(c.Request.Context(), userID(c), domain.SectionKind(req.Section), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) removePlanItem(c *gin.Context) {
	if err := h.safety.RemoveItem(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type replaceSectionRequest struct {
	Items []string `json:"items"`
}

func (h *Handler) replacePlanSection(c *gin.Context) {
	var req replaceSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	section, err := h.safety.ReplaceSection(c.Request.Context(), userID(c), domain.SectionKind(c.Param("kind")), req.Items)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

type contactRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

func (h *Handler) addPlanContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	contact, err := h.safety.AddContact(c.Request.Context(), userID(c), req.Name, req.Phone, req.Relationship)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

func (h *Handler) updatePlanContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	contact := &domain.EmergencyContact{
		ID:           c.Param("id"),
		Name:         req.Name,
		Phone:        req.Phone,
		Relationship: req.Relationship,
	}
	if err := h.safety.UpdateContact(c.Request.Context(), userID(c), contact); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

func (h *Handler) removePlanContact(c *gin.Context) {
	if err := h.safety.RemoveContact(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
