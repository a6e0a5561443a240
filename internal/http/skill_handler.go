package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

type SkillHandler struct {
	logger   *zap.Logger
	skillSvc *service.SkillGapService
}

func NewSkillHandler(logger *zap.Logger, skillSvc *service.SkillGapService) *SkillHandler {
	return &SkillHandler{logger: logger, skillSvc: skillSvc}
}

// Analyze maneja POST /skill-gap. Sin fallback: si el oraculo falla responde 500.
func (h *SkillHandler) Analyze(c *gin.Context) {
	var req struct {
		UserID  string               `json:"userId" binding:"required"`
		Profile *domain.TraitProfile `json:"profile" binding:"required"`
		Path    *domain.CareerPath   `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, "skill gap", err)
		return
	}

	analysis, err := h.skillSvc.Analyze(c.Request.Context(), req.UserID, *req.Profile, *req.Path)
	if err != nil {
		respondServiceError(c, h.logger, "skill gap", err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// List maneja GET /skill-gap/:userId.
func (h *SkillHandler) List(c *gin.Context) {
	doc, err := h.skillSvc.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, h.logger, "list skill gap", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
