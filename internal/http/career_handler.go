package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

type CareerHandler struct {
	logger    *zap.Logger
	careerSvc *service.CareerService
}

func NewCareerHandler(logger *zap.Logger, careerSvc *service.CareerService) *CareerHandler {
	return &CareerHandler{logger: logger, careerSvc: careerSvc}
}

// Generate maneja POST /career-paths.
func (h *CareerHandler) Generate(c *gin.Context) {
	var req struct {
		UserID  string               `json:"userId" binding:"required"`
		Profile *domain.TraitProfile `json:"profile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, "career paths", err)
		return
	}

	advice, err := h.careerSvc.Generate(c.Request.Context(), req.UserID, *req.Profile)
	if err != nil {
		respondServiceError(c, h.logger, "career paths", err)
		return
	}
	c.JSON(http.StatusOK, advice)
}

// GetAdvice maneja GET /career-paths/:userId.
func (h *CareerHandler) GetAdvice(c *gin.Context) {
	doc, err := h.careerSvc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, h.logger, "get career paths", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
