package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

type ProfileHandler struct {
	logger     *zap.Logger
	profileSvc *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{logger: logger, profileSvc: profileSvc}
}

// Synthesize maneja POST /profile.
func (h *ProfileHandler) Synthesize(c *gin.Context) {
	var req struct {
		UserID     string            `json:"userId" binding:"required"`
		Transcript domain.Transcript `json:"transcript" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, "profile", err)
		return
	}

	profile, err := h.profileSvc.Synthesize(c.Request.Context(), req.UserID, req.Transcript)
	if err != nil {
		respondServiceError(c, h.logger, "profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile maneja GET /profile/:userId.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	doc, err := h.profileSvc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, h.logger, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
