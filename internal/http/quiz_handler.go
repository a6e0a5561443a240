package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

type QuizHandler struct {
	logger  *zap.Logger
	quizSvc *service.QuizService
}

func NewQuizHandler(logger *zap.Logger, quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{logger: logger, quizSvc: quizSvc}
}

// Start maneja POST /quiz/start.
func (h *QuizHandler) Start(c *gin.Context) {
	var req struct {
		UserID string         `json:"userId" binding:"required"`
		Intake *domain.Intake `json:"intake" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, "quiz start", err)
		return
	}

	prompt, err := h.quizSvc.Start(c.Request.Context(), req.UserID, *req.Intake)
	if err != nil {
		respondServiceError(c, h.logger, "quiz start", err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// Advance maneja POST /quiz/advance. El transcript llega completo en cada request.
func (h *QuizHandler) Advance(c *gin.Context) {
	var req struct {
		UserID     string            `json:"userId" binding:"required"`
		Transcript domain.Transcript `json:"transcript" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, "quiz advance", err)
		return
	}

	prompt, err := h.quizSvc.Advance(c.Request.Context(), req.UserID, req.Transcript)
	if err != nil {
		respondServiceError(c, h.logger, "quiz advance", err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// GetTranscript maneja GET /quiz/:userId.
func (h *QuizHandler) GetTranscript(c *gin.Context) {
	doc, err := h.quizSvc.Transcript(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, h.logger, "get transcript", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
