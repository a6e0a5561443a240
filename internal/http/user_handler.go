package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

// CreateUser maneja POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId"`
		Name     string `json:"name" binding:"required"`
		Stage    string `json:"stage" binding:"required"`
		Locale   string `json:"locale" binding:"required"`
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, "create user", err)
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterUserInput{
		UserID: req.UserID,
		Intake: domain.Intake{
			Name:     req.Name,
			Stage:    req.Stage,
			Locale:   req.Locale,
			Language: req.Language,
		},
	})
	if err != nil {
		respondServiceError(c, h.logger, "create user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser maneja GET /users/:userId.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userServ.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, h.logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
