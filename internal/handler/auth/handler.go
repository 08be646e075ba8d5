package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wardlink/admin-api/internal/handler"
	"github.com/wardlink/admin-api/internal/model"
	authService "github.com/wardlink/admin-api/internal/service/auth"
)

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrAccountLocked):
			c.JSON(http.StatusTooManyRequests, handler.NewErrorResponse("account is temporarily locked"))
		case errors.Is(err, authService.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid email or password"))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}
