package handler

import (
	"net/http"

	"salestrack/internal/dto"
	"salestrack/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Token godoc
// @Summary Obtain a JWT pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} apierror.APIError
// @Router /token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Token(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Rotate the JWT pair from a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} apierror.APIError
// @Router /token/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
