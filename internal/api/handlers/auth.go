package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okothvientrevor/ALOVAZE/internal/services"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Invalid request data", err.Error())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusCreated, "User registered successfully", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Invalid request data", err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Login successful", response)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Refresh token is required", err.Error())
		return
	}

	response, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Token refreshed successfully", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendData(c, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	var patch store.ProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Invalid request data", err.Error())
		return
	}

	profile, err := h.authService.UpdateProfile(c.Request.Context(), userID, &patch)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Profile updated successfully", profile)
}

// Logout is stateless: clients drop their tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, "Logout successful", nil)
}
