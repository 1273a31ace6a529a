package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okothvientrevor/ALOVAZE/internal/services"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
)

type AdminHandler struct {
	adminService  *services.AdminService
	reviewService *services.ReviewService
}

func NewAdminHandler(adminService *services.AdminService, reviewService *services.ReviewService) *AdminHandler {
	return &AdminHandler{adminService: adminService, reviewService: reviewService}
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Ban reason is required", err.Error())
		return
	}

	if err := h.adminService.BanUser(c.Request.Context(), userID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "User banned successfully", nil)
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.adminService.UnbanUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "User unbanned successfully", nil)
}

func (h *AdminHandler) VerifyEmail(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.adminService.VerifyEmail(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Email verified successfully", nil)
}

func (h *AdminHandler) UpdateTrustScore(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req struct {
		Score *float64 `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Score is required", err.Error())
		return
	}

	if err := h.adminService.UpdateTrustScore(c.Request.Context(), userID, *req.Score); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Trust score updated successfully", nil)
}

func (h *AdminHandler) ModerateReview(c *gin.Context) {
	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Moderation action is required", err.Error())
		return
	}

	if err := h.reviewService.Moderate(c.Request.Context(), reviewID, req.Action); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Review moderated successfully", nil)
}
