package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/services"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Validation error", "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Invalid request data", err.Error())
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusCreated, "Review created successfully", review)
}

func (h *ReviewHandler) GetByID(c *gin.Context) {
	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), reviewID)
	if err == store.ErrNotFound {
		utils.SendError(c, http.StatusNotFound, "Review not found",
			"The requested review does not exist")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendData(c, http.StatusOK, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	var patch store.ReviewUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"Invalid request data", err.Error())
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), reviewID, userID, &patch)
	if err == store.ErrNotFound {
		utils.SendError(c, http.StatusNotFound, "Review not found",
			"Review not found or you do not have permission to update it")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Review updated successfully", review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	deleted, err := h.reviewService.Delete(c.Request.Context(), reviewID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		utils.SendError(c, http.StatusNotFound, "Review not found",
			"Review not found or you do not have permission to delete it")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Review deleted successfully", nil)
}

func (h *ReviewHandler) GetByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	limit, offset := pageParams(c)
	result, err := h.reviewService.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendData(c, http.StatusOK, result)
}

func (h *ReviewHandler) GetByCompany(c *gin.Context) {
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}

	limit, offset := pageParams(c)
	sortBy := c.DefaultQuery("sortBy", store.SortRecent)

	result, err := h.reviewService.ListByCompany(c.Request.Context(), companyID, limit, offset, sortBy)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendData(c, http.StatusOK, result)
}

func (h *ReviewHandler) Vote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Authentication required")
		return
	}

	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}

	var req struct {
		IsHelpful *bool `json:"isHelpful" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorDetails(c, http.StatusBadRequest, "Validation error",
			"isHelpful is required", err.Error())
		return
	}

	if err := h.reviewService.Vote(c.Request.Context(), reviewID, userID, *req.IsHelpful); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Vote recorded successfully", nil)
}

func (h *ReviewHandler) GetStatistics(c *gin.Context) {
	companyID, ok := parseID(c, "companyId")
	if !ok {
		return
	}

	stats, err := h.reviewService.Statistics(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendData(c, http.StatusOK, stats)
}
