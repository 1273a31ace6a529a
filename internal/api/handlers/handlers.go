package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/okothvientrevor/ALOVAZE/internal/api/middleware"
	"github.com/okothvientrevor/ALOVAZE/internal/services"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
	"github.com/okothvientrevor/ALOVAZE/pkg/logger"
)

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// respondError maps every domain error kind to its HTTP status and stable
// error string. Unrecognized errors become a generic 500 with the detail kept
// in the logs.
func respondError(c *gin.Context, err error) {
	var banned *services.AccountBannedError
	var weak *services.WeakPasswordError

	switch {
	case errors.Is(err, services.ErrEmailTaken):
		utils.SendError(c, http.StatusConflict, "Email already registered",
			"An account with this email address already exists")
	case errors.As(err, &weak):
		utils.SendErrorDetails(c, http.StatusBadRequest, "Weak password",
			"Password does not meet security requirements", weak.Violations)
	case errors.Is(err, services.ErrInvalidRole):
		utils.SendError(c, http.StatusBadRequest, "Validation error", "Invalid role")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.SendError(c, http.StatusUnauthorized, "Invalid credentials",
			"Email or password is incorrect")
	case errors.As(err, &banned):
		utils.SendError(c, http.StatusForbidden, "Account banned", banned.Error())
	case errors.Is(err, services.ErrAccountInactive):
		utils.SendError(c, http.StatusForbidden, "Account inactive",
			"Your account is no longer active")
	case errors.Is(err, utils.ErrTokenExpired) || errors.Is(err, utils.ErrTokenInvalid):
		utils.SendError(c, http.StatusUnauthorized, "Invalid refresh token", "Please login again")
	case errors.Is(err, services.ErrUserNotFound):
		utils.SendError(c, http.StatusNotFound, "User not found", "User profile not found")
	case errors.Is(err, store.ErrDuplicateReview):
		utils.SendError(c, http.StatusConflict, "Duplicate review",
			"You have already reviewed this company")
	case errors.Is(err, store.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Not found",
			"The requested resource does not exist")
	case errors.Is(err, services.ErrInvalidModeration):
		utils.SendError(c, http.StatusBadRequest, "Validation error",
			"Invalid moderation action, use 'approve', 'flag' or 'remove'")
	default:
		logger.Error("unexpected error: ", err)
		utils.SendError(c, http.StatusInternalServerError, "Internal server error",
			"Something went wrong")
	}
}
