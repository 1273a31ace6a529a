package utils

import (
	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope shared by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

// SendError writes a failure envelope. errKind is the stable machine-readable
// error string, message the human one.
func SendError(c *gin.Context, statusCode int, errKind, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   errKind,
		Message: message,
	})
}

func SendErrorDetails(c *gin.Context, statusCode int, errKind, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   errKind,
		Message: message,
		Details: details,
	})
}
