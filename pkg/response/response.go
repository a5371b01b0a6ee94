package response

import (
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	// Source marks degraded-mode payloads, e.g. the built-in type list
	// served when the store has no rows.
	Source string `json:"source,omitempty"`
}

func SendAPIResponse(c *gin.Context, code int, success bool, message string, data any) {
	c.JSON(code, APIResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}

func SendAPIResponseFrom(c *gin.Context, code int, success bool, message string, data any, source string) {
	c.JSON(code, APIResponse{
		Success: success,
		Message: message,
		Data:    data,
		Source:  source,
	})
}
