package handlers

import (
	"github.com/gin-gonic/gin"
)

// respondOK writes the success envelope. Message and data are omitted when
// empty so list endpoints stay compact.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError writes the failure envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
