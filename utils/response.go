package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError writes the {"error": message} body every API error uses.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
