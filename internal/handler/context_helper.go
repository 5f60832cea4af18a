package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/s-ao213/next-task-app/internal/middleware"
	"github.com/s-ao213/next-task-app/internal/models"
)

// boolQuery reads a true/false query parameter; anything else is treated as
// unset.
func boolQuery(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
