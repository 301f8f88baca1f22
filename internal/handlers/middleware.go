package handlers

import (
	"net/http"
	"strings"

	"bookshare/internal/models"
	"bookshare/internal/service"

	"github.com/gin-gonic/gin"
)

// Context key under which authMiddleware stores the parsed token claims.
const claimsKey = "claims"

// authMiddleware extracts and validates the bearer token. All token
// failures collapse to a uniform 401.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(claimsKey, claims)
	c.Next()
}

// requireTeacher gates an already-authenticated request by role. A wrong
// role is an authorization failure (403), distinct from the 401 the auth
// middleware produces.
func (h *Handler) requireTeacher(c *gin.Context) {
	claims := getClaims(c)
	if claims == nil || claims.Role != models.RoleTeacher {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "only teachers can upload books",
		})
		return
	}
	c.Next()
}

// getClaims returns the claims stored by authMiddleware, or nil.
func getClaims(c *gin.Context) *service.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}
