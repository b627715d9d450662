package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/auth"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
)

// AuthMiddleware Bearer JWT 검증 + Redis 세션 생존 확인
// 로그아웃/만료로 세션 레코드가 사라지면 토큰이 유효해도 거부됨
func AuthMiddleware(sessions *memory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		sess, err := sessions.GetSession(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, memory.ErrSessionNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
			}
			c.Abort()
			return
		}

		c.Set("session_id", sess.ID)
		c.Set("email", sess.Email)
		c.Set("name", sess.Name)
		c.Set("provider", sess.Provider)
		c.Next()
	}
}
