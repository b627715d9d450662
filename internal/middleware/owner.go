package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OwnerMiddleware 학습 데이터 경로 전용 게이트
// 세션 이메일이 설정된 오너와 일치하지 않으면 무조건 403
func OwnerMiddleware(ownerEmail string) gin.HandlerFunc {
	owner := strings.ToLower(strings.TrimSpace(ownerEmail))
	return func(c *gin.Context) {
		email := strings.ToLower(c.GetString("email"))
		if owner == "" || email == "" || email != owner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Owner access required"})
			return
		}
		c.Next()
	}
}
