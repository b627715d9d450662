package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/storage"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/util"
)

// SessionOrKeyMiddleware 챗 엔드포인트용 이중 인증
// X-API-Key가 있으면 키 검증, 없으면 일반 세션 검증으로 위임
func SessionOrKeyMiddleware(sessions *memory.Store) gin.HandlerFunc {
	sessionAuth := AuthMiddleware(sessions)
	return func(c *gin.Context) {
		rawKey := c.GetHeader("X-API-Key")
		if rawKey == "" {
			sessionAuth(c)
			return
		}

		key, err := storage.GetAPIKeyByFingerprint(util.Fingerprint(rawKey))
		if err != nil {
			if errors.Is(err, storage.ErrAPIKeyNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
			} else {
				log.Printf("SessionOrKeyMiddleware(): key lookup failed: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Key lookup failed"})
			}
			return
		}

		// 지문은 인덱스일 뿐, 최종 판정은 bcrypt 비교로
		if err := bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(rawKey)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
			return
		}
		if key.Revoked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "API key revoked"})
			return
		}
		if key.ExpiresAt < time.Now().Unix() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "API key expired"})
			return
		}
		if key.Uses >= key.MaxUses {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Usage limit reached"})
			return
		}
		if key.BoundIP != "" && key.BoundIP != c.ClientIP() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "API key bound to another address"})
			return
		}

		// 사용 횟수 차감은 여기서 하지 않음, 정책 검사를 통과한 요청만 핸들러에서 차감
		c.Set("email", key.Email)
		c.Set("api_key_id", key.ID)
		c.Next()
	}
}
