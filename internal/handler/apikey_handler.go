/**
* Name: 			apikey_handler.go
* Description: 		API 키 발급/조회/취소 핸들러
* Workflow: 		발급 시 평문 1회 노출, 저장은 bcrypt 해시 + sha256 지문
 */

package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/storage"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/util"
)

const (
	apiKeyPrefix     = "noblty_"
	apiKeyMaxUses    = 1000
	apiKeyExpireDays = 30
	apiKeySecretLen  = 28
)

type KeyHandler struct{}

func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// HandleCreateKey godoc
// @Summary      API 키 발급
// @Description  새 API 키를 발급합니다. 평문 키는 이 응답에서만 확인할 수 있습니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} object{api_key=string, note=string}
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /api/keys [post]
func (h *KeyHandler) HandleCreateKey(c *gin.Context) {
	email := c.GetString("email")

	secret, err := util.RandomURLToken(apiKeySecretLen)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate key"})
		return
	}
	plainKey := apiKeyPrefix + secret

	keyHash, err := bcrypt.GenerateFromPassword([]byte(plainKey), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash key"})
		return
	}

	expiresAt := time.Now().Add(apiKeyExpireDays * 24 * time.Hour).Unix()
	if _, err := storage.CreateAPIKey(
		email, string(keyHash), util.Fingerprint(plainKey), c.ClientIP(), apiKeyMaxUses, expiresAt,
	); err != nil {
		log.Printf("HandleCreateKey(): failed to store key for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"api_key": plainKey,
		"note":    "Save now, will not be shown again.",
	})
}

// HandleListKeys godoc
// @Summary      API 키 목록 조회
// @Description  본인 소유 키의 메타데이터를 반환합니다. 비밀값은 포함되지 않습니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} object{keys=[]models.APIKey}
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.ErrorResponse "DB 조회 실패"
// @Router       /api/keys [get]
func (h *KeyHandler) HandleListKeys(c *gin.Context) {
	email := c.GetString("email")

	keys, err := storage.ListAPIKeysByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch keys"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// HandleRevokeKey godoc
// @Summary      API 키 취소
// @Description  본인 소유 키를 취소합니다. 취소된 키는 즉시 거부됩니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "키 ID"
// @Success      200 {object} object{message=string}
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      404 {object} handler.ErrorResponse "키 없음 또는 소유자 불일치"
// @Router       /api/keys/{id} [delete]
func (h *KeyHandler) HandleRevokeKey(c *gin.Context) {
	email := c.GetString("email")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key id"})
		return
	}

	if err := storage.RevokeAPIKey(id, email); err != nil {
		if errors.Is(err, storage.ErrAPIKeyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		} else {
			log.Printf("HandleRevokeKey(): failed to revoke key %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke key"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}
