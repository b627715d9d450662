package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/engine"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/policy"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/storage"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/util"
)

// /api/ask 요청 바디
type AskRequest struct {
	Prompt string `json:"prompt" example:"What can NOBLTY do?"`
}

type ChatHandler struct {
	merger      *engine.Merger
	auditEncKey string
}

func NewChatHandler(merger *engine.Merger, auditEncKey string) *ChatHandler {
	return &ChatHandler{merger: merger, auditEncKey: auditEncKey}
}

// HandleAsk godoc
// @Summary      챗 요청 (Ask)
// @Description  두 엔진을 호출해 하나로 병합된 응답을 반환합니다. 세션 JWT 또는 X-API-Key로 인증합니다.
// @Tags         API (Protected)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.AskRequest true "프롬프트"
// @Success      200 {object} engine.MergedResponse
// @Failure      400 {object} handler.ErrorResponse "정책 위반 프롬프트"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      502 {object} handler.ErrorResponse "엔진 전체 실패"
// @Router       /api/ask [post]
func (h *ChatHandler) HandleAsk(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := policy.CheckPrompt(req.Prompt); err != nil {
		if errors.Is(err, policy.ErrPromptTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt too long"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt blocked by policy"})
		}
		return
	}

	email := c.GetString("email")

	// 정책을 통과한 요청만 키 사용 횟수를 소모함
	if apiKeyID := c.GetInt64("api_key_id"); apiKeyID > 0 {
		if err := storage.IncrementAPIKeyUses(apiKeyID); err != nil {
			log.Printf("HandleAsk(): failed to increment uses for key %d: %v", apiKeyID, err)
		}
	}

	merged, err := h.merger.Ask(c.Request.Context(), email, req.Prompt)
	if err != nil {
		log.Printf("HandleAsk(): merge failed for %s: %v", email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Engines unavailable"})
		return
	}

	h.writeAudit(c, email, "/api/ask", len(req.Prompt))

	c.JSON(http.StatusOK, merged)
}

// 감사 로그 기록, 실패해도 응답은 막지 않음
func (h *ChatHandler) writeAudit(c *gin.Context, email, endpoint string, promptLen int) {
	meta, err := json.Marshal(gin.H{"prompt_len": promptLen})
	if err != nil {
		log.Printf("writeAudit(): failed to marshal meta: %v", err)
		return
	}
	encrypted, err := util.EncryptAES(h.auditEncKey, meta)
	if err != nil {
		log.Printf("writeAudit(): failed to encrypt meta: %v", err)
		return
	}

	apiKeyID := c.GetInt64("api_key_id")
	if err := storage.CreateAuditLog(apiKeyID, email, endpoint, encrypted); err != nil {
		log.Printf("writeAudit(): failed to store audit log for %s: %v", email, err)
	}
}
