package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/auth"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/engine"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/policy"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	sessions *memory.Store
	merger   *engine.Merger
}

func NewWSHandler(sessions *memory.Store, merger *engine.Merger) *WSHandler {
	return &WSHandler{sessions: sessions, merger: merger}
}

// HandleChatSocket godoc
// @Summary      실시간 챗 WebSocket 연결
// @Description  턴 단위 채팅을 위한 WebSocket 연결을 시작합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Tags         WebSocket (Chat)
// @Param        token query string true "로그인 시 발급받은 JWT 토큰"
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      401 {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/chat [get]
func (h *WSHandler) HandleChatSocket(c *gin.Context) {
	tokenString := c.Query("token")

	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	sess, err := h.sessions.GetSession(c.Request.Context(), claims.SessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("HandleChatSocket(): Failed to upgrade to WebSocket : User %s with %v", sess.Email, err)
		return
	}

	h.manageChatSession(conn, sess.Email)
}

// 턴 단위 채팅 루프: 텍스트 수신 → 정책 검사 → 병합 응답 송신
func (h *WSHandler) manageChatSession(conn *websocket.Conn, email string) {
	defer conn.Close()
	log.Printf("Chat session started for user: %s", email)

ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Error reading message from user %s: %v", email, err)
			break ReadLoop
		}

		if messageType != websocket.TextMessage {
			log.Printf("Unsupported message type from user %s: %d", email, messageType)
			continue
		}

		prompt := string(message)
		if err := policy.CheckPrompt(prompt); err != nil {
			if writeErr := conn.WriteJSON(gin.H{"error": err.Error()}); writeErr != nil {
				log.Printf("Error sending policy rejection to user %s: %v", email, writeErr)
				break ReadLoop
			}
			continue
		}

		merged, err := h.merger.Ask(context.Background(), email, prompt)
		if err != nil {
			log.Printf("manageChatSession(): merge failed for %s: %v", email, err)
			if writeErr := conn.WriteJSON(gin.H{"error": "Engines unavailable"}); writeErr != nil {
				break ReadLoop
			}
			continue
		}

		if err := conn.WriteJSON(merged); err != nil {
			log.Printf("Error sending message to user %s: %v", email, err)
			break ReadLoop
		}
	}
	log.Printf("Chat session ended for user: %s", email)
}
