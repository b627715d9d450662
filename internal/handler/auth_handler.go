/**
* Name: 			auth_handler.go
* Description: 		OAuth 로그인/콜백/로그아웃 핸들러
* Workflow: 		프로바이더 리다이렉트 → 콜백에서 세션 수립 → JWT 발급
 */

package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/auth"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/config"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/storage"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/util"
)

const oauthStateCookieName = "oauth_state"

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

type LoginSuccessResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type AuthHandler struct {
	cfg       *config.Config
	sessions  *memory.Store
	providers *auth.Registry
	loadUser  func(email string) (models.User, error)
}

func NewAuthHandler(cfg *config.Config, sessions *memory.Store, providers *auth.Registry) *AuthHandler {
	return &AuthHandler{
		cfg:       cfg,
		sessions:  sessions,
		providers: providers,
		loadUser:  storage.GetUserByEmail,
	}
}

// HandleLogin godoc
// @Summary      OAuth 로그인 시작
// @Description  지원 프로바이더(google, microsoft, zoho)의 인가 페이지로 리다이렉트합니다.
// @Tags         Auth
// @Param        provider path string true "프로바이더 이름"
// @Success      302 {string} string "프로바이더 인가 페이지로 이동"
// @Failure      400 {object} handler.ErrorResponse "미지원 프로바이더"
// @Failure      501 {object} handler.ErrorResponse "프로바이더 미설정"
// @Router       /auth/{provider}/login [get]
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		if errors.Is(err, auth.ErrUnsupportedProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported provider"})
		} else {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "Provider not configured"})
		}
		return
	}

	state, err := util.RandomURLToken(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create state"})
		return
	}

	// CSRF 방지용 state 쿠키, 10분 유효
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, int((10 * time.Minute).Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// HandleCallback godoc
// @Summary      OAuth 콜백
// @Description  인가 코드를 교환하고 검증된 신원으로 세션을 수립한 뒤 JWT를 발급합니다.
// @Tags         Auth
// @Produce      json
// @Param        provider path  string true  "프로바이더 이름"
// @Param        code     query string true  "인가 코드"
// @Param        state    query string true  "로그인 시작 시 발급된 state"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse "state 불일치 또는 code 누락"
// @Failure      401 {object} handler.ErrorResponse "코드 교환 실패"
// @Router       /auth/{provider}/callback [get]
func (h *AuthHandler) HandleCallback(c *gin.Context) {
	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		if errors.Is(err, auth.ErrUnsupportedProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported provider"})
		} else {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "Provider not configured"})
		}
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	storedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || storedState != state || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state or missing code"})
		return
	}

	// state 쿠키는 1회용
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", false, true)

	token, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("HandleCallback(): code exchange failed for %s: %v", provider.Name(), err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	profile, err := provider.FetchProfile(c.Request.Context(), token)
	if err != nil {
		log.Printf("HandleCallback(): profile fetch failed for %s: %v", provider.Name(), err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify identity"})
		return
	}

	if err := storage.UpsertUser(profile.Email, profile.Name, provider.Name()); err != nil {
		log.Printf("HandleCallback(): failed to upsert user %s: %v", profile.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
		return
	}

	sess := models.Session{
		ID:        uuid.New().String(),
		Email:     profile.Email,
		Name:      profile.Name,
		Provider:  provider.Name(),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.sessions.CreateSession(c.Request.Context(), sess); err != nil {
		log.Printf("HandleCallback(): failed to create session for %s: %v", profile.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	tokenString, err := auth.GenerateToken(sess.ID, sess.Email, sess.Provider, h.cfg.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// 프론트엔드가 설정돼 있으면 토큰을 들고 돌아감
	if h.cfg.FrontendURL != "" {
		c.Redirect(http.StatusFound, h.cfg.FrontendURL+"?token="+url.QueryEscape(tokenString))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// HandleLogout godoc
// @Summary      로그아웃
// @Description  서버측 세션을 제거합니다. 발급된 JWT는 그 즉시 무효가 됩니다.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} object{message=string}
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Router       /auth/logout [post]
func (h *AuthHandler) HandleLogout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if err := h.sessions.DeleteSession(c.Request.Context(), sessionID); err != nil {
		log.Printf("HandleLogout(): failed to delete session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// HandleProfile godoc
// @Summary      프로필 조회
// @Description  인증된 세션의 신원 정보를 반환합니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} object{email=string, name=string, provider=string, member_since=int}
// @Failure      401 {object} handler.ErrorResponse "인증 토큰 누락 또는 만료"
// @Router       /api/profile [get]
func (h *AuthHandler) HandleProfile(c *gin.Context) {
	email := c.GetString("email")
	resp := gin.H{
		"email":    email,
		"name":     c.GetString("name"),
		"provider": c.GetString("provider"),
	}

	// 회원 가입 시점은 users 테이블에서 보강, 조회 실패해도 프로필 자체는 반환
	if user, err := h.loadUser(email); err == nil {
		resp["member_since"] = user.CreatedAt
	} else {
		log.Printf("HandleProfile(): failed to load user row for %s: %v", email, err)
	}

	c.JSON(http.StatusOK, resp)
}
