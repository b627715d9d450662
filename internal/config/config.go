/**
* Name: 			config.go
* Description: 		환경 변수 기반 서비스 설정 로드
* Workflow: 		.env 로드 → 필수 값 검증 → Config 구조체 반환
 */

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/util"
)

// Config 서비스 전체 설정
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	// 세션 JWT 서명 키, 없으면 랜덤 생성 (재시작 시 세션 무효화됨)
	AppSecret string
	// 감사 로그 메타데이터 암호화 키
	AuditEncKey string

	// 학습 데이터 제출이 허용된 유일한 계정
	OwnerEmail string

	SessionTTL  time.Duration
	FrontendURL string

	OAuth OAuthConfig
}

// OAuthConfig 프로바이더별 클라이언트 설정
type OAuthConfig struct {
	Google    ProviderConfig
	Microsoft ProviderConfig
	Zoho      ProviderConfig
	// Microsoft 테넌트 (기본 common)
	MSTenant string
	// Zoho accounts 서버 (리전별로 다름)
	ZohoAccountsURL string
}

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Configured 프로바이더 설정 여부
func (p ProviderConfig) Configured() bool {
	return p.ClientID != "" && p.ClientSecret != "" && p.RedirectURL != ""
}

// Load 환경 변수에서 설정을 로드하고 필수 값을 검증
func Load() (*Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if dbURL == "" || redisURL == "" {
		return nil, errors.New("config.Load(): Missing DATABASE_URL or REDIS_URL")
	}

	ownerEmail := strings.ToLower(strings.TrimSpace(os.Getenv("OWNER_EMAIL")))
	if ownerEmail == "" {
		return nil, errors.New("config.Load(): OWNER_EMAIL is not set, training endpoint cannot be gated")
	}

	appSecret := os.Getenv("APP_SECRET")
	if appSecret == "" {
		generated, err := util.RandomURLToken(32)
		if err != nil {
			return nil, fmt.Errorf("config.Load(): failed to generate app secret: %w", err)
		}
		appSecret = generated
		log.Println("Warning: APP_SECRET is not set. Using a random key, sessions will not survive restarts.")
	}

	auditKey := os.Getenv("AUDIT_ENC_KEY")
	if auditKey == "" {
		generated, err := util.RandomURLToken(32)
		if err != nil {
			return nil, fmt.Errorf("config.Load(): failed to generate audit key: %w", err)
		}
		auditKey = generated
		log.Println("Warning: AUDIT_ENC_KEY is not set. Using a random key, old audit metadata will be unreadable.")
	}

	ttlHours := 24
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("config.Load(): invalid SESSION_TTL_HOURS value %q", raw)
		}
		ttlHours = parsed
	}

	return &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		DatabaseURL: dbURL,
		RedisURL:    redisURL,
		AppSecret:   appSecret,
		AuditEncKey: auditKey,
		OwnerEmail:  ownerEmail,
		SessionTTL:  time.Duration(ttlHours) * time.Hour,
		FrontendURL: strings.TrimSpace(os.Getenv("FRONTEND_URL")),
		OAuth: OAuthConfig{
			Google: ProviderConfig{
				ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
				ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
				RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			},
			Microsoft: ProviderConfig{
				ClientID:     os.Getenv("MS_CLIENT_ID"),
				ClientSecret: os.Getenv("MS_CLIENT_SECRET"),
				RedirectURL:  os.Getenv("MS_REDIRECT_URL"),
			},
			Zoho: ProviderConfig{
				ClientID:     os.Getenv("ZOHO_CLIENT_ID"),
				ClientSecret: os.Getenv("ZOHO_CLIENT_SECRET"),
				RedirectURL:  os.Getenv("ZOHO_REDIRECT_URL"),
			},
			MSTenant:        getEnvOrDefault("MS_TENANT", "common"),
			ZohoAccountsURL: getEnvOrDefault("ZOHO_ACCOUNTS_URL", "https://accounts.zoho.com"),
		},
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
