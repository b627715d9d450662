/* 세션 JWT 생성 및 검증을 위한 유틸리티 함수들 */

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var jwtKey []byte

// Init 서명 키 설정, main에서 config 로드 후 1회 호출
func Init(secret string) {
	jwtKey = []byte(secret)
}

// Claims 구조체 정의, JWT 페이로드에 세션 식별자와 신원 포함
// 토큰 단독으로는 부족하고 Redis 세션 레코드가 살아 있어야 통과됨
type Claims struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
	Provider  string `json:"provider"`
	jwt.RegisteredClaims
}

// GenerateToken 세션에 대응하는 JWT 발급
func GenerateToken(sessionID, email, provider string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		Email:     email,
		Provider:  provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "noblty-api",
			Subject:   "user_auth_token",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateToken JWT 검증
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	// 만약을 위한 토큰 유효성 재검사
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
