package models

// OAuth 로그인으로 생성/갱신되는 회원 사용자 모델
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	CreatedAt int64  `json:"created_at"`
}
