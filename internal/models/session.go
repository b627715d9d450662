package models

import "time"

// 서버측 세션 레코드, Redis에 TTL과 함께 저장됨
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}
