package models

// 프로그램 방식 접근용 API 키, 해시만 저장되고 평문은 발급 시 1회 노출
type APIKey struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	KeyHash     string `json:"-"`
	Fingerprint string `json:"-"`
	Uses        int    `json:"uses"`
	MaxUses     int    `json:"max_uses"`
	Revoked     bool   `json:"revoked"`
	ExpiresAt   int64  `json:"expires_at"`
	Created     int64  `json:"created"`
	BoundIP     string `json:"bound_ip,omitempty"`
}
