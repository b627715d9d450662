// Package engine 두 개의 독립 추론 엔진과 병합 단계를 제공
package engine

import "context"

// Reply 단일 엔진의 응답
type Reply struct {
	Answer string `json:"answer"`
	Reason string `json:"reason"`
}

// Engine 추론 엔진 공통 인터페이스, 전송/저장 계층을 알지 못함
type Engine interface {
	Name() string
	Respond(ctx context.Context, user, prompt string) (*Reply, error)
}
