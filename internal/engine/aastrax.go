package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
)

// Aastrax 메모리 기반 학습형 엔진, 사용자별 단기/장기 기억을 유지
type Aastrax struct {
	mem *memory.Store
}

func NewAastrax(mem *memory.Store) *Aastrax {
	return &Aastrax{mem: mem}
}

func (e *Aastrax) Name() string { return "aastrax" }

func (e *Aastrax) Respond(ctx context.Context, user, prompt string) (*Reply, error) {
	// 먼저 기억에 기록, 기록 실패는 응답 자체를 막지 않음
	if err := e.mem.AppendContext(ctx, user, prompt); err != nil {
		log.Printf("Aastrax.Respond(): failed to append short context for %s: %v", user, err)
	}
	if err := e.mem.AppendLongMemory(ctx, user, prompt); err != nil {
		log.Printf("Aastrax.Respond(): failed to append long memory for %s: %v", user, err)
	}

	recent, err := e.mem.RecentContext(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("aastrax: failed to read context: %w", err)
	}

	return &Reply{
		Answer: fmt.Sprintf("Aastrax processed: %s", reverse(prompt)),
		Reason: fmt.Sprintf("prompt length %d, %d turns in context", len([]rune(prompt)), len(recent)),
	}, nil
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
