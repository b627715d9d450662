package engine

import (
	"context"
	"fmt"
)

const nobltyAnswerLimit = 200

// Noblty 무상태 코어 엔진
type Noblty struct{}

func NewNoblty() *Noblty {
	return &Noblty{}
}

func (e *Noblty) Name() string { return "noblty" }

func (e *Noblty) Respond(_ context.Context, _ string, prompt string) (*Reply, error) {
	// 긴 프롬프트는 요약 한도까지만 반영 (룬 단위로 잘라 멀티바이트 깨짐 방지)
	summary := prompt
	if runes := []rune(summary); len(runes) > nobltyAnswerLimit {
		summary = string(runes[:nobltyAnswerLimit])
	}
	return &Reply{
		Answer: fmt.Sprintf("NOBLTY processed: %s", summary),
		Reason: "core NOBLTY reasoning",
	}, nil
}
