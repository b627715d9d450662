/**
* Name: 			merge.go
* Description: 		듀얼 엔진 병합 단계
* Workflow: 		두 엔진 동시 호출 → 결과 수집 → 단일 응답으로 병합
 */

package engine

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrAllEnginesFailed = errors.New("all engines failed")

// Trace 병합 응답에 포함되는 엔진별 기여 내역, 원문 답변은 노출하지 않음
type Trace struct {
	Engine   string `json:"engine"`
	Reason   string `json:"reason"`
	Degraded bool   `json:"degraded,omitempty"`
}

// MergedResponse 클라이언트가 받는 유일한 형태, 엔진별 답변이 따로 나가지 않음
type MergedResponse struct {
	Answer    string    `json:"answer"`
	Engines   []Trace   `json:"engines"`
	RequestID string    `json:"request_id"`
	Time      time.Time `json:"time"`
}

type Merger struct {
	engines []Engine
}

func NewMerger(engines ...Engine) *Merger {
	return &Merger{engines: engines}
}

// Ask 모든 엔진을 병렬 호출하고 하나의 응답으로 병합
// 일부 엔진 실패 시 나머지 답변으로 강등, 전부 실패하면 에러
func (m *Merger) Ask(ctx context.Context, user, prompt string) (*MergedResponse, error) {
	type result struct {
		reply *Reply
		err   error
	}

	results := make([]result, len(m.engines))
	var wg sync.WaitGroup
	for i, eng := range m.engines {
		wg.Add(1)
		go func(i int, eng Engine) {
			defer wg.Done()
			reply, err := eng.Respond(ctx, user, prompt)
			results[i] = result{reply: reply, err: err}
		}(i, eng)
	}
	wg.Wait()

	var answers []string
	traces := make([]Trace, 0, len(m.engines))
	for i, eng := range m.engines {
		if results[i].err != nil {
			log.Printf("Merger.Ask(): engine %s failed: %v", eng.Name(), results[i].err)
			traces = append(traces, Trace{Engine: eng.Name(), Reason: "engine unavailable", Degraded: true})
			continue
		}
		answers = append(answers, results[i].reply.Answer)
		traces = append(traces, Trace{Engine: eng.Name(), Reason: results[i].reply.Reason})
	}

	if len(answers) == 0 {
		return nil, ErrAllEnginesFailed
	}

	return &MergedResponse{
		Answer:    strings.Join(answers, "\n\n"),
		Engines:   traces,
		RequestID: uuid.New().String(),
		Time:      time.Now().UTC(),
	}, nil
}
