package models

import "time"

// 오너 전용 엔드포인트로 제출되는 학습 데이터 단위
// 라이브 응답에는 반영되지 않고 영구 저장만 됨
type TrainingRecord struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
