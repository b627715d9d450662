/**
* Name: 			store.go
* Description: 		Redis 기반 세션 및 대화 컨텍스트 저장소
* Workflow: 		세션 생성/검증/삭제, 엔진용 단기/장기 메모리 관리
 */

package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	// 단기 컨텍스트는 최근 10턴만 유지 (Aastrax 엔진의 작업 기억)
	shortContextLimit = 10
	// 장기 메모리 무한 성장 방지용 상한
	longMemoryLimit = 1000
)

type Store struct {
	rdb        *redis.Client
	sessionTTL time.Duration
}

// New REDIS_URL을 파싱해 연결하고 ping으로 검증
func New(redisURL string, sessionTTL time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("memory.New(): invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("memory.New(): failed to connect to redis: %w", err)
	}

	return &Store{rdb: rdb, sessionTTL: sessionTTL}, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func sessionKey(id string) string { return "session:" + id }
func contextKey(email string) string { return "ctx:" + email }
func longMemKey(email string) string { return "mem:" + email }

// CreateSession 세션 레코드를 TTL과 함께 저장, 만료 = 로그아웃과 동일 효과
func (s *Store) CreateSession(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(sess.ID), data, s.sessionTTL).Err()
}

// GetSession 없거나 만료됐으면 ErrSessionNotFound
func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// DeleteSession 로그아웃, 토큰이 아직 유효해도 이후 요청은 거부됨
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

// AppendContext 단기 컨텍스트에 추가하고 최근 N턴으로 트림, TTL 갱신
func (s *Store) AppendContext(ctx context.Context, email, prompt string) error {
	key := contextKey(email)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, prompt)
	pipe.LTrim(ctx, key, -shortContextLimit, -1)
	pipe.Expire(ctx, key, s.sessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) RecentContext(ctx context.Context, email string) ([]string, error) {
	return s.rdb.LRange(ctx, contextKey(email), 0, -1).Result()
}

// AppendLongMemory TTL 없는 장기 메모리, 상한까지만 보관
func (s *Store) AppendLongMemory(ctx context.Context, email, prompt string) error {
	key := longMemKey(email)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, prompt)
	pipe.LTrim(ctx, key, -longMemoryLimit, -1)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) LongMemoryLen(ctx context.Context, email string) (int64, error) {
	return s.rdb.LLen(ctx, longMemKey(email)).Result()
}
