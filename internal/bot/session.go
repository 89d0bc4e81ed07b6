package bot

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Conversation states for the multi-step creation flows.
const (
	stateTaskTitle = "task_title"
	stateTaskTags  = "task_tags"
	stateTagName   = "tag_name"
)

// Session holds the per-chat conversation state. It lives outside the
// process so the bot can be restarted mid-dialog.
type Session struct {
	State        string  `json:"state"`
	Title        string  `json:"title,omitempty"`
	DueDate      string  `json:"due_date,omitempty"`
	SelectedTags []int64 `json:"selected_tags,omitempty"`
}

func (s *Session) toggleTag(tagID int64, limit int) (selected bool, ok bool) {
	for i, id := range s.SelectedTags {
		if id == tagID {
			s.SelectedTags = append(s.SelectedTags[:i], s.SelectedTags[i+1:]...)
			return false, true
		}
	}
	if len(s.SelectedTags) >= limit {
		return false, false
	}
	s.SelectedTags = append(s.SelectedTags, tagID)
	return true, true
}

// SessionStore persists conversation state keyed by chat id.
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*Session, error)
	Set(ctx context.Context, chatID int64, s *Session) error
	Clear(ctx context.Context, chatID int64) error
}

const sessionTTL = time.Hour

// RedisSessionStore keeps sessions as JSON values with a TTL, so an
// abandoned dialog expires on its own.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(chatID int64) string {
	return "botsession:" + strconv.FormatInt(chatID, 10)
}

func (s *RedisSessionStore) Get(ctx context.Context, chatID int64) (*Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(chatID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, chatID int64, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(chatID), raw, sessionTTL).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, chatID int64) error {
	return s.rdb.Del(ctx, sessionKey(chatID)).Err()
}

// MemorySessionStore is the fallback when Redis is not configured. State
// does not survive restarts.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[int64]*Session)}
}

func (s *MemorySessionStore) Get(_ context.Context, chatID int64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, nil
	}
	cp := *sess
	cp.SelectedTags = append([]int64(nil), sess.SelectedTags...)
	return &cp, nil
}

func (s *MemorySessionStore) Set(_ context.Context, chatID int64, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	cp.SelectedTags = append([]int64(nil), sess.SelectedTags...)
	s.sessions[chatID] = &cp
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}
