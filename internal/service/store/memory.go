package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Download 待下载的生成文件
type Download struct {
	RunID       string
	Filename    string
	ContentType string
	Data        []byte
	ExpiresAt   time.Time
}

// MemoryStore 内存下载存储：令牌一次性有效，过期自动清理
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]Download
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore 创建内存存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryStore{
		items: make(map[string]Download),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put 保存文件并返回下载令牌
func (s *MemoryStore) Put(d Download) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	token := uuid.NewString()
	d.ExpiresAt = now.Add(s.ttl)
	s.items[token] = d
	return token
}

// Take 取出文件并作废令牌
func (s *MemoryStore) Take(token string) (Download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	d, ok := s.items[token]
	if !ok {
		return Download{}, false
	}
	delete(s.items, token)
	return d, true
}

// Len 当前有效条目数
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(s.now())
	return len(s.items)
}

// TTL 令牌有效期
func (s *MemoryStore) TTL() time.Duration {
	return s.ttl
}

func (s *MemoryStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if !now.Before(v.ExpiresAt) {
			delete(s.items, k)
		}
	}
}
