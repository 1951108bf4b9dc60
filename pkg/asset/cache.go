package asset

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize は LRUCache の既定の最大エントリ数です。
const DefaultCacheSize = 128

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// LRUCache は golang-lru を使った ImageCacher の実装です。
// エントリごとに有効期限を持ち、期限切れのものは Get 時に削除されます。
type LRUCache struct {
	cache *lru.Cache[string, cacheEntry]
	now   func() time.Time
	mu    sync.Mutex
}

// NewLRUCache は最大 size 件を保持する LRUCache を作成します。
func NewLRUCache(size int) (*LRUCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("LRUキャッシュの作成に失敗しました: %w", err)
	}
	return &LRUCache{cache: c, now: time.Now}, nil
}

// Get はキーに紐づく値を返します。期限切れの場合は見つからなかった扱いになります。
func (c *LRUCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, false
	}
	return entry.value, true
}

// Set は値を保存します。d が 0 以下の場合は期限なしになります。
func (c *LRUCache) Set(key string, value any, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := cacheEntry{value: value}
	if d > 0 {
		entry.expiresAt = c.now().Add(d)
	}
	c.cache.Add(key, entry)
}

// Len は現在のエントリ数を返します。
func (c *LRUCache) Len() int {
	return c.cache.Len()
}
