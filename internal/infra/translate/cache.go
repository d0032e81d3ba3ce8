package translate

import (
	"context"
	"sync"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/app"
	"golang.org/x/sync/singleflight"
)

// CachedTranslator memoizes translations with a TTL and collapses concurrent
// lookups for the same (text, lang) pair. Quiz text repeats often (notices,
// command replies), so this keeps the bot from hammering the endpoint.
type CachedTranslator struct {
	next  app.Translator
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	mu    sync.RWMutex
	cache map[cacheKey]cachedEntry
}

type cacheKey struct {
	text string
	lang string
}

type cachedEntry struct {
	translated string
	expiresAt  time.Time
}

func NewCachedTranslator(next app.Translator, ttl time.Duration) *CachedTranslator {
	return &CachedTranslator{
		next:  next,
		ttl:   ttl,
		clock: time.Now,
		cache: make(map[cacheKey]cachedEntry),
	}
}

func (c *CachedTranslator) Translate(ctx context.Context, text, lang string) string {
	key := cacheKey{text: text, lang: lang}
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.translated
	}
	c.mu.RUnlock()

	result, _, _ := c.sf.Do(lang+"\x00"+text, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.translated, nil
		}
		c.mu.RUnlock()

		translated := c.next.Translate(ctx, text, lang)

		c.mu.Lock()
		c.cache[key] = cachedEntry{translated: translated, expiresAt: now.Add(c.ttl)}
		c.mu.Unlock()
		return translated, nil
	})
	return result.(string)
}
