package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Double-submit guard: every rendered write form embeds a one-shot token,
// and a replayed token turns the second submit into a no-op redirect.
var seenTokens = struct {
	sync.Mutex
	ids map[string]time.Time
}{ids: map[string]time.Time{}}

func newFormToken() string {
	return uuid.NewString()
}

// consumeFormToken returns false when the token was already used. An empty
// token skips the guard.
func consumeFormToken(token string) bool {
	if token == "" {
		return true
	}
	seenTokens.Lock()
	defer seenTokens.Unlock()

	if _, dup := seenTokens.ids[token]; dup {
		return false
	}
	seenTokens.ids[token] = time.Now()

	if len(seenTokens.ids) > 4096 {
		cutoff := time.Now().Add(-time.Hour)
		for id, at := range seenTokens.ids {
			if at.Before(cutoff) {
				delete(seenTokens.ids, id)
			}
		}
	}
	return true
}
