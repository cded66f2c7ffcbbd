package memory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"deadline-doom/internal/interview"
	"deadline-doom/internal/interview/repository"
	"deadline-doom/pkg/log"
)

type implRepository struct {
	sessions *expirable.LRU[string, *interview.Session]
	l        log.Logger
}

// New returns an in-memory store holding at most maxSessions sessions. A
// session expires ttl after it was last read; evicted sessions are closed.
func New(l log.Logger, maxSessions int, ttl time.Duration) repository.Repository {
	r := &implRepository{l: l}
	r.sessions = expirable.NewLRU[string, *interview.Session](maxSessions, r.onEvict, ttl)
	return r
}

// onEvict runs under the cache lock, so closing happens on its own goroutine
// to stay clear of callers holding the session lock.
func (r *implRepository) onEvict(id string, s *interview.Session) {
	go s.Close()
}
