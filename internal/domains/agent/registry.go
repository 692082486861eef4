package agent

import (
	"context"
	"sync"
	"time"

	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/ai/speech"
)

// Registry is the process-wide map from session id to Manager. Sessions are
// created lazily on first reference and removed either by an explicit end
// action or by the TTL sweeper, so an abandoned caller cannot leak a session
// forever.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[string]*entry
	ttl          time.Duration
	historyBound int

	transcriber speech.Transcriber
	completer   speech.Completer
	synthesizer speech.Synthesizer
	logger      *Logger.Logger

	// onEvict runs after a session is dropped by the sweeper.
	onEvict func(sessionID string)
}

type entry struct {
	manager  *Manager
	lastUsed time.Time
}

func NewRegistry(
	ttl time.Duration,
	historyBound int,
	transcriber speech.Transcriber,
	completer speech.Completer,
	synthesizer speech.Synthesizer,
	logger *Logger.Logger,
) *Registry {
	return &Registry{
		sessions:     make(map[string]*entry),
		ttl:          ttl,
		historyBound: historyBound,
		transcriber:  transcriber,
		completer:    completer,
		synthesizer:  synthesizer,
		logger:       logger,
	}
}

// SetEvictionCallback registers a hook invoked with the session id after
// TTL eviction.
func (r *Registry) SetEvictionCallback(fn func(sessionID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvict = fn
}

// GetOrCreate returns the existing Manager for id or constructs and stores
// a new one.
func (r *Registry) GetOrCreate(id string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[id]; ok {
		e.lastUsed = time.Now()
		return e.manager
	}

	m := NewManager(id, r.historyBound, r.transcriber, r.completer, r.synthesizer, r.logger)
	r.sessions[id] = &entry{manager: m, lastUsed: time.Now()}
	r.logger.Infof("created voice session %s", id)
	return m
}

// Remove deletes the mapping for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; ok {
		delete(r.sessions, id)
		r.logger.Infof("removed voice session %s", id)
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// RunSweeper evicts sessions idle past the TTL until ctx is cancelled.
func (r *Registry) RunSweeper(ctx context.Context) {
	interval := r.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.SweepOnce(time.Now())
		}
	}
}

// SweepOnce evicts every session idle past the TTL as of now.
func (r *Registry) SweepOnce(now time.Time) {
	r.mu.Lock()
	var evicted []string
	for id, e := range r.sessions {
		if now.Sub(e.lastUsed) > r.ttl {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	onEvict := r.onEvict
	r.mu.Unlock()

	for _, id := range evicted {
		r.logger.Infof("evicted idle voice session %s", id)
		if onEvict != nil {
			onEvict(id)
		}
	}
}
