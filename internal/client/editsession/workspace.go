package editsession

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/myhealth/internal/client/cache"
	"github.com/dmitrijs2005/myhealth/internal/logging"
)

// Workspace owns the live sessions and the snapshot cache of one browsing
// session.
type Workspace struct {
	mu       sync.Mutex
	cache    cache.Cache
	logger   logging.Logger
	sessions map[string]any
}

func NewWorkspace(c cache.Cache, logger logging.Logger) *Workspace {
	return &Workspace{
		cache:    c,
		logger:   logger,
		sessions: make(map[string]any),
	}
}

// Open returns the live session for (kind, key). A session that succeeded or
// failed to load is replaced by a fresh one. Opening a record is page entry:
// form posts must use Lookup instead.
func Open[T any](w *Workspace, kind *Kind[T], key string) *Session[T] {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := cache.EntryKey(kind.Name, key)
	if s, ok := w.sessions[id].(*Session[T]); ok && !s.finished() {
		return s
	}

	w.pruneFinished()
	s := New(kind, key, w.cache, w.logger)
	w.sessions[id] = s
	return s
}

// Lookup returns the session of (kind, key) opened earlier, whatever its
// status. It never creates one.
func Lookup[T any](w *Workspace, kind *Kind[T], key string) (*Session[T], bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.sessions[cache.EntryKey(kind.Name, key)].(*Session[T])
	return s, ok
}

// pruneFinished drops sessions that can only be replaced, so the workspace
// holds the open edits plus at most the one being opened.
func (w *Workspace) pruneFinished() {
	for id, s := range w.sessions {
		if f, ok := s.(interface{ finished() bool }); ok && f.finished() {
			delete(w.sessions, id)
		}
	}
}

// Discard forgets the session and cached snapshot of (kind, key), e.g. after
// the record was deleted.
func (w *Workspace) Discard(ctx context.Context, kind, key string) error {
	w.mu.Lock()
	delete(w.sessions, cache.EntryKey(kind, key))
	w.mu.Unlock()

	return w.cache.Clear(ctx, kind, key)
}

// Len reports the number of live sessions.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.sessions)
}
