package editsession

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrijs2005/myhealth/internal/client/backend"
	"github.com/dmitrijs2005/myhealth/internal/client/cache"
	"github.com/dmitrijs2005/myhealth/internal/client/forms"
	"github.com/dmitrijs2005/myhealth/internal/common"
	"github.com/dmitrijs2005/myhealth/internal/logging"
	"github.com/looplab/fsm"
)

// Session is one edit of one record. Use Workspace.Open or New to create it.
type Session[T any] struct {
	mu sync.Mutex

	kind   *Kind[T]
	key    string
	create bool

	cache  cache.Cache
	logger logging.Logger
	fsm    *fsm.FSM

	snapshot   T
	saved      T
	draft      forms.Values
	inputErr   error
	lastErr    error
	failedFrom Status
	notice     string
}

// New builds an idle session. key is the record key, or common.CreateKey for
// a create flow.
func New[T any](kind *Kind[T], key string, c cache.Cache, logger logging.Logger) *Session[T] {
	s := &Session[T]{
		kind:   kind,
		key:    key,
		create: key == common.CreateKey && kind.CanCreate(),
		cache:  c,
		logger: logger.With("kind", kind.Name, "key", key),
	}

	s.fsm = fsm.NewFSM(
		string(StatusIdle),
		fsm.Events{
			{Name: eventLoad, Src: []string{string(StatusIdle)}, Dst: string(StatusLoading)},
			{Name: eventHydrate, Src: []string{string(StatusIdle)}, Dst: string(StatusReady)},
			{Name: eventLoaded, Src: []string{string(StatusLoading)}, Dst: string(StatusReady)},
			{Name: eventLoadFailed, Src: []string{string(StatusLoading)}, Dst: string(StatusFailed)},
			{Name: eventSubmit, Src: []string{string(StatusReady), string(StatusFailed)}, Dst: string(StatusSubmitting)},
			{Name: eventSubmitted, Src: []string{string(StatusSubmitting)}, Dst: string(StatusSucceeded)},
			{Name: eventSubmitFailed, Src: []string{string(StatusSubmitting)}, Dst: string(StatusFailed)},
		},
		fsm.Callbacks{
			"before_" + eventSubmit: func(_ context.Context, e *fsm.Event) {
				if e.Src == string(StatusFailed) && s.failedFrom == StatusLoading {
					e.Cancel(ErrNotRetryable)
				}
			},
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				s.logger.Info(ctx, "edit session transition", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
	return s
}

func (s *Session[T]) Kind() string { return s.kind.Name }
func (s *Session[T]) Key() string  { return s.key }

// IsCreate reports whether the session creates a new record.
func (s *Session[T]) IsCreate() bool { return s.create }

func (s *Session[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session[T]) status() Status {
	return Status(s.fsm.Current())
}

// Snapshot returns the record copy being edited. It is the zero value before
// loading and after a successful submit.
func (s *Session[T]) Snapshot() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Saved returns the record stored by a successful submit.
func (s *Session[T]) Saved() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, s.status() == StatusSucceeded
}

// fire runs one transition. State changes are never abandoned half-way, so the
// caller's cancellation is not propagated into the state machine.
func (s *Session[T]) fire(ctx context.Context, event string) error {
	if err := s.fsm.Event(context.WithoutCancel(ctx), event); err != nil {
		var canceled fsm.CanceledError
		if errors.As(err, &canceled) && canceled.Err != nil {
			return canceled.Err
		}
		return fmt.Errorf("edit session %s: %w", event, err)
	}
	return nil
}

// Load makes the record available for editing. It does nothing unless the
// session is idle, so repeated calls fetch at most once.
//
// Resolution order: cached snapshot, then create defaults, then the backend.
// A not-found fetch resolves to defaults for NotFoundIsDefault kinds.
func (s *Session[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status() != StatusIdle {
		return nil
	}

	if s.kind.RequiresKey && !s.create && s.key == "" {
		if err := s.fire(ctx, eventLoad); err != nil {
			return err
		}
		return s.failLoad(ctx, ErrEmptyKey)
	}

	if snap, ok, err := cache.Load[T](ctx, s.cache, s.kind.Name, s.key); err != nil {
		s.logger.Warn(ctx, "snapshot cache read failed", "error", err)
	} else if ok {
		s.snapshot = snap
		return s.fire(ctx, eventHydrate)
	}

	if s.create {
		s.snapshot = s.kind.Defaults(s.kind.NewKey())
		s.kind.Binder.Clamp(&s.snapshot)
		s.remember(ctx)
		return s.fire(ctx, eventHydrate)
	}

	if err := s.fire(ctx, eventLoad); err != nil {
		return err
	}

	s.mu.Unlock()
	record, err := s.kind.Fetch(ctx, s.key)
	s.mu.Lock()

	if err != nil {
		if !(s.kind.NotFoundIsDefault && backend.IsNotFound(err)) {
			return s.failLoad(ctx, err)
		}
		s.notice = err.Error()
		record = s.kind.Defaults(s.key)
		s.logger.Info(ctx, "record not found, using defaults")
	}

	s.kind.Binder.Clamp(&record)
	s.snapshot = record
	s.remember(ctx)
	return s.fire(ctx, eventLoaded)
}

func (s *Session[T]) failLoad(ctx context.Context, err error) error {
	s.lastErr = err
	s.failedFrom = StatusLoading
	if ferr := s.fire(ctx, eventLoadFailed); ferr != nil {
		return ferr
	}
	s.logger.Warn(ctx, "record load failed", "error", err)
	return err
}

func (s *Session[T]) remember(ctx context.Context) {
	if err := cache.Store(ctx, s.cache, s.kind.Name, s.key, s.snapshot); err != nil {
		s.logger.Warn(ctx, "snapshot cache write failed", "error", err)
	}
}

// Submit patches the snapshot with in and upserts the result.
//
// Validation errors leave the status unchanged and are returned as joined
// *forms.FieldError values. A backend failure moves the session to failed
// while keeping the snapshot and the user's input, so a later Submit retries
// without fetching again. Success clears the cached snapshot.
func (s *Session[T]) Submit(ctx context.Context, in forms.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch st := s.status(); {
	case st == StatusSubmitting:
		return ErrSubmitInProgress
	case st == StatusFailed && s.failedFrom == StatusLoading:
		return ErrNotRetryable
	case st != StatusReady && st != StatusFailed:
		return ErrNotReady
	}

	s.draft = maps.Clone(in)
	record, err := s.kind.Binder.Patch(s.snapshot, in)
	if err != nil {
		s.inputErr = err
		return err
	}
	s.inputErr = nil

	if err := s.fire(ctx, eventSubmit); err != nil {
		return err
	}

	s.mu.Unlock()
	err = s.kind.Upsert(ctx, record)
	s.mu.Lock()

	if err != nil {
		s.lastErr = err
		s.failedFrom = StatusSubmitting
		if ferr := s.fire(ctx, eventSubmitFailed); ferr != nil {
			return ferr
		}
		s.logger.Warn(ctx, "record submit failed", "error", err)
		return err
	}

	if cerr := s.cache.Clear(ctx, s.kind.Name, s.key); cerr != nil {
		s.logger.Warn(ctx, "snapshot cache clear failed", "error", cerr)
	}
	var zero T
	s.snapshot = zero
	s.saved = record
	s.draft = nil
	s.lastErr = nil
	s.notice = ""
	return s.fire(ctx, eventSubmitted)
}

// finished reports whether reopening the page should start a new session.
func (s *Session[T]) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.status()
	return st == StatusSucceeded || (st == StatusFailed && s.failedFrom == StatusLoading)
}
