// Package editsession drives the lifecycle of one edit of one record.
//
// # Overview
//
// A Session[T] lazily fetches its record once, memoizes the snapshot in the
// browsing session's cache, exposes a form seeded from the snapshot, and
// submits a patched record back. Its status follows a looplab/fsm table:
//
//	idle --load--> loading --loaded--> ready
//	idle --hydrate--> ready                 (cache hit or create flow)
//	loading --load_failed--> failed
//	ready|failed --submit--> submitting     (not from a failed load)
//	submitting --submitted--> succeeded
//	submitting --submit_failed--> failed
//
// Pages never mutate a session directly: they call Load and Submit and render
// whatever View returns. View has no side effects, so rendering a page twice
// never triggers a second fetch.
//
// A Workspace holds the live sessions of one browsing session, one per
// (kind, key). Reopening a succeeded session or one whose load failed starts
// over, which is how re-entering a page retries.
//
// # Concurrency
//
// Sessions are safe for concurrent use. The session lock is released while the
// backend is called; a second Submit arriving meanwhile observes the
// submitting status and returns ErrSubmitInProgress.
package editsession
