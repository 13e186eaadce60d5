package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/client/cache"
	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/common"
	"github.com/dmitrijs2005/myhealth/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/united-manufacturing-hub/expiremap/v2/pkg/expiremap"
)

type ctxKey string

const workspaceKey ctxKey = "workspace"

// sessionManager maps signed browsing-session cookies to workspaces. A
// workspace is dropped after ttl without requests; every request renews both
// the cookie and the registry entry.
type sessionManager struct {
	secret []byte
	ttl    time.Duration
	store  *cache.SQLiteStore
	logger logging.Logger
	now    func() time.Time

	mu         sync.Mutex
	workspaces *expiremap.ExpireMap[string, *editsession.Workspace]
}

// newSessionManager keeps snapshots in memory unless store is set, in which
// case each browsing session gets its own scope of store.
func newSessionManager(secret []byte, ttl time.Duration, store *cache.SQLiteStore, logger logging.Logger) *sessionManager {
	return &sessionManager{
		secret:     secret,
		ttl:        ttl,
		store:      store,
		logger:     logger.With("module", "sessions"),
		now:        time.Now,
		workspaces: expiremap.NewEx[string, *editsession.Workspace](cullInterval(ttl), ttl),
	}
}

func cullInterval(ttl time.Duration) time.Duration {
	if d := ttl / 4; d > time.Second {
		return min(d, 5*time.Minute)
	}
	return time.Second
}

func (m *sessionManager) issueToken(sessionID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})
	return token.SignedString(m.secret)
}

func (m *sessionManager) parseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

// workspace returns the live workspace of sessionID, creating it on first
// use, and extends its lifetime.
func (m *sessionManager) workspace(ctx context.Context, sessionID string) (*editsession.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Touch(ctx, sessionID); err != nil {
			m.logger.Warn(ctx, "failed to touch browsing session", "error", err)
		}
	}

	if ws, ok := m.workspaces.Load(sessionID); ok {
		m.workspaces.Set(sessionID, *ws)
		return *ws, nil
	}

	var snapshots cache.Cache = cache.NewMemory()
	if m.store != nil {
		scoped, err := m.store.Scope(sessionID)
		if err != nil {
			return nil, err
		}
		snapshots = scoped
	}

	ws := editsession.NewWorkspace(snapshots, m.logger.With("session", sessionID))
	m.workspaces.Set(sessionID, ws)
	m.logger.Debug(ctx, "browsing session started", "session", sessionID)
	return ws, nil
}

// Len reports the number of live browsing sessions.
func (m *sessionManager) Len() int {
	return m.workspaces.Length()
}

// middleware resolves the browsing session of the request, renews its
// cookie and stores the workspace in the request context.
func (m *sessionManager) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var sessionID string
		if c, err := r.Cookie(common.SessionCookieName); err == nil {
			sessionID, err = m.parseToken(c.Value)
			if err != nil {
				m.logger.Debug(ctx, "discarding session cookie", "error", err)
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		ws, err := m.workspace(ctx, sessionID)
		if err != nil {
			m.logger.Error(ctx, "failed to open browsing session", "error", err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}

		token, err := m.issueToken(sessionID)
		if err != nil {
			m.logger.Error(ctx, "failed to sign session cookie", "error", err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     common.SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(m.ttl / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, workspaceKey, ws)))
	})
}

func workspaceFrom(ctx context.Context) *editsession.Workspace {
	ws, _ := ctx.Value(workspaceKey).(*editsession.Workspace)
	return ws
}
