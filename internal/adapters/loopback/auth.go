// Package loopback provides in-process implementations of the auth and room
// session ports. It is the default transport for local development and gives
// the engine tests a coordinator with real version-counter semantics, without
// any wire protocol.
package loopback

import (
	"log/slog"
	"time"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

// loginTicks models the auth round trips: the session spends a few update
// calls in logging-in before reaching logged-in.
const loginTicks = 3

type AuthSession struct {
	identity  domain.Identity
	state     domain.AuthState
	sessionID domain.SessionID
	remaining int
	log       *slog.Logger
}

var _ ports.AuthSession = (*AuthSession)(nil)

func NewAuthSession(identity domain.Identity, log *slog.Logger) *AuthSession {
	if log == nil {
		log = slog.Default()
	}

	return &AuthSession{
		identity:  identity,
		state:     domain.AuthStateNotLoggedIn,
		remaining: loginTicks,
		log:       log,
	}
}

func (a *AuthSession) Update(_ time.Time) {
	switch a.state {
	case domain.AuthStateNotLoggedIn:
		if !a.identity.Valid() {
			a.state = domain.AuthStateFailed
			a.log.Warn("loopback login rejected: incomplete identity")
			return
		}
		a.state = domain.AuthStateLoggingIn
	case domain.AuthStateLoggingIn:
		a.remaining--
		if a.remaining <= 0 {
			a.sessionID = domain.SessionID(uint64(a.identity.UserID)<<16 | 0x5E55)
			a.state = domain.AuthStateLoggedIn
			a.log.Info("loopback login complete", "sessionId", uint64(a.sessionID))
		}
	case domain.AuthStateLoggedIn, domain.AuthStateFailed:
	}
}

func (a *AuthSession) State() domain.AuthState {
	return a.state
}

func (a *AuthSession) SessionID() (domain.SessionID, bool) {
	return a.sessionID, a.state == domain.AuthStateLoggedIn
}
