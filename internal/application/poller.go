package application

import (
	"fmt"
	"time"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

// Poller advances both remote sessions once per loop iteration. The room
// session is constructed lazily the first time the auth session reports
// logged-in, and is never torn down or recreated afterwards.
type Poller struct {
	dial ports.SessionDialer
}

func NewPoller(dial ports.SessionDialer) *Poller {
	return &Poller{dial: dial}
}

// Tick is called exactly once per loop iteration and never blocks; the
// session clients do their network I/O non-blockingly inside Update. An error
// from the room session update is fatal to the console.
func (p *Poller) Tick(app *Context, now time.Time) error {
	app.Auth.Update(now)

	if !app.Started && app.Auth.State() == domain.AuthStateLoggedIn {
		sessionID, ok := app.Auth.SessionID()
		if !ok {
			return fmt.Errorf("auth session logged in without a session id")
		}

		app.Log.Info("conclave init", "sessionId", uint64(sessionID))
		room, err := p.dial(app.Identity, sessionID, now)
		if err != nil {
			return fmt.Errorf("dial room session: %w", err)
		}
		app.Room = room
		app.Started = true
	}

	if app.Started {
		if err := app.Room.Update(now); err != nil {
			return fmt.Errorf("room session update: %w", err)
		}
	}

	return nil
}
