package application

import (
	"log/slog"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

// LastSeenVersions holds the version counters the console most recently
// rendered. Zero is a sentinel below anything a live session reports, so the
// first real update is always detected.
type LastSeenVersions struct {
	PingResponse uint64
	RoomCreate   uint64
	RoomList     uint64
}

// Context is the only long-lived mutable state of the console. It is owned by
// the single loop goroutine and passed by pointer into the poller, the change
// detector, and command handlers; none of them may retain the pointer beyond
// the call.
type Context struct {
	// Identity labels outgoing requests. Immutable after init.
	Identity domain.Identity

	// Auth is advanced every tick for the whole run.
	Auth ports.AuthSession

	// Room stays nil until Auth reaches logged-in, then lives until exit.
	Room ports.RoomSession

	// Started gates every room command.
	Started bool

	LastSeen LastSeenVersions

	Log *slog.Logger
}

func NewContext(identity domain.Identity, auth ports.AuthSession, log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}

	return &Context{
		Identity: identity,
		Auth:     auth,
		Log:      log,
	}
}
