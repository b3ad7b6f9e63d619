package ports

import (
	"time"

	"github.com/piot/conclave-console/internal/domain"
)

// AuthSession is the stateful connection to the auth service. Update is
// non-blocking and must be called every tick; all network progress happens
// inside it.
type AuthSession interface {
	Update(now time.Time)
	State() domain.AuthState
	// SessionID reports false until State reaches AuthStateLoggedIn.
	SessionID() (domain.SessionID, bool)
}

// RoomSession is the stateful connection to the room coordinator. Update is
// non-blocking; a returned error wrapping domain.TransportError is fatal to
// the console loop. The versioned response records are read-only snapshots:
// the console only compares their Version fields against what it last
// rendered.
type RoomSession interface {
	Update(now time.Time) error

	CreateRoom(options domain.RoomCreateOptions)
	JoinRoom(id domain.RoomID)
	ListRooms(options domain.RoomListOptions)
	Ping(knowledge uint64)

	State() domain.RoomSessionState
	TargetState() domain.RoomSessionState

	PingResponse() domain.PingResponse
	RoomCreateResult() domain.RoomCreateResult
	RoomListResult() domain.RoomListResult
}

// SessionDialer opens a room session once the auth session has produced a
// session id. Called at most once per console run.
type SessionDialer func(identity domain.Identity, sessionID domain.SessionID, now time.Time) (RoomSession, error)
