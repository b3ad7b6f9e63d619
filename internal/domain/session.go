package domain

// UserID identifies an authenticated user across both remote services.
type UserID uint64

// SessionID is handed out by the auth service once login completes and is
// required to open a room session.
type SessionID uint64

type AuthState int

const (
	AuthStateNotLoggedIn AuthState = iota
	AuthStateLoggingIn
	AuthStateLoggedIn
	AuthStateFailed
)

func (s AuthState) String() string {
	switch s {
	case AuthStateNotLoggedIn:
		return "not logged in"
	case AuthStateLoggingIn:
		return "logging in"
	case AuthStateLoggedIn:
		return "logged in"
	case AuthStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type RoomSessionState int

const (
	RoomSessionStateDisconnected RoomSessionState = iota
	RoomSessionStateConnecting
	RoomSessionStateConnected
)

func (s RoomSessionState) String() string {
	switch s {
	case RoomSessionStateDisconnected:
		return "disconnected"
	case RoomSessionStateConnecting:
		return "connecting"
	case RoomSessionStateConnected:
		return "connected"
	default:
		return "unknown"
	}
}
