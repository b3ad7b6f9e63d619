package domain

// RoomID identifies a server-side room.
type RoomID uint64

type RoomCreateOptions struct {
	Name           string
	ApplicationID  uint64
	MaxMemberCount int
	Flags          uint64
}

type RoomListOptions struct {
	ApplicationID uint64
	MaximumCount  int
}

// PingResponse is the coordinator's view of the room the session is in.
// Version increments every time the server pushes a fresh value; the console
// uses it purely as a change-detection signal.
type PingResponse struct {
	Version    uint64
	Members    []UserID
	OwnerIndex int
}

type RoomCreateResult struct {
	Version         uint64
	RoomID          RoomID
	ConnectionIndex uint8
}

type RoomSummary struct {
	ID            RoomID
	Name          string
	OwnerID       UserID
	ApplicationID uint64
}

type RoomListResult struct {
	Version uint64
	Rooms   []RoomSummary
}
