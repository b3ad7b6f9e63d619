package loopback

import (
	"log/slog"
	"time"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

// connectTicks models the connect handshake before the session accepts
// domain operations.
const connectTicks = 2

// RoomSession queues every operation and applies it on the next Update,
// mimicking a non-blocking network client: requests return immediately and
// results surface later through the versioned response records.
type RoomSession struct {
	coordinator *Coordinator
	userID      domain.UserID

	state       domain.RoomSessionState
	targetState domain.RoomSessionState
	remaining   int
	currentRoom domain.RoomID

	pingResponse domain.PingResponse
	createResult domain.RoomCreateResult
	listResult   domain.RoomListResult

	pendingCreates []domain.RoomCreateOptions
	pendingJoins   []domain.RoomID
	pendingLists   []domain.RoomListOptions
	pendingPings   []uint64

	log *slog.Logger
}

var _ ports.RoomSession = (*RoomSession)(nil)

func newRoomSession(coordinator *Coordinator, userID domain.UserID, log *slog.Logger) *RoomSession {
	return &RoomSession{
		coordinator: coordinator,
		userID:      userID,
		state:       domain.RoomSessionStateDisconnected,
		targetState: domain.RoomSessionStateConnected,
		remaining:   connectTicks,
		log:         log,
	}
}

func (s *RoomSession) Update(_ time.Time) error {
	switch s.state {
	case domain.RoomSessionStateDisconnected:
		s.state = domain.RoomSessionStateConnecting
		return nil
	case domain.RoomSessionStateConnecting:
		s.remaining--
		if s.remaining <= 0 {
			s.state = domain.RoomSessionStateConnected
			s.log.Debug("loopback room session connected", "userId", uint64(s.userID))
		}
		return nil
	case domain.RoomSessionStateConnected:
	}

	for _, options := range s.pendingCreates {
		summary := s.coordinator.createRoom(s.userID, options)
		s.currentRoom = summary.ID
		s.createResult = domain.RoomCreateResult{
			Version:         s.createResult.Version + 1,
			RoomID:          summary.ID,
			ConnectionIndex: 0,
		}
	}
	s.pendingCreates = nil

	for _, id := range s.pendingJoins {
		if !s.coordinator.joinRoom(s.userID, id) {
			s.log.Warn("loopback join: no such room", "roomId", uint64(id))
			continue
		}
		s.currentRoom = id
		s.pushRoomInfo()
	}
	s.pendingJoins = nil

	for _, options := range s.pendingLists {
		s.listResult = domain.RoomListResult{
			Version: s.listResult.Version + 1,
			Rooms:   s.coordinator.listRooms(options),
		}
	}
	s.pendingLists = nil

	for range s.pendingPings {
		if s.currentRoom == 0 {
			s.log.Debug("loopback ping outside a room")
			continue
		}
		s.pushRoomInfo()
	}
	s.pendingPings = nil

	return nil
}

func (s *RoomSession) pushRoomInfo() {
	members, ownerIndex, ok := s.coordinator.roomInfo(s.currentRoom)
	if !ok {
		return
	}
	s.pingResponse = domain.PingResponse{
		Version:    s.pingResponse.Version + 1,
		Members:    members,
		OwnerIndex: ownerIndex,
	}
}

func (s *RoomSession) CreateRoom(options domain.RoomCreateOptions) {
	s.pendingCreates = append(s.pendingCreates, options)
}

func (s *RoomSession) JoinRoom(id domain.RoomID) {
	s.pendingJoins = append(s.pendingJoins, id)
}

func (s *RoomSession) ListRooms(options domain.RoomListOptions) {
	s.pendingLists = append(s.pendingLists, options)
}

func (s *RoomSession) Ping(knowledge uint64) {
	s.log.Debug("loopback ping", "knowledge", knowledge)
	s.pendingPings = append(s.pendingPings, knowledge)
}

func (s *RoomSession) State() domain.RoomSessionState {
	return s.state
}

func (s *RoomSession) TargetState() domain.RoomSessionState {
	return s.targetState
}

func (s *RoomSession) PingResponse() domain.PingResponse {
	return s.pingResponse
}

func (s *RoomSession) RoomCreateResult() domain.RoomCreateResult {
	return s.createResult
}

func (s *RoomSession) RoomListResult() domain.RoomListResult {
	return s.listResult
}
