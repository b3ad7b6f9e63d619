package loopback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

// Coordinator is the in-process room registry shared by every loopback room
// session. Rooms live until the process exits.
type Coordinator struct {
	mu         sync.Mutex
	rooms      map[domain.RoomID]*roomRecord
	nextRoomID domain.RoomID
	log        *slog.Logger
}

type roomRecord struct {
	summary    domain.RoomSummary
	members    []domain.UserID
	ownerIndex int
}

func NewCoordinator(log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}

	return &Coordinator{
		rooms:      map[domain.RoomID]*roomRecord{},
		nextRoomID: 1,
		log:        log,
	}
}

// Dial satisfies ports.SessionDialer.
func (c *Coordinator) Dial(identity domain.Identity, sessionID domain.SessionID, _ time.Time) (ports.RoomSession, error) {
	c.log.Debug("loopback room session dialed",
		"userId", uint64(identity.UserID), "sessionId", uint64(sessionID))
	return newRoomSession(c, identity.UserID, c.log), nil
}

func (c *Coordinator) createRoom(owner domain.UserID, options domain.RoomCreateOptions) domain.RoomSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextRoomID
	c.nextRoomID++

	record := &roomRecord{
		summary: domain.RoomSummary{
			ID:            id,
			Name:          options.Name,
			OwnerID:       owner,
			ApplicationID: options.ApplicationID,
		},
		members: []domain.UserID{owner},
	}
	c.rooms[id] = record

	return record.summary
}

func (c *Coordinator) joinRoom(user domain.UserID, id domain.RoomID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.rooms[id]
	if !ok {
		return false
	}

	for _, member := range record.members {
		if member == user {
			return true
		}
	}
	record.members = append(record.members, user)
	return true
}

func (c *Coordinator) roomInfo(id domain.RoomID) ([]domain.UserID, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.rooms[id]
	if !ok {
		return nil, 0, false
	}

	members := make([]domain.UserID, len(record.members))
	copy(members, record.members)
	return members, record.ownerIndex, true
}

func (c *Coordinator) listRooms(options domain.RoomListOptions) []domain.RoomSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rooms []domain.RoomSummary
	for id := domain.RoomID(1); id < c.nextRoomID; id++ {
		record, ok := c.rooms[id]
		if !ok {
			continue
		}
		if options.ApplicationID != 0 && record.summary.ApplicationID != options.ApplicationID {
			continue
		}
		rooms = append(rooms, record.summary)
		if options.MaximumCount > 0 && len(rooms) >= options.MaximumCount {
			break
		}
	}
	return rooms
}
