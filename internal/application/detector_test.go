package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piot/conclave-console/internal/domain"
)

func startedContext(room *fakeRoomSession) *Context {
	app := NewContext(domain.Identity{UserID: 1, Secret: "working"}, loggedInAuth(99), nil)
	app.Room = room
	app.Started = true
	return app
}

func TestScanBeforeStartEmitsNothing(t *testing.T) {
	detector := NewDetector(plainRenderer{})
	app := NewContext(domain.Identity{}, &fakeAuthSession{}, nil)

	assert.Empty(t, detector.Scan(app))
}

func TestScanEmitsExactlyOncePerDistinctVersion(t *testing.T) {
	room := &fakeRoomSession{}
	app := startedContext(room)
	detector := NewDetector(plainRenderer{})

	room.ping.Version = 1
	notifications := detector.Scan(app)
	require.Len(t, notifications, 1)
	assert.Equal(t, NotificationPingResponse, notifications[0].Kind)
	assert.Equal(t, "ping v1 members=0 owner=0\n", notifications[0].Text)

	// Unchanged counter: nothing more to render.
	assert.Empty(t, detector.Scan(app))
	assert.Empty(t, detector.Scan(app))
}

func TestScanNeverSkipsUnitIncrements(t *testing.T) {
	room := &fakeRoomSession{}
	app := startedContext(room)
	detector := NewDetector(plainRenderer{})

	var rendered []string
	for version := uint64(1); version <= 5; version++ {
		room.ping.Version = version
		for _, notification := range detector.Scan(app) {
			rendered = append(rendered, notification.Text)
		}
	}

	assert.Equal(t, []string{
		"ping v1 members=0 owner=0\n",
		"ping v2 members=0 owner=0\n",
		"ping v3 members=0 owner=0\n",
		"ping v4 members=0 owner=0\n",
		"ping v5 members=0 owner=0\n",
	}, rendered)
}

func TestScanChecksCountersInFixedOrder(t *testing.T) {
	room := &fakeRoomSession{}
	app := startedContext(room)
	detector := NewDetector(plainRenderer{})

	room.ping.Version = 1
	room.create.Version = 1
	room.list.Version = 1

	notifications := detector.Scan(app)
	require.Len(t, notifications, 3)
	assert.Equal(t, NotificationPingResponse, notifications[0].Kind)
	assert.Equal(t, NotificationRoomCreated, notifications[1].Kind)
	assert.Equal(t, NotificationRoomList, notifications[2].Kind)
}

func TestScanAcknowledgesLastSeen(t *testing.T) {
	room := &fakeRoomSession{}
	app := startedContext(room)
	detector := NewDetector(plainRenderer{})

	room.ping.Version = 3
	room.create.Version = 2
	room.list.Version = 7

	detector.Scan(app)
	assert.Equal(t, LastSeenVersions{PingResponse: 3, RoomCreate: 2, RoomList: 7}, app.LastSeen)
}

func TestScanRendersRecordContents(t *testing.T) {
	room := &fakeRoomSession{}
	app := startedContext(room)
	detector := NewDetector(plainRenderer{})

	room.ping = domain.PingResponse{
		Version:    1,
		Members:    []domain.UserID{0xBEEF, 0xCAFE},
		OwnerIndex: 1,
	}

	notifications := detector.Scan(app)
	require.Len(t, notifications, 1)
	assert.Equal(t, "ping v1 members=2 owner=1\n", notifications[0].Text)
}
