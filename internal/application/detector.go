package application

import "github.com/piot/conclave-console/internal/domain"

type NotificationKind int

const (
	NotificationPingResponse NotificationKind = iota
	NotificationRoomCreated
	NotificationRoomList
)

// Notification is one rendered out-of-band message ready for the console
// controller. Text ends with a newline.
type Notification struct {
	Kind NotificationKind
	Text string
}

// NotificationRenderer turns versioned response records into console text.
// Implemented by internal/adapters/render/notify; injected so this package
// stays presentation-free.
type NotificationRenderer interface {
	PingResponse(response domain.PingResponse) string
	RoomCreated(result domain.RoomCreateResult) string
	RoomList(result domain.RoomListResult) string
}

// Detector diffs the room session's version counters against what the
// console last rendered. The three counters are checked in a fixed order
// every tick; each distinct counter value yields exactly one notification,
// acknowledged by updating LastSeen.
type Detector struct {
	render NotificationRenderer
}

func NewDetector(render NotificationRenderer) *Detector {
	return &Detector{render: render}
}

func (d *Detector) Scan(app *Context) []Notification {
	if !app.Started {
		return nil
	}

	var notifications []Notification

	if response := app.Room.PingResponse(); response.Version != app.LastSeen.PingResponse {
		app.LastSeen.PingResponse = response.Version
		notifications = append(notifications, Notification{
			Kind: NotificationPingResponse,
			Text: d.render.PingResponse(response),
		})
	}

	if result := app.Room.RoomCreateResult(); result.Version != app.LastSeen.RoomCreate {
		app.LastSeen.RoomCreate = result.Version
		notifications = append(notifications, Notification{
			Kind: NotificationRoomCreated,
			Text: d.render.RoomCreated(result),
		})
	}

	if result := app.Room.RoomListResult(); result.Version != app.LastSeen.RoomList {
		app.LastSeen.RoomList = result.Version
		notifications = append(notifications, Notification{
			Kind: NotificationRoomList,
			Text: d.render.RoomList(result),
		})
	}

	return notifications
}
