package application

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piot/conclave-console/internal/adapters/loopback"
	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

func newTestEngine(app *Context, dial ports.SessionDialer, editor *fakeEditor, out *bytes.Buffer) *Engine {
	console := NewConsoleController(editor, out)
	return NewEngine(
		app,
		NewPoller(dial),
		NewDetector(plainRenderer{}),
		console,
		NewDispatcher(NewConsoleRegistry(), out, 0),
		&fakeClock{},
		EngineOptions{TickInterval: 0},
	)
}

func TestEngineQuitStopsWithinOneTickAndClosesEditorOnce(t *testing.T) {
	editor := &fakeEditor{script: []scriptedEvent{completed("quit")}}
	app := NewContext(domain.Identity{}, &fakeAuthSession{}, nil)

	var out bytes.Buffer
	engine := newTestEngine(app, nil, editor, &out)

	require.NoError(t, engine.Run(context.Background()))
	assert.Equal(t, 1, editor.closes)
	assert.Empty(t, editor.script, "quit consumed on the first poll")
}

func TestEngineEditorInterruptStopsLoop(t *testing.T) {
	editor := &fakeEditor{script: []scriptedEvent{{event: ports.EditorInterrupted}}}
	app := NewContext(domain.Identity{}, &fakeAuthSession{}, nil)

	var out bytes.Buffer
	engine := newTestEngine(app, nil, editor, &out)

	require.NoError(t, engine.Run(context.Background()))
	assert.Equal(t, 1, editor.closes)
}

func TestEngineHonorsCancelledContext(t *testing.T) {
	editor := &fakeEditor{}
	auth := &fakeAuthSession{}
	app := NewContext(domain.Identity{}, auth, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	engine := newTestEngine(app, nil, editor, &out)

	require.NoError(t, engine.Run(ctx))
	assert.Equal(t, 1, editor.closes)
	assert.Zero(t, auth.updates, "no tick runs after cancellation")
}

func TestEngineTransportErrorIsFatal(t *testing.T) {
	room := &fakeRoomSession{updateErr: &domain.TransportError{Code: -7}}
	dial := func(domain.Identity, domain.SessionID, time.Time) (ports.RoomSession, error) {
		return room, nil
	}
	editor := &fakeEditor{}
	app := NewContext(domain.Identity{}, loggedInAuth(77), nil)

	var out bytes.Buffer
	engine := newTestEngine(app, dial, editor, &out)

	err := engine.Run(context.Background())
	require.Error(t, err)

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, -7, transportErr.Code)
	assert.Equal(t, 1, editor.closes)
}

func TestEngineAnnouncesNotificationsThroughSuspendResume(t *testing.T) {
	room := &fakeRoomSession{ping: domain.PingResponse{Version: 1}}
	app := startedContext(room)
	editor := &fakeEditor{script: []scriptedEvent{completed("quit")}}

	var out bytes.Buffer
	engine := newTestEngine(app, nil, editor, &out)

	require.NoError(t, engine.Run(context.Background()))
	assert.Equal(t, 1, editor.suspends)
	assert.Equal(t, 1, editor.resumes)
	assert.Contains(t, out.String(), "ping v1")
}

func TestEngineSetsPrompt(t *testing.T) {
	editor := &fakeEditor{script: []scriptedEvent{completed("quit")}}
	app := NewContext(domain.Identity{}, &fakeAuthSession{}, nil)

	var out bytes.Buffer
	engine := newTestEngine(app, nil, editor, &out)

	require.NoError(t, engine.Run(context.Background()))
	assert.Equal(t, DefaultPrompt, editor.prompt)
}

// End to end against the loopback transport: login, lazy room session
// construction, command dispatch, and version-counter notifications.
func TestEngineEndToEndWithLoopback(t *testing.T) {
	identity := domain.Identity{UserID: 0xBEEF, Secret: "working"}
	coordinator := loopback.NewCoordinator(nil)
	auth := loopback.NewAuthSession(identity, nil)

	var script []scriptedEvent
	script = append(script, idle(10)...)
	script = append(script, completed("room create --name foo"))
	script = append(script, idle(3)...)
	script = append(script, completed("ping --knowledge 42"))
	script = append(script, idle(3)...)
	script = append(script, completed("room list --applicationId 1 --maximumCount 10"))
	script = append(script, idle(3)...)
	script = append(script, completed("quit"))
	editor := &fakeEditor{script: script}

	app := NewContext(identity, auth, nil)
	var out bytes.Buffer
	engine := newTestEngine(app, coordinator.Dial, editor, &out)

	require.NoError(t, engine.Run(context.Background()))

	assert.True(t, app.Started)
	output := out.String()
	assert.Contains(t, output, `room create requested: "foo"`)
	assert.Contains(t, output, "create v1 room=1")
	assert.Contains(t, output, "ping v1 members=1 owner=0")
	assert.Contains(t, output, "list v1 rooms=1")
	assert.Equal(t, 1, editor.closes)
	assert.Equal(t, 3, editor.suspends, "one suspend per notification")
}
