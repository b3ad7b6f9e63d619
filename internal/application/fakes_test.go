package application

import (
	"fmt"
	"time"

	"github.com/piot/conclave-console/internal/domain"
	"github.com/piot/conclave-console/internal/ports"
)

// fakeAuthSession walks a scripted state sequence, one step per Update, and
// stays on the last entry.
type fakeAuthSession struct {
	states    []domain.AuthState
	index     int
	sessionID domain.SessionID
	updates   int
}

func (f *fakeAuthSession) Update(time.Time) {
	f.updates++
	if f.index < len(f.states)-1 {
		f.index++
	}
}

func (f *fakeAuthSession) State() domain.AuthState {
	if len(f.states) == 0 {
		return domain.AuthStateNotLoggedIn
	}
	return f.states[f.index]
}

func (f *fakeAuthSession) SessionID() (domain.SessionID, bool) {
	return f.sessionID, f.State() == domain.AuthStateLoggedIn
}

func loggedInAuth(sessionID domain.SessionID) *fakeAuthSession {
	return &fakeAuthSession{
		states:    []domain.AuthState{domain.AuthStateLoggedIn},
		sessionID: sessionID,
	}
}

type fakeRoomSession struct {
	updateErr error
	updates   int

	ping   domain.PingResponse
	create domain.RoomCreateResult
	list   domain.RoomListResult

	state       domain.RoomSessionState
	targetState domain.RoomSessionState

	createCalls []domain.RoomCreateOptions
	joinCalls   []domain.RoomID
	listCalls   []domain.RoomListOptions
	pingCalls   []uint64
}

var _ ports.RoomSession = (*fakeRoomSession)(nil)

func (f *fakeRoomSession) Update(time.Time) error {
	f.updates++
	return f.updateErr
}

func (f *fakeRoomSession) CreateRoom(options domain.RoomCreateOptions) {
	f.createCalls = append(f.createCalls, options)
}

func (f *fakeRoomSession) JoinRoom(id domain.RoomID) {
	f.joinCalls = append(f.joinCalls, id)
}

func (f *fakeRoomSession) ListRooms(options domain.RoomListOptions) {
	f.listCalls = append(f.listCalls, options)
}

func (f *fakeRoomSession) Ping(knowledge uint64) {
	f.pingCalls = append(f.pingCalls, knowledge)
}

func (f *fakeRoomSession) State() domain.RoomSessionState {
	return f.state
}

func (f *fakeRoomSession) TargetState() domain.RoomSessionState {
	return f.targetState
}

func (f *fakeRoomSession) PingResponse() domain.PingResponse {
	return f.ping
}

func (f *fakeRoomSession) RoomCreateResult() domain.RoomCreateResult {
	return f.create
}

func (f *fakeRoomSession) RoomListResult() domain.RoomListResult {
	return f.list
}

func (f *fakeRoomSession) networkCalls() int {
	return len(f.createCalls) + len(f.joinCalls) + len(f.listCalls) + len(f.pingCalls)
}

// scriptedEvent is one Poll outcome of the fake editor.
type scriptedEvent struct {
	event ports.EditorEvent
	line  string
}

func completed(line string) scriptedEvent {
	return scriptedEvent{event: ports.EditorLineCompleted, line: line}
}

func idle(count int) []scriptedEvent {
	events := make([]scriptedEvent, count)
	return events
}

type fakeEditor struct {
	script []scriptedEvent

	prompt string
	buffer string
	line   string

	suspends int
	resumes  int
	clears   int
	closes   int
}

var _ ports.LineEditor = (*fakeEditor)(nil)

func (f *fakeEditor) SetPrompt(prompt string) {
	f.prompt = prompt
}

func (f *fakeEditor) Poll() ports.EditorEvent {
	if len(f.script) == 0 {
		return ports.EditorIdle
	}
	next := f.script[0]
	f.script = f.script[1:]
	if next.event == ports.EditorLineCompleted {
		f.line = next.line
	}
	return next.event
}

func (f *fakeEditor) Line() string {
	return f.line
}

func (f *fakeEditor) ClearBuffer() {
	f.clears++
	f.line = ""
}

func (f *fakeEditor) SuspendDrawing() {
	f.suspends++
}

func (f *fakeEditor) ResumeDrawing() {
	f.resumes++
}

func (f *fakeEditor) Close() error {
	f.closes++
	return nil
}

// plainRenderer keeps detector and engine assertions free of styling.
type plainRenderer struct{}

func (plainRenderer) PingResponse(response domain.PingResponse) string {
	return fmt.Sprintf("ping v%d members=%d owner=%d\n",
		response.Version, len(response.Members), response.OwnerIndex)
}

func (plainRenderer) RoomCreated(result domain.RoomCreateResult) string {
	return fmt.Sprintf("create v%d room=%d\n", result.Version, uint64(result.RoomID))
}

func (plainRenderer) RoomList(result domain.RoomListResult) string {
	return fmt.Sprintf("list v%d rooms=%d\n", result.Version, len(result.Rooms))
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(16 * time.Millisecond)
	return f.now
}
