package ports

// EditorEvent is the result of one non-blocking poll of the line editor.
type EditorEvent int

const (
	// EditorIdle means no complete line is available yet.
	EditorIdle EditorEvent = iota
	// EditorLineCompleted means a full line was submitted; fetch it with Line.
	EditorLineCompleted
	// EditorInterrupted means the user asked to leave (Ctrl-C, Ctrl-D, EOF).
	EditorInterrupted
)

// LineEditor captures raw-terminal input without blocking the console loop.
// SuspendDrawing/ResumeDrawing bracket any out-of-band output: suspend erases
// the drawn prompt and partial input from the screen without discarding the
// typed buffer, resume redraws both verbatim.
type LineEditor interface {
	SetPrompt(prompt string)
	Poll() EditorEvent
	Line() string
	ClearBuffer()
	SuspendDrawing()
	ResumeDrawing()
	Close() error
}
