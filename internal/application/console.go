package application

import (
	"io"

	"github.com/piot/conclave-console/internal/ports"
)

// ConsoleController coordinates the line editor with out-of-band output.
// Anything that is not a direct reply to the submitted line (asynchronous
// notifications, log lines) must go through Announce so it never interleaves
// mid-character with the user's typing.
type ConsoleController struct {
	editor ports.LineEditor
	out    io.Writer
}

func NewConsoleController(editor ports.LineEditor, out io.Writer) *ConsoleController {
	return &ConsoleController{editor: editor, out: out}
}

func (c *ConsoleController) SetPrompt(prompt string) {
	c.editor.SetPrompt(prompt)
}

// Announce suspends the prompt and partial input, prints text, then redraws
// both. The in-progress buffer survives verbatim.
func (c *ConsoleController) Announce(text string) {
	c.editor.SuspendDrawing()
	_, _ = io.WriteString(c.out, text)
	c.editor.ResumeDrawing()
}

func (c *ConsoleController) Poll() ports.EditorEvent {
	return c.editor.Poll()
}

func (c *ConsoleController) Line() string {
	return c.editor.Line()
}

// FinishLine discards the submitted line and redraws a fresh prompt.
func (c *ConsoleController) FinishLine() {
	c.editor.ClearBuffer()
}

func (c *ConsoleController) Close() error {
	return c.editor.Close()
}

// AnnounceWriter adapts the suspend/print/resume protocol to io.Writer so a
// slog handler can emit log lines mid-session without corrupting input.
type AnnounceWriter struct {
	console *ConsoleController
}

func NewAnnounceWriter(console *ConsoleController) *AnnounceWriter {
	return &AnnounceWriter{console: console}
}

func (w *AnnounceWriter) Write(p []byte) (int, error) {
	w.console.Announce(string(p))
	return len(p), nil
}
