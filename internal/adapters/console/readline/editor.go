// Package readline is a minimal non-blocking line editor for the console
// loop. It owns the terminal's raw mode and implements the suspend/resume
// protocol the engine uses to interleave asynchronous output with typing.
//
// When stdin is not a terminal (pipes, tests) the editor still assembles
// lines but draws nothing, so scripted input produces clean output.
package readline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/piot/conclave-console/internal/ports"
)

type Editor struct {
	in  *os.File
	out *os.File

	prompt string
	buffer []byte
	line   string

	// pending holds bytes read from the terminal but not yet consumed, so a
	// single read burst carrying several lines yields them one Poll at a time.
	pending   []byte
	inEscape  bool
	lastWasCR bool
	sawEOF    bool

	echo    bool
	restore func() error

	closeOnce sync.Once
	closeErr  error
}

var _ ports.LineEditor = (*Editor)(nil)

func New(in, out *os.File) (*Editor, error) {
	e := &Editor{in: in, out: out}

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("enter raw mode: %w", err)
		}
		e.echo = true
		e.restore = func() error {
			return term.Restore(fd, state)
		}
	}

	if err := syscall.SetNonblock(fd, true); err != nil {
		if e.restore != nil {
			_ = e.restore()
		}
		return nil, fmt.Errorf("set input non-blocking: %w", err)
	}

	return e, nil
}

func (e *Editor) SetPrompt(prompt string) {
	e.prompt = prompt
	e.draw("\r" + e.prompt + string(e.buffer))
}

// Poll drains whatever input is available without blocking and reports the
// first completed line or interrupt found in it. Leftover bytes stay pending
// for the next call.
func (e *Editor) Poll() ports.EditorEvent {
	if event := e.consumePending(); event != ports.EditorIdle {
		return event
	}

	var chunk [256]byte
	for {
		n, err := e.in.Read(chunk[:])
		if n > 0 {
			e.pending = append(e.pending, chunk[:n]...)
		}
		if err != nil {
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) ||
				errors.Is(err, os.ErrDeadlineExceeded) {
				break
			}
			// EOF and unreadable input both end the session.
			e.sawEOF = true
			break
		}
		if n == 0 {
			break
		}
	}

	return e.consumePending()
}

func (e *Editor) consumePending() ports.EditorEvent {
	for len(e.pending) > 0 {
		b := e.pending[0]
		e.pending = e.pending[1:]

		if e.inEscape {
			// CSI sequences terminate on a byte in 0x40..0x7E.
			if b != '[' && b >= 0x40 && b <= 0x7e {
				e.inEscape = false
			}
			continue
		}

		wasCR := e.lastWasCR
		e.lastWasCR = false

		switch {
		case b == 0x03: // Ctrl-C
			return ports.EditorInterrupted
		case b == 0x04 && len(e.buffer) == 0: // Ctrl-D on empty line
			return ports.EditorInterrupted
		case b == '\r' || b == '\n':
			if b == '\n' && wasCR {
				continue
			}
			e.lastWasCR = b == '\r'
			e.line = string(e.buffer)
			e.buffer = e.buffer[:0]
			e.draw("\r\n")
			return ports.EditorLineCompleted
		case b == 0x7f || b == 0x08:
			e.eraseLastRune()
		case b == 0x1b:
			e.inEscape = true
		case b >= 0x20:
			e.buffer = append(e.buffer, b)
			if e.echo {
				_, _ = e.out.Write([]byte{b})
			}
		}
	}

	if e.sawEOF {
		return ports.EditorInterrupted
	}
	return ports.EditorIdle
}

func (e *Editor) eraseLastRune() {
	if len(e.buffer) == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(e.buffer)
	e.buffer = e.buffer[:len(e.buffer)-size]
	e.draw("\b \b")
}

func (e *Editor) Line() string {
	return e.line
}

// ClearBuffer discards the submitted line and redraws a fresh prompt.
func (e *Editor) ClearBuffer() {
	e.buffer = e.buffer[:0]
	e.line = ""
	e.draw("\r" + e.prompt)
}

// SuspendDrawing erases the prompt and partial input from the screen; the
// typed buffer itself is untouched.
func (e *Editor) SuspendDrawing() {
	e.draw("\r\x1b[2K")
}

// ResumeDrawing redraws the prompt followed by the still-in-progress buffer.
func (e *Editor) ResumeDrawing() {
	e.draw(e.prompt + string(e.buffer))
}

func (e *Editor) Close() error {
	e.closeOnce.Do(func() {
		e.draw("\r\n")
		_ = syscall.SetNonblock(int(e.in.Fd()), false)
		if e.restore != nil {
			e.closeErr = e.restore()
		}
	})
	return e.closeErr
}

func (e *Editor) draw(text string) {
	if !e.echo {
		return
	}
	_, _ = io.WriteString(e.out, text)
}
