package application

import (
	"fmt"
	"io"
)

// Response is the bounded buffer a command handler writes its reply into.
// The capacity is fixed at construction; overflowing it is a programming
// error in a handler, not a runtime condition, so Writef panics rather than
// truncating silently.
type Response struct {
	buf []byte
}

const DefaultResponseCapacity = 4096

func NewResponse(capacity int) *Response {
	if capacity <= 0 {
		capacity = DefaultResponseCapacity
	}
	return &Response{buf: make([]byte, 0, capacity)}
}

func (r *Response) Writef(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if len(r.buf)+len(text) > cap(r.buf) {
		panic(fmt.Sprintf("response buffer overflow: %d bytes into capacity %d", len(r.buf)+len(text), cap(r.buf)))
	}
	r.buf = append(r.buf, text...)
}

func (r *Response) Writeln(text string) {
	r.Writef("%s\n", text)
}

func (r *Response) Len() int {
	return len(r.buf)
}

// Flush writes the accumulated bytes to w and resets the buffer for the next
// line, keeping the allocated capacity.
func (r *Response) Flush(w io.Writer) error {
	if len(r.buf) == 0 {
		return nil
	}
	_, err := w.Write(r.buf)
	r.buf = r.buf[:0]
	if err != nil {
		return fmt.Errorf("flush response: %w", err)
	}
	return nil
}
