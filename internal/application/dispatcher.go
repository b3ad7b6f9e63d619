package application

import (
	"io"
	"strings"
)

// Reserved lines handled before the registry is consulted.
const (
	quitLine = "quit"
	helpLine = "help"
)

// Dispatcher routes completed input lines: reserved lines first, everything
// else through registry resolution into a typed handler. Replies accumulate
// in the bounded response sink and are flushed to out after every dispatch.
type Dispatcher struct {
	registry *Registry
	resp     *Response
	out      io.Writer
}

func NewDispatcher(registry *Registry, out io.Writer, responseCapacity int) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		resp:     NewResponse(responseCapacity),
		out:      out,
	}
}

// Dispatch executes one line. It reports quit=true for the reserved quit
// line; the returned error is only ever a flush failure, never a user input
// problem (those become diagnostics on the sink).
func (d *Dispatcher) Dispatch(rawLine string, app *Context) (quit bool, err error) {
	line := strings.TrimSpace(rawLine)
	if line == "" {
		return false, nil
	}

	switch line {
	case quitLine:
		return true, nil
	case helpLine:
		d.writeHelp()
	default:
		run, resolveErr := d.registry.Resolve(line)
		if resolveErr != nil {
			d.resp.Writeln(Diagnostic(resolveErr))
		} else {
			run(app, d.resp)
		}
	}

	return false, d.resp.Flush(d.out)
}

func (d *Dispatcher) writeHelp() {
	d.resp.Writef("%s", d.registry.Usage())
	d.resp.Writeln("help   show this overview")
	d.resp.Writeln("quit   leave the console")
}
