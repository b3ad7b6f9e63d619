package application

import (
	"github.com/spf13/pflag"

	"github.com/piot/conclave-console/internal/domain"
)

const notStartedDiagnostic = "conclave not started yet"

// defaultApplicationID tags rooms created from the console when the user
// does not care about multiplexing several applications over one coordinator.
const defaultApplicationID = 1

const defaultMaxMemberCount = 8

// NewConsoleRegistry builds the static command tree of the interactive
// console. Reserved lines ("quit", "help") are handled by the dispatcher and
// deliberately absent here.
func NewConsoleRegistry() *Registry {
	return NewRegistry(
		roomCommand(),
		pingCommand(),
		stateCommand(),
	)
}

func roomCommand() *Command {
	return &Command{
		Name: "room",
		Help: "room commands",
		Subcommands: []*Command{
			roomCreateCommand(),
			roomJoinCommand(),
			roomListCommand(),
		},
	}
}

type roomCreateOptions struct {
	Name    string
	Verbose bool
}

func roomCreateCommand() *Command {
	return &Command{
		Name: "create",
		Help: "create a room on the coordinator",
		Bind: func() (*pflag.FlagSet, Runner) {
			var opts roomCreateOptions
			flagSet := pflag.NewFlagSet("room create", pflag.ContinueOnError)
			flagSet.StringVarP(&opts.Name, "name", "n", "secret room", "room name")
			flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable detailed output")
			return flagSet, func(app *Context, resp *Response) {
				runRoomCreate(app, opts, resp)
			}
		},
	}
}

func runRoomCreate(app *Context, opts roomCreateOptions, resp *Response) {
	if !app.Started {
		resp.Writeln(notStartedDiagnostic)
		return
	}

	if opts.Verbose {
		resp.Writef("room create: user %X requesting %q\n", uint64(app.Identity.UserID), opts.Name)
	}

	app.Room.CreateRoom(domain.RoomCreateOptions{
		Name:           opts.Name,
		ApplicationID:  defaultApplicationID,
		MaxMemberCount: defaultMaxMemberCount,
	})
	resp.Writef("room create requested: %q\n", opts.Name)
}

type roomJoinOptions struct {
	ID      uint64
	Verbose bool
}

func roomJoinCommand() *Command {
	return &Command{
		Name: "join",
		Help: "join an existing room",
		Bind: func() (*pflag.FlagSet, Runner) {
			var opts roomJoinOptions
			flagSet := pflag.NewFlagSet("room join", pflag.ContinueOnError)
			flagSet.Uint64VarP(&opts.ID, "id", "i", 0, "room id to join")
			flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable detailed output")
			return flagSet, func(app *Context, resp *Response) {
				runRoomJoin(app, opts, resp)
			}
		},
	}
}

func runRoomJoin(app *Context, opts roomJoinOptions, resp *Response) {
	if !app.Started {
		resp.Writeln(notStartedDiagnostic)
		return
	}

	if opts.Verbose {
		resp.Writef("room join: user %X requesting room %d\n", uint64(app.Identity.UserID), opts.ID)
	}

	app.Room.JoinRoom(domain.RoomID(opts.ID))
	resp.Writef("room join requested: id %d\n", opts.ID)
}

type roomListOptions struct {
	ApplicationID uint64
	MaximumCount  int
}

func roomListCommand() *Command {
	return &Command{
		Name: "list",
		Help: "list rooms on the coordinator",
		Bind: func() (*pflag.FlagSet, Runner) {
			var opts roomListOptions
			flagSet := pflag.NewFlagSet("room list", pflag.ContinueOnError)
			flagSet.Uint64Var(&opts.ApplicationID, "applicationId", defaultApplicationID, "only list rooms for this application")
			flagSet.IntVar(&opts.MaximumCount, "maximumCount", 10, "maximum number of rooms to return")
			return flagSet, func(app *Context, resp *Response) {
				runRoomList(app, opts, resp)
			}
		},
	}
}

func runRoomList(app *Context, opts roomListOptions, resp *Response) {
	if !app.Started {
		resp.Writeln(notStartedDiagnostic)
		return
	}

	app.Room.ListRooms(domain.RoomListOptions{
		ApplicationID: opts.ApplicationID,
		MaximumCount:  opts.MaximumCount,
	})
	resp.Writeln("room list requested")
}

type pingOptions struct {
	Knowledge int
	Verbose   bool
}

func pingCommand() *Command {
	return &Command{
		Name: "ping",
		Help: "ping the coordinator with the current knowledge",
		Bind: func() (*pflag.FlagSet, Runner) {
			var opts pingOptions
			flagSet := pflag.NewFlagSet("ping", pflag.ContinueOnError)
			flagSet.IntVarP(&opts.Knowledge, "knowledge", "k", 0, "simulation tick id the client has reached")
			flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable detailed output")
			return flagSet, func(app *Context, resp *Response) {
				runPing(app, opts, resp)
			}
		},
	}
}

func runPing(app *Context, opts pingOptions, resp *Response) {
	if !app.Started {
		resp.Writeln(notStartedDiagnostic)
		return
	}

	if opts.Verbose {
		resp.Writef("ping: knowledge %d\n", opts.Knowledge)
	}

	app.Room.Ping(uint64(opts.Knowledge))
}

func stateCommand() *Command {
	return &Command{
		Name: "state",
		Help: "show the room session state",
		Bind: func() (*pflag.FlagSet, Runner) {
			flagSet := pflag.NewFlagSet("state", pflag.ContinueOnError)
			return flagSet, runState
		},
	}
}

func runState(app *Context, resp *Response) {
	resp.Writef("auth: %s\n", app.Auth.State())
	if !app.Started {
		resp.Writeln(notStartedDiagnostic)
		return
	}
	resp.Writef("room session: %s target: %s\n", app.Room.State(), app.Room.TargetState())
}
