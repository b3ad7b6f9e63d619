package application

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Runner executes a resolved command with its options already bound.
type Runner func(app *Context, resp *Response)

// Command is one node in the static command tree. A leaf carries a Bind
// function; a branch carries subcommands. The two are mutually exclusive.
// Bind returns a fresh FlagSet wired into a fresh typed options value, plus a
// Runner closing over that value, so every resolution starts from defaults.
type Command struct {
	Name        string
	Help        string
	Subcommands []*Command
	Bind        func() (*pflag.FlagSet, Runner)
}

// Registry resolves raw console lines against the command tree. It is built
// once at startup and never mutated.
type Registry struct {
	commands []*Command
}

func NewRegistry(commands ...*Command) *Registry {
	return &Registry{commands: commands}
}

// UnknownCommandError reports a token that matched no command at its level
// of the tree.
type UnknownCommandError struct {
	Token string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Token)
}

// MissingSubcommandError reports a branch command given without one of its
// subcommands.
type MissingSubcommandError struct {
	Command  string
	Expected []string
}

func (e *MissingSubcommandError) Error() string {
	return fmt.Sprintf("%s: subcommand required (one of: %s)", e.Command, strings.Join(e.Expected, ", "))
}

// BindError reports a malformed or unknown option on an otherwise matched
// leaf command. Distinct from UnknownCommandError so callers can tell "no
// such command" from "bad flags".
type BindError struct {
	Command string
	Err     error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Resolve walks the raw line token by token against the tree and, on reaching
// a leaf, parses the remaining tokens as flags into the leaf's options value.
func (r *Registry) Resolve(rawLine string) (Runner, error) {
	tokens := strings.Fields(rawLine)
	if len(tokens) == 0 {
		return nil, &UnknownCommandError{Token: ""}
	}
	return resolve(r.commands, "", tokens)
}

func resolve(commands []*Command, path string, tokens []string) (Runner, error) {
	token := tokens[0]
	var matched *Command
	for _, command := range commands {
		if command.Name == token {
			matched = command
			break
		}
	}
	if matched == nil {
		return nil, &UnknownCommandError{Token: token}
	}

	fullName := token
	if path != "" {
		fullName = path + " " + token
	}

	if len(matched.Subcommands) > 0 {
		if len(tokens) < 2 {
			return nil, &MissingSubcommandError{Command: fullName, Expected: subcommandNames(matched)}
		}
		return resolve(matched.Subcommands, fullName, tokens[1:])
	}

	flagSet, run := matched.Bind()
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(tokens[1:]); err != nil {
		return nil, &BindError{Command: fullName, Err: err}
	}
	if flagSet.NArg() > 0 {
		return nil, &BindError{Command: fullName, Err: fmt.Errorf("unexpected argument %q", flagSet.Arg(0))}
	}

	return run, nil
}

func subcommandNames(command *Command) []string {
	names := make([]string, 0, len(command.Subcommands))
	for _, sub := range command.Subcommands {
		names = append(names, sub.Name)
	}
	return names
}

// Diagnostic renders a resolution error as the one-line message shown on the
// console. Unknown errors fall through verbatim.
func Diagnostic(err error) string {
	var unknown *UnknownCommandError
	if errors.As(err, &unknown) {
		if unknown.Token == "" {
			return "empty command"
		}
		return fmt.Sprintf("unknown command %q, try \"help\"", unknown.Token)
	}
	return err.Error()
}

// Usage renders the full command tree, one synopsis line per leaf, aligned
// with tabwriter.
func (r *Registry) Usage() string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 2, 0, 3, ' ', 0)
	for _, command := range r.commands {
		writeUsage(w, "", command)
	}
	w.Flush()
	return builder.String()
}

func writeUsage(w io.Writer, prefix string, command *Command) {
	fullName := prefix + command.Name
	if len(command.Subcommands) > 0 {
		fmt.Fprintf(w, "%s\t%s\n", fullName, command.Help)
		for _, sub := range command.Subcommands {
			writeUsage(w, fullName+" ", sub)
		}
		return
	}

	synopsis := fullName
	if command.Bind != nil {
		flagSet, _ := command.Bind()
		if flags := flagSynopsis(flagSet); flags != "" {
			synopsis += " " + flags
		}
	}
	fmt.Fprintf(w, "%s\t%s\n", synopsis, command.Help)
}

func flagSynopsis(flagSet *pflag.FlagSet) string {
	var parts []string
	flagSet.VisitAll(func(flag *pflag.Flag) {
		if flag.Value.Type() == "bool" {
			parts = append(parts, fmt.Sprintf("[--%s]", flag.Name))
		} else {
			parts = append(parts, fmt.Sprintf("[--%s <%s>]", flag.Name, flag.Value.Type()))
		}
	})
	return strings.Join(parts, " ")
}
