package palette

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownCommand is returned when an invocation references a top-level
// command name that was never registered. A menu item with no backing command
// is a programming error; callers should fail fast rather than ignore it.
var ErrUnknownCommand = errors.New("unknown command")

// ProgressFunc reports work progress as a percentage in [0, 100]. Calls are
// relayed to the active invocation's listeners and silently dropped once the
// invocation has been superseded.
type ProgressFunc func(percent int)

// WorkFunc is the unit of command logic supplied by a collaborator. It runs
// on a background goroutine, may call report zero or more times, and returns
// either a deeper menu level or a completion. The context is canceled when
// the invocation is superseded; honoring it is optional, since supersession
// is cooperative and never interrupts running work.
type WorkFunc func(ctx context.Context, path Breadcrumbs, report ProgressFunc) (Result, error)

// Status tags a work function result.
type Status int

const (
	// StatusCompleted means the command finished with no further navigation.
	StatusCompleted Status = iota
	// StatusSubCommand means the work yielded a deeper menu level.
	StatusSubCommand
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusSubCommand:
		return "sub-command"
	}

	return "unknown"
}

// Result is the tagged value returned by a [WorkFunc].
type Result struct {
	Items  []string
	Status Status
}

// SubCommand returns a result carrying the labels of a deeper menu level.
func SubCommand(items ...string) Result {
	return Result{Status: StatusSubCommand, Items: items}
}

// Completed returns a result indicating the command finished.
func Completed() Result {
	return Result{Status: StatusCompleted}
}

// Command pairs a registered name with its work function and a fixed bag of
// static parameters supplied at registration time.
type Command struct {
	Work   WorkFunc
	Params map[string]any
	Name   string
}

// Registry maps top-level command names to commands. Registration order is
// preserved and used as the default top-level menu.
type Registry struct {
	commands map[string]Command
	names    []string
}

// NewRegistry creates an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register inserts or replaces a command. Re-registration with the same name
// replaces the entry and keeps its original position in the menu order.
func (r *Registry) Register(name string, work WorkFunc, params map[string]any) {
	if _, exists := r.commands[name]; !exists {
		r.names = append(r.names, name)
	}

	r.commands[name] = Command{
		Name:   name,
		Work:   work,
		Params: params,
	}
}

// Lookup returns the command registered under name, or [ErrUnknownCommand].
func (r *Registry) Lookup(name string) (Command, error) {
	cmd, ok := r.commands[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	return cmd, nil
}

// Names returns all registered command names in registration order.
// The returned slice is safe to modify.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}
