package palette

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cataplot/palette/pkg/fuzzy"
)

// State is the controller's display state.
type State int

const (
	// StateHidden means the palette is not shown.
	StateHidden State = iota
	// StateShowingTop means the top-level command listing is shown.
	StateShowingTop
	// StateShowingSub means a sub-menu level is shown.
	StateShowingSub
	// StateRunning means an invocation is in flight.
	StateRunning
)

func (s State) String() string {
	return map[State]string{
		StateHidden:     "hidden",
		StateShowingTop: "showing top-level commands",
		StateShowingSub: "showing sub-commands",
		StateRunning:    "running",
	}[s]
}

// ErrorReporter receives work-function failures. The palette resolves a
// failed command back to hidden; the reporter is how the failure reaches the
// surrounding application instead of silently disappearing.
type ErrorReporter func(error)

// Controller orchestrates the registry, navigator and executor, turning UI
// events into state transitions and exposing the current displayable state.
//
// All methods must be called from a single thread (the UI thread). Executor
// notifications arrive on subscriber channels; the consumer of those channels
// must funnel them back into [Controller.HandleEvent] on the same thread.
type Controller struct {
	registry  *Registry
	nav       *Navigator
	exec      *Executor
	current   *Invocation
	reportErr ErrorReporter
	ctx       context.Context

	items    []string
	query    string
	state    State
	selected int
	progress int
}

// ControllerOpt configures a [Controller].
type ControllerOpt func(c *Controller)

// WithErrorReporter sets the collaborator that receives work failures.
func WithErrorReporter(f ErrorReporter) ControllerOpt {
	return func(c *Controller) {
		c.reportErr = f
	}
}

// WithContext sets the base context for invocations.
func WithContext(ctx context.Context) ControllerOpt {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// NewController creates a [Controller] over the given registry, starting
// hidden with an empty breadcrumb path.
func NewController(registry *Registry, opts ...ControllerOpt) *Controller {
	c := &Controller{
		registry: registry,
		nav:      NewNavigator(),
		exec:     NewExecutor(),
		ctx:      context.Background(),
		state:    StateHidden,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.items = registry.Names()

	return c
}

// Executor returns the underlying executor, for event subscription and
// shutdown.
func (c *Controller) Executor() *Executor {
	return c.exec
}

// Navigator returns the underlying breadcrumb navigator.
func (c *Controller) Navigator() *Navigator {
	return c.nav
}

// State returns the current display state.
func (c *Controller) State() State {
	return c.state
}

// IsVisible reports whether the palette should be rendered.
func (c *Controller) IsVisible() bool {
	return c.state != StateHidden
}

// Show opens the palette on the top-level command listing with a cleared
// query and an empty breadcrumb path.
func (c *Controller) Show() {
	c.nav.Reset()
	c.items = c.registry.Names()
	c.query = ""
	c.selected = 0
	c.state = StateShowingTop
}

// Hide closes the palette. A running invocation is superseded, not
// interrupted; its remaining output is ignored.
func (c *Controller) Hide() {
	c.exec.Cancel()
	c.current = nil
	c.reset()
}

// SetQuery updates the filter query. Filtering applies to the current display
// items only; it never changes state, breadcrumbs, or triggers execution.
func (c *Controller) SetQuery(query string) {
	if c.query == query {
		return
	}

	c.query = query
	c.selected = 0
}

// Query returns the current filter query.
func (c *Controller) Query() string {
	return c.query
}

// CurrentItems returns the display items with the query filter applied.
func (c *Controller) CurrentItems() []string {
	if c.query == "" {
		return c.items
	}

	return fuzzy.Filter(c.query, c.items)
}

// MoveSelection moves the selection cursor by delta, clamped to the filtered
// item list.
func (c *Controller) MoveSelection(delta int) {
	n := len(c.CurrentItems())
	if n == 0 {
		c.selected = 0

		return
	}

	c.selected = min(n-1, max(0, c.selected+delta))
}

// SelectedIndex returns the index of the selection cursor within
// [Controller.CurrentItems].
func (c *Controller) SelectedIndex() int {
	return c.selected
}

// SelectedItem returns the currently selected item, if any.
func (c *Controller) SelectedItem() (string, bool) {
	items := c.CurrentItems()
	if c.selected < 0 || c.selected >= len(items) {
		return "", false
	}

	return items[c.selected], true
}

// Choose acts on a chosen item. At the top level it starts the item's
// command, consulting the MRU table for a saved path to resume; in a sub-menu
// it pushes the label and re-invokes the command at the deeper path.
//
// Choosing a top-level item with no registered command returns
// [ErrUnknownCommand]; this indicates a menu item with no backing command and
// must be treated as fatal by the caller.
func (c *Controller) Choose(item string) error {
	switch c.state {
	case StateShowingTop:
		cmd, err := c.registry.Lookup(item)
		if err != nil {
			return err
		}

		c.nav.Start(item)
		c.invoke(cmd)

	case StateShowingSub:
		c.nav.Push(item)

		cmd, err := c.registry.Lookup(c.nav.Path().Command)
		if err != nil {
			// Unreachable given the breadcrumb invariant: element zero always
			// names a registered command.
			return err
		}

		c.invoke(cmd)

	case StateHidden, StateRunning:
		// No selectable items in these states.
	}

	return nil
}

// GoBack pops one breadcrumb level. The prior level's items are not cached;
// they are regenerated by re-invoking the command at the shortened path. When
// the pop empties the path, the palette returns to the top-level listing.
func (c *Controller) GoBack() {
	if c.state != StateShowingSub && c.state != StateRunning {
		return
	}

	if _, ok := c.nav.Pop(); !ok {
		// Unreachable given the state machine; guard anyway.
		c.Show()

		return
	}

	if c.nav.Empty() {
		c.exec.Cancel()
		c.current = nil
		c.Show()

		return
	}

	path := c.nav.Path()

	cmd, err := c.registry.Lookup(path.Command)
	if err != nil {
		panic(fmt.Sprintf("breadcrumb root is not a registered command: %v", err))
	}

	c.invoke(cmd)
}

// HandleEvent applies an executor notification to the controller state. It
// must be called on the controller's thread. Events from an invocation other
// than the current one are discarded; the superseded check happens here in
// addition to the executor's own gating, covering events that were queued
// before the supersession.
func (c *Controller) HandleEvent(evt Event) {
	switch evt := evt.(type) {
	case EventProgress:
		if evt.Invocation != c.current || evt.Invocation.Cancelled() {
			return
		}

		c.progress = evt.Percent

	case EventResult:
		if evt.Invocation != c.current || evt.Invocation.Cancelled() {
			return
		}

		c.current = nil
		c.handleResult(evt)
	}
}

// Progress returns the most recent progress percentage of the running
// invocation.
func (c *Controller) Progress() int {
	return c.progress
}

// BreadcrumbLabel returns the joined breadcrumb path for display, with the
// progress percentage appended while an invocation is running.
func (c *Controller) BreadcrumbLabel() string {
	label := c.nav.Path().String()
	if c.state == StateRunning {
		return fmt.Sprintf("%s (%d%%)", label, c.progress)
	}

	return label
}

func (c *Controller) invoke(cmd Command) {
	c.query = ""
	c.selected = 0
	c.progress = 0
	c.state = StateRunning
	c.current = c.exec.Invoke(c.ctx, cmd, c.nav.Path())
}

func (c *Controller) handleResult(evt EventResult) {
	if evt.Err != nil {
		// A failed command resolves like a completed one, minus the MRU save,
		// with the failure handed to the external reporter.
		if c.reportErr != nil {
			c.reportErr(evt.Err)
		} else {
			slog.Error("palette work failure", slog.Any("error", evt.Err))
		}

		c.exec.Cancel()
		c.reset()

		return
	}

	switch evt.Result.Status {
	case StatusSubCommand:
		c.items = evt.Result.Items
		c.query = ""
		c.selected = 0
		c.state = StateShowingSub

	case StatusCompleted:
		c.nav.SaveMRU(c.nav.Path())
		c.reset()
	}
}

// reset returns the palette to hidden with the display restored to the
// registry names.
func (c *Controller) reset() {
	c.nav.Reset()
	c.items = c.registry.Names()
	c.query = ""
	c.selected = 0
	c.progress = 0
	c.state = StateHidden
}
