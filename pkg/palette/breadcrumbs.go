package palette

import (
	"slices"
	"strings"
)

// Separator joins breadcrumb labels for display.
const Separator = " > "

// Breadcrumbs is the ordered path of labels chosen while drilling into a
// command's sub-menus. The top-level command name is a first-class field
// rather than element zero of a slice, so push/pop only ever operate on the
// labels below it.
type Breadcrumbs struct {
	// Command is the registered top-level command name.
	Command string
	// Rest holds the labels chosen below the command, in order.
	Rest []string
}

// NewBreadcrumbs returns a path rooted at the given command name.
func NewBreadcrumbs(command string, rest ...string) Breadcrumbs {
	return Breadcrumbs{Command: command, Rest: rest}
}

// Empty reports whether the path contains no labels at all.
func (b Breadcrumbs) Empty() bool {
	return b.Command == ""
}

// Len returns the number of labels in the path, counting the command name.
func (b Breadcrumbs) Len() int {
	if b.Empty() {
		return 0
	}

	return 1 + len(b.Rest)
}

// Labels returns all labels in order, starting with the command name.
// The returned slice is safe to modify.
func (b Breadcrumbs) Labels() []string {
	if b.Empty() {
		return nil
	}

	labels := make([]string, 0, b.Len())
	labels = append(labels, b.Command)
	labels = append(labels, b.Rest...)

	return labels
}

// Last returns the most recently chosen label.
func (b Breadcrumbs) Last() string {
	if len(b.Rest) > 0 {
		return b.Rest[len(b.Rest)-1]
	}

	return b.Command
}

// Parent returns the path with its final label removed. The parent of a
// depth-one path is the empty path.
func (b Breadcrumbs) Parent() Breadcrumbs {
	if b.Empty() || len(b.Rest) == 0 {
		return Breadcrumbs{}
	}

	return Breadcrumbs{
		Command: b.Command,
		Rest:    slices.Clone(b.Rest[:len(b.Rest)-1]),
	}
}

// Clone returns a deep copy that does not share storage with b.
func (b Breadcrumbs) Clone() Breadcrumbs {
	return Breadcrumbs{
		Command: b.Command,
		Rest:    slices.Clone(b.Rest),
	}
}

func (b Breadcrumbs) String() string {
	return strings.Join(b.Labels(), Separator)
}
