package palette

// Navigator owns the current breadcrumb path and the per-command table of
// most-recently-used completion paths. It is mutated only from the
// controller's thread of execution and performs no synchronization itself.
type Navigator struct {
	mru     map[string]Breadcrumbs
	current Breadcrumbs
}

// NewNavigator creates a [Navigator] with an empty path and MRU table.
func NewNavigator() *Navigator {
	return &Navigator{
		mru: make(map[string]Breadcrumbs),
	}
}

// Path returns a copy of the current breadcrumb path.
func (n *Navigator) Path() Breadcrumbs {
	return n.current.Clone()
}

// Empty reports whether the current path has no labels.
func (n *Navigator) Empty() bool {
	return n.current.Empty()
}

// Push appends a chosen label to the current path.
func (n *Navigator) Push(label string) {
	if n.current.Empty() {
		// Pushing onto an empty path starts a new one; the controller uses
		// Start for this so the MRU table can be consulted.
		n.current = Breadcrumbs{Command: label}

		return
	}

	n.current.Rest = append(n.current.Rest, label)
}

// Pop removes and returns the last label. The second return value is false
// when the path was already empty; callers reaching an empty path must treat
// it as a return to the top-level listing.
func (n *Navigator) Pop() (string, bool) {
	if n.current.Empty() {
		return "", false
	}

	label := n.current.Last()
	if len(n.current.Rest) > 0 {
		n.current.Rest = n.current.Rest[:len(n.current.Rest)-1]
	} else {
		n.current = Breadcrumbs{}
	}

	return label, true
}

// Start begins a path for the named command. If the current path is empty and
// an MRU entry exists for the name, the saved path replaces the current one
// and the entry is removed, so a single replay cannot trap the user in a
// review loop. Otherwise the path becomes just the command name.
func (n *Navigator) Start(name string) {
	if n.current.Empty() {
		if saved, ok := n.mru[name]; ok {
			delete(n.mru, name)

			if !saved.Empty() {
				n.current = saved.Clone()

				return
			}
		}
	}

	n.current = Breadcrumbs{Command: name}
}

// SaveMRU records the completion path for its command, minus the final chosen
// leaf, so the next invocation resumes one level short of automatic
// re-completion. A depth-one completion stores an empty remainder, which
// Start treats the same as a fresh start.
func (n *Navigator) SaveMRU(path Breadcrumbs) {
	if path.Empty() {
		return
	}

	n.mru[path.Command] = path.Parent()
}

// MRU returns the saved path for a command name without consuming it.
func (n *Navigator) MRU(name string) (Breadcrumbs, bool) {
	saved, ok := n.mru[name]

	return saved.Clone(), ok
}

// Reset clears the current path. The MRU table is preserved.
func (n *Navigator) Reset() {
	n.current = Breadcrumbs{}
}
