package traverse

// Params is the by-name parameter map threaded down through a traversal,
// scoped-augmented by IncidentalActions (§4.C).
type Params map[string]any

// Clone returns a shallow copy so a subtree's augmentation never leaks
// back up to the parent's map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Action is invoked for every visited Node whose Kind is in Options.Target.
type Action func(n Node, params Params)

// IncidentalAction fires when a Node of its associated Kind is entered,
// before its subtree is traversed. A non-nil returned map is merged into
// params for that subtree only (§4.C "scoped augmentation").
type IncidentalAction func(n Node, params Params) Params

// Options configures one traverse_top_down call (§4.C).
type Options struct {
	// Target selects which Kinds invoke Action.
	Target map[Kind]bool
	Action Action

	// Skip prunes descent: a Node whose Kind is in Skip is visited (and
	// may still match Target / fire an Incidental) but its children are
	// never enqueued.
	Skip map[Kind]bool

	// Incidental fires on matching ancestors; see IncidentalAction.
	Incidental map[Kind]IncidentalAction

	// Params seeds the top-level parameter map.
	Params Params
}

// TopDown performs a deterministic pre-order traversal of n and its
// descendants, invoking opts.Action on every visited Node whose Kind
// matches opts.Target, honoring opts.Skip and opts.Incidental exactly as
// specified in §4.C. Sibling order always matches IR source order
// (children() builds child lists in source order).
//
// The traversal is a plain recursive descent: Go's goroutine stacks grow
// on demand, so realistic expression/type nesting (thousands of levels)
// does not require the explicit-stack rewrite the reference implementation
// needs under a fixed interpreter recursion limit (§5, §9).
func TopDown(n Node, opts Options) {
	params := opts.Params
	if params == nil {
		params = Params{}
	}
	walk(n, opts, params)
}

func walk(n Node, opts Options, params Params) {
	if opts.Target[n.Kind] && opts.Action != nil {
		opts.Action(n, params)
	}

	if fn, ok := opts.Incidental[n.Kind]; ok && fn != nil {
		if extra := fn(n, params); extra != nil {
			augmented := params.Clone()
			for k, v := range extra {
				augmented[k] = v
			}
			params = augmented
		}
	}

	if opts.Skip[n.Kind] {
		return
	}

	for _, child := range children(n) {
		walk(child, opts, params)
	}
}

// Kinds is a small helper building a Kind set literal: Kinds(KindExpr,
// KindField) rather than map[Kind]bool{KindExpr: true, KindField: true}.
func Kinds(ks ...Kind) map[Kind]bool {
	out := make(map[Kind]bool, len(ks))
	for _, k := range ks {
		out[k] = true
	}
	return out
}
