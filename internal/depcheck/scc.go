// Package depcheck implements component G (§4.G): building a
// name-level dependency graph over a module's fields, enum values and
// runtime parameters, finding cycles with Tarjan's algorithm, and
// topologically ordering each Structure's fields for later evaluation.
package depcheck

// Graph is a directed graph over any comparable node identity, used for
// both the field-level dependency graph and the module-import graph
// (§4.G: "detected identically on a separate graph"). Keeping Tarjan
// generic over node lets both callers share one implementation instead
// of duplicating it per node type.
type Graph[N comparable] struct {
	nodes []N
	seen  map[N]bool
	edges map[N][]N
}

// NewGraph returns an empty graph.
func NewGraph[N comparable]() *Graph[N] {
	return &Graph[N]{seen: map[N]bool{}, edges: map[N][]N{}}
}

// AddNode registers n, if not already present, with no outgoing edges.
func (g *Graph[N]) AddNode(n N) {
	if !g.seen[n] {
		g.seen[n] = true
		g.nodes = append(g.nodes, n)
	}
}

// AddEdge adds a from -> to edge, registering both endpoints first.
func (g *Graph[N]) AddEdge(from, to N) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges[from] = append(g.edges[from], to)
}

// SCCs computes strongly-connected components via Tarjan's algorithm,
// iteratively (explicit stack) rather than recursively, per §4.G's
// warning that a single module's dependency graph may recurse
// thousands of frames deep. Each returned component lists its members
// in the order Tarjan pops them off its stack; callers that need a
// deterministic rendering order (§4.G: "lexicographically smallest
// node as primary") sort independently.
func (g *Graph[N]) SCCs() [][]N {
	type frame struct {
		node    N
		edgeIdx int
	}

	index := 0
	indices := make(map[N]int, len(g.nodes))
	lowlink := make(map[N]int, len(g.nodes))
	onStack := make(map[N]bool, len(g.nodes))
	var tstack []N
	var sccs [][]N

	for _, root := range g.nodes {
		if _, ok := indices[root]; ok {
			continue
		}
		var work []frame
		work = append(work, frame{node: root})
		indices[root] = index
		lowlink[root] = index
		index++
		tstack = append(tstack, root)
		onStack[root] = true

		for len(work) > 0 {
			top := &work[len(work)-1]
			v := top.node
			succs := g.edges[v]
			if top.edgeIdx < len(succs) {
				w := succs[top.edgeIdx]
				top.edgeIdx++
				if _, ok := indices[w]; !ok {
					indices[w] = index
					lowlink[w] = index
					index++
					tstack = append(tstack, w)
					onStack[w] = true
					work = append(work, frame{node: w})
				} else if onStack[w] {
					if indices[w] < lowlink[v] {
						lowlink[v] = indices[w]
					}
				}
				continue
			}
			// v's successors are exhausted: pop it, propagating its
			// lowlink to whoever pushed it (if anyone).
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := &work[len(work)-1]
				if lowlink[v] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[v]
				}
			}
			if lowlink[v] == indices[v] {
				var scc []N
				for {
					n := len(tstack) - 1
					w := tstack[n]
					tstack = tstack[:n]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				sccs = append(sccs, scc)
			}
		}
	}
	return sccs
}

// HasSelfEdge reports whether n has an edge to itself — the condition
// that makes a singleton component "nontrivial" (§4.G).
func (g *Graph[N]) HasSelfEdge(n N) bool {
	for _, to := range g.edges[n] {
		if to == n {
			return true
		}
	}
	return false
}
