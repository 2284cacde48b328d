package dfs

// Graph is what extension enumeration needs to know about a labeled graph.
// Neighbors must be visited in a deterministic order.
type Graph interface {
	Label(vertex int) int
	Vertices() []int
	Each(vertex int, do func(Neighbor))
}

// Neighbor is one incident edge seen from a vertex. Outgoing is true when the
// edge points away from that vertex (always true for undirected graphs).
type Neighbor struct {
	Edge      int
	To        int
	ToLabel   int
	EdgeLabel int
	Outgoing  bool
}

// Initial calls do with the 1-edge step of every incident edge of every
// vertex. Undirected edges are seen once from each endpoint.
func Initial(g Graph, do func(s Step, from, edge, to int)) {
	for _, v := range g.Vertices() {
		label := g.Label(v)
		g.Each(v, func(n Neighbor) {
			if n.To == v {
				return
			}
			s := Step{
				FromTime:  0,
				ToTime:    1,
				FromLabel: label,
				EdgeLabel: n.EdgeLabel,
				ToLabel:   n.ToLabel,
				Outgoing:  n.Outgoing,
			}
			do(s, v, n.Edge, n.To)
		})
	}
}

// Extensions calls do with every rightmost extension of emb, an embedding of
// c in g. Backward steps leave the rightmost vertex for a vertex on the
// rightmost path and are passed vertex == -1. Forward steps leave a vertex on
// the rightmost path for a vertex emb does not map yet.
func Extensions(g Graph, c Code, emb *Embedding, do func(s Step, edge, vertex int)) {
	if len(c) == 0 {
		return
	}
	path := c.RightmostPath()
	r := path[0]
	onPath := make(map[int]bool, len(path))
	for _, t := range path {
		onPath[t] = true
	}

	rv := emb.Vertices[r]
	rl := g.Label(rv)
	g.Each(rv, func(n Neighbor) {
		if emb.HasEdge(n.Edge) {
			return
		}
		t := emb.TimeOf(n.To)
		if t < 0 || t == r || !onPath[t] {
			return
		}
		s := Step{
			FromTime:  r,
			ToTime:    t,
			FromLabel: rl,
			EdgeLabel: n.EdgeLabel,
			ToLabel:   n.ToLabel,
			Outgoing:  n.Outgoing,
		}
		do(s, n.Edge, -1)
	})

	next := r + 1
	for _, t := range path {
		v := emb.Vertices[t]
		l := g.Label(v)
		g.Each(v, func(n Neighbor) {
			if emb.TimeOf(n.To) >= 0 {
				return
			}
			s := Step{
				FromTime:  t,
				ToTime:    next,
				FromLabel: l,
				EdgeLabel: n.EdgeLabel,
				ToLabel:   n.ToLabel,
				Outgoing:  n.Outgoing,
			}
			do(s, n.Edge, n.To)
		})
	}
}
