package dfs

// patternGraph is the graph a code describes. Vertex ids are discovery
// times and edge ids are step indices.
type patternGraph struct {
	labels []int
	adj    [][]Neighbor
}

func newPatternGraph(c Code, directed bool) *patternGraph {
	labels := c.VertexLabels()
	pg := &patternGraph{
		labels: labels,
		adj:    make([][]Neighbor, len(labels)),
	}
	for i, s := range c {
		pg.adj[s.FromTime] = append(pg.adj[s.FromTime], Neighbor{
			Edge:      i,
			To:        s.ToTime,
			ToLabel:   s.ToLabel,
			EdgeLabel: s.EdgeLabel,
			Outgoing:  s.Outgoing,
		})
		pg.adj[s.ToTime] = append(pg.adj[s.ToTime], Neighbor{
			Edge:      i,
			To:        s.FromTime,
			ToLabel:   s.FromLabel,
			EdgeLabel: s.EdgeLabel,
			Outgoing:  !directed || !s.Outgoing,
		})
	}
	return pg
}

// PatternGraph is the graph c describes, ready to be searched.
func PatternGraph(c Code, directed bool) Graph {
	return newPatternGraph(c, directed)
}

func (pg *patternGraph) Label(v int) int {
	return pg.labels[v]
}

func (pg *patternGraph) Vertices() []int {
	vertices := make([]int, len(pg.labels))
	for i := range vertices {
		vertices[i] = i
	}
	return vertices
}

func (pg *patternGraph) Each(v int, do func(Neighbor)) {
	for _, n := range pg.adj[v] {
		do(n)
	}
}

// IsCanonical reports whether c is the minimum DFS code of the pattern it
// describes.
func IsCanonical(c Code, directed bool) bool {
	if len(c) == 0 {
		return true
	}
	_, ok := minimum(newPatternGraph(c, directed), c)
	return ok
}

// MinCode is the minimum DFS code of g. For a disconnected g it covers only
// the component holding the smallest edge.
func MinCode(g Graph) Code {
	c, _ := minimum(g, nil)
	return c
}

// minimum rebuilds the minimum code of g one step at a time by following
// every projection of the prefix into g. With a non-nil want it stops at the
// first position where want is not the smallest step.
func minimum(g Graph, want Code) (Code, bool) {
	var min Step
	found := false
	var projections []*Embedding
	Initial(g, func(s Step, from, edge, to int) {
		cmp := 0
		if found {
			cmp = CompareSteps(s, min)
		}
		if cmp > 0 {
			return
		} else if !found || cmp < 0 {
			min = s
			found = true
			projections = projections[:0]
		}
		projections = append(projections, NewEmbedding(from, edge, to))
	})
	if !found {
		return nil, len(want) == 0
	}
	if want != nil && min != want[0] {
		return nil, false
	}

	code := Code{min}
	for want == nil || len(code) < len(want) {
		found = false
		var next []*Embedding
		for _, emb := range projections {
			Extensions(g, code, emb, func(s Step, edge, vertex int) {
				cmp := 0
				if found {
					cmp = CompareSteps(s, min)
				}
				if cmp > 0 {
					return
				} else if !found || cmp < 0 {
					min = s
					found = true
					next = next[:0]
				}
				next = append(next, emb.Extend(edge, vertex))
			})
		}
		if !found {
			break
		}
		if want != nil && min != want[len(code)] {
			return nil, false
		}
		code = code.Extend(min)
		projections = next
	}
	if len(code) < len(want) {
		return nil, false
	}
	return code, true
}
