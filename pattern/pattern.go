package pattern

import (
	"fmt"
)

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/support"
	"github.com/timtadh/gspan/types/graph"
)

// Pattern is a mined code with its labels restored. The vertex ids of Graph
// are discovery times and the edge ids are step indices.
type Pattern struct {
	Code     dfs.Code
	Support  int
	Directed bool
	Graph    *graph.Graph
}

// Decode turns a supported code back into a labeled graph. An incoming step
// is an edge from its to vertex to its from vertex.
func Decode(p support.Supported, vertices, edges *dictionary.Dictionary, directed bool) *Pattern {
	g := graph.New(0)
	for t, label := range p.Code.VertexLabels() {
		g.AddVertex(t, vertices.Label(label))
	}
	for i, s := range p.Code {
		if s.Outgoing {
			g.AddEdge(i, s.FromTime, s.ToTime, edges.Label(s.EdgeLabel))
		} else {
			g.AddEdge(i, s.ToTime, s.FromTime, edges.Label(s.EdgeLabel))
		}
	}
	return &Pattern{
		Code:     p.Code,
		Support:  p.Support,
		Directed: directed,
		Graph:    g,
	}
}

// DecodeAll decodes patterns in order and numbers their graphs from 1.
func DecodeAll(patterns []support.Supported, vertices, edges *dictionary.Dictionary, directed bool) []*Pattern {
	decoded := make([]*Pattern, 0, len(patterns))
	for i, p := range patterns {
		d := Decode(p, vertices, edges, directed)
		d.Graph.Id = i + 1
		decoded = append(decoded, d)
	}
	return decoded
}

// Name is edges:vertices.
func (p *Pattern) Name() string {
	return fmt.Sprintf("%d:%d", len(p.Graph.E), len(p.Graph.V))
}

func (p *Pattern) String() string {
	return fmt.Sprintf("%v support %d %v", p.Name(), p.Support, p.Code)
}
