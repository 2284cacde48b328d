package dfs

import (
	"fmt"
)

// Embedding realizes a code in one graph. Vertices maps discovery times to
// vertex ids and Edges maps step indices to edge ids.
type Embedding struct {
	Vertices []int
	Edges    []int
}

func NewEmbedding(from, edge, to int) *Embedding {
	return &Embedding{
		Vertices: []int{from, to},
		Edges:    []int{edge},
	}
}

// Extend copies the embedding and appends an edge. vertex is the newly
// discovered vertex of a forward step or -1 for a backward step.
func (e *Embedding) Extend(edge, vertex int) *Embedding {
	vertices := make([]int, len(e.Vertices), len(e.Vertices)+1)
	copy(vertices, e.Vertices)
	if vertex >= 0 {
		vertices = append(vertices, vertex)
	}
	edges := make([]int, len(e.Edges), len(e.Edges)+1)
	copy(edges, e.Edges)
	edges = append(edges, edge)
	return &Embedding{
		Vertices: vertices,
		Edges:    edges,
	}
}

func (e *Embedding) HasEdge(edge int) bool {
	for _, x := range e.Edges {
		if x == edge {
			return true
		}
	}
	return false
}

// TimeOf returns the discovery time of vertex or -1 if it is not mapped.
func (e *Embedding) TimeOf(vertex int) int {
	for t, v := range e.Vertices {
		if v == vertex {
			return t
		}
	}
	return -1
}

func (e *Embedding) Equals(o *Embedding) bool {
	if len(e.Vertices) != len(o.Vertices) || len(e.Edges) != len(o.Edges) {
		return false
	}
	for i := range e.Vertices {
		if e.Vertices[i] != o.Vertices[i] {
			return false
		}
	}
	for i := range e.Edges {
		if e.Edges[i] != o.Edges[i] {
			return false
		}
	}
	return true
}

func (e *Embedding) String() string {
	return fmt.Sprintf("<vertices %v edges %v>", e.Vertices, e.Edges)
}
