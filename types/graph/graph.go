package graph

import (
	"fmt"
	"strings"
)

type Vertex struct {
	Id    int
	Label string
}

// Edge connects the vertices with ids Src and Targ. For undirected mining
// the order of Src and Targ carries no meaning.
type Edge struct {
	Id        int
	Src, Targ int
	Label     string
}

// Graph is one labeled input graph (a transaction). Invalid holds the first
// problem found while reading it. Invalid graphs still count towards the
// size of the collection but are never mined.
type Graph struct {
	Id      int
	V       []Vertex
	E       []Edge
	Invalid error
}

func New(id int) *Graph {
	return &Graph{Id: id}
}

func (g *Graph) AddVertex(id int, label string) *Graph {
	g.V = append(g.V, Vertex{Id: id, Label: label})
	return g
}

func (g *Graph) AddEdge(id, src, targ int, label string) *Graph {
	g.E = append(g.E, Edge{Id: id, Src: src, Targ: targ, Label: label})
	return g
}

func (g *Graph) invalidate(err error) {
	if g.Invalid == nil {
		g.Invalid = err
	}
}

func (g *Graph) String() string {
	V := make([]string, 0, len(g.V))
	E := make([]string, 0, len(g.E))
	for _, v := range g.V {
		V = append(V, fmt.Sprintf("%d:%v", v.Id, v.Label))
	}
	for _, e := range g.E {
		E = append(E, fmt.Sprintf("%d-%v->%d", e.Src, e.Label, e.Targ))
	}
	return fmt.Sprintf("graph %d {%v; %v}", g.Id, strings.Join(V, ", "), strings.Join(E, ", "))
}
