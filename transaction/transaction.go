package transaction

import (
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/embeddings"
)

type AdjacencyListEntry struct {
	EdgeId        int
	ToVertexId    int
	ToVertexLabel int
	EdgeLabel     int
	Outgoing      bool
}

// AdjacencyList is kept sorted by edge label then target label so extension
// enumeration is deterministic.
type AdjacencyList []AdjacencyListEntry

func (l AdjacencyList) Len() int      { return len(l) }
func (l AdjacencyList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l AdjacencyList) Less(i, j int) bool {
	a, b := l[i], l[j]
	if a.EdgeLabel != b.EdgeLabel {
		return a.EdgeLabel < b.EdgeLabel
	} else if a.ToVertexLabel != b.ToVertexLabel {
		return a.ToVertexLabel < b.ToVertexLabel
	} else if a.Outgoing != b.Outgoing {
		return a.Outgoing
	} else if a.ToVertexId != b.ToVertexId {
		return a.ToVertexId < b.ToVertexId
	}
	return a.EdgeId < b.EdgeId
}

// Transaction is the mining state of one input graph. Embeddings holds the
// current frontier and Active is true while it is not empty.
type Transaction struct {
	Id           int
	Adjacency    map[int]AdjacencyList
	VertexLabels map[int]int
	Embeddings   *embeddings.Store
	Active       bool
	vertices     []int
	edges        int
}

func newTransaction(id int) *Transaction {
	return &Transaction{
		Id:           id,
		Adjacency:    make(map[int]AdjacencyList),
		VertexLabels: make(map[int]int),
		Embeddings:   embeddings.New(),
	}
}

func (t *Transaction) Label(vertex int) int {
	return t.VertexLabels[vertex]
}

// Vertices lists vertex ids in ascending order.
func (t *Transaction) Vertices() []int {
	return t.vertices
}

func (t *Transaction) Each(vertex int, do func(dfs.Neighbor)) {
	for _, e := range t.Adjacency[vertex] {
		do(dfs.Neighbor{
			Edge:      e.EdgeId,
			To:        e.ToVertexId,
			ToLabel:   e.ToVertexLabel,
			EdgeLabel: e.EdgeLabel,
			Outgoing:  e.Outgoing,
		})
	}
}

func (t *Transaction) EdgeCount() int {
	return t.edges
}

// Deactivate drops the frontier once nothing can grow any more.
func (t *Transaction) Deactivate() {
	t.Embeddings = embeddings.New()
	t.Active = false
}

func (t *Transaction) String() string {
	var lines []string
	for _, v := range t.vertices {
		var adj []string
		for _, e := range t.Adjacency[v] {
			arrow := "->"
			if !e.Outgoing {
				arrow = "<-"
			}
			adj = append(adj, fmt.Sprintf("%v%v%v", arrow, e.EdgeLabel, e.ToVertexId))
		}
		lines = append(lines, fmt.Sprintf("%d:%d [%v]", v, t.VertexLabels[v], strings.Join(adj, " ")))
	}
	return fmt.Sprintf("tx %d {%v}", t.Id, strings.Join(lines, ", "))
}

func (t *Transaction) finish() {
	t.vertices = make([]int, 0, len(t.VertexLabels))
	for v := range t.VertexLabels {
		t.vertices = append(t.vertices, v)
	}
	sort.Ints(t.vertices)
	for _, adj := range t.Adjacency {
		sort.Sort(adj)
	}
}
