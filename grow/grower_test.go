package grow

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/transaction"
	"github.com/timtadh/gspan/types/graph"
)

func encode(t *testing.T, directed bool, g *graph.Graph) *transaction.Transaction {
	vertices, edges := dictionary.Build([]*graph.Graph{g}, 1)
	enc := &transaction.Encoder{Vertices: vertices, Edges: edges, Directed: directed}
	tx, err := enc.Encode(g)
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

func grower(t *testing.T, directed bool) *Grower {
	g, err := New(directed, 128)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func path() *graph.Graph {
	return graph.New(1).
		AddVertex(1, "A").AddVertex(2, "B").AddVertex(3, "C").
		AddEdge(0, 1, 2, "e").AddEdge(1, 2, 3, "e")
}

func triangle() *graph.Graph {
	return graph.New(2).
		AddVertex(1, "A").AddVertex(2, "A").AddVertex(3, "A").
		AddEdge(0, 1, 2, "e").AddEdge(1, 2, 3, "e").AddEdge(2, 3, 1, "e")
}

func step(from, to, fl, el, tl int) dfs.Step {
	return dfs.Step{FromTime: from, ToTime: to, FromLabel: fl, EdgeLabel: el, ToLabel: tl, Outgoing: true}
}

func TestInitialKeepsCanonicalCodes(t *testing.T) {
	x := assert.New(t)
	tx := encode(t, false, path())
	store := grower(t, false).Initial(tx)
	codes := store.Codes()
	x.Equal(2, len(codes))
	x.True(codes[0].Equals(dfs.Code{step(0, 1, 0, 0, 1)}))
	x.True(codes[1].Equals(dfs.Code{step(0, 1, 1, 0, 2)}))
	x.Equal(1, len(store.Get(codes[0])))
}

func TestGrowPath(t *testing.T) {
	x := assert.New(t)
	tx := encode(t, false, path())
	g := grower(t, false)
	kids := g.Grow(tx, g.Initial(tx))
	x.Equal(1, kids.Size())
	c := dfs.Code{step(0, 1, 0, 0, 1), step(1, 2, 1, 0, 2)}
	x.True(kids.Has(c))
	embs := kids.Get(c)
	x.Equal(1, len(embs))
	x.Equal([]int{1, 2, 3}, embs[0].Vertices)
	x.True(g.Grow(tx, kids).Empty())
}

func TestGrowTriangle(t *testing.T) {
	x := assert.New(t)
	tx := encode(t, false, triangle())
	g := grower(t, false)
	level := g.Initial(tx)
	x.Equal(1, level.Size())
	x.Equal(6, len(level.Get(dfs.Code{step(0, 1, 0, 0, 0)})))

	level = g.Grow(tx, level)
	x.Equal(1, level.Size())
	x.Equal(6, len(level.Get(dfs.Code{step(0, 1, 0, 0, 0), step(1, 2, 0, 0, 0)})))

	level = g.Grow(tx, level)
	x.Equal(1, level.Size())
	tri := dfs.Code{step(0, 1, 0, 0, 0), step(1, 2, 0, 0, 0), step(2, 0, 0, 0, 0)}
	x.True(level.Has(tri))
	x.Equal(6, len(level.Get(tri)))

	x.True(g.Grow(tx, level).Empty())
	x.True(g.canon.Len() > 0)
}

func TestGrowDirected(t *testing.T) {
	x := assert.New(t)
	// B <- A -> B
	fork := graph.New(3).
		AddVertex(1, "A").AddVertex(2, "B").AddVertex(3, "B").
		AddEdge(0, 1, 2, "e").AddEdge(1, 1, 3, "e")
	tx := encode(t, true, fork)
	g := grower(t, true)
	level := g.Initial(tx)
	x.Equal(1, level.Size())
	x.Equal(2, len(level.Get(dfs.Code{step(0, 1, 0, 0, 1)})))
	level = g.Grow(tx, level)
	x.Equal(1, level.Size())
	x.True(level.Has(dfs.Code{step(0, 1, 0, 0, 1), step(0, 2, 0, 0, 1)}))
}

func TestSupports(t *testing.T) {
	x := assert.New(t)
	g := grower(t, false)
	tri := dfs.Code{step(0, 1, 0, 0, 0), step(1, 2, 0, 0, 0), step(2, 0, 0, 0, 0)}
	x.True(g.Supports(encode(t, false, triangle()), tri))
	x.Equal(6, len(g.Embeddings(encode(t, false, triangle()), tri)))
	x.False(g.Supports(encode(t, false, path()), tri))
	x.True(g.Supports(encode(t, false, path()), dfs.Code{step(0, 1, 0, 0, 1), step(1, 2, 1, 0, 2)}))
	x.False(g.Supports(encode(t, false, path()), dfs.Code{}))
}
