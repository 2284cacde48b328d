package support

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/embeddings"
	"github.com/timtadh/gspan/transaction"
	"github.com/timtadh/gspan/types/graph"
)

func step(from, to, fl, el, tl int) dfs.Step {
	return dfs.Step{FromTime: from, ToTime: to, FromLabel: fl, EdgeLabel: el, ToLabel: tl, Outgoing: true}
}

var (
	ab  = dfs.Code{step(0, 1, 0, 0, 1)}
	bc  = dfs.Code{step(0, 1, 1, 0, 2)}
	abc = ab.Extend(step(1, 2, 1, 0, 2))
)

func store(codes ...dfs.Code) *embeddings.Store {
	s := embeddings.New()
	for _, c := range codes {
		s.Add(c, dfs.NewEmbedding(0, 0, 1))
		s.Add(c, dfs.NewEmbedding(1, 0, 0))
	}
	return s
}

func TestMinCount(t *testing.T) {
	x := assert.New(t)
	x.Equal(2, MinCount(0.5, 4))
	x.Equal(2, MinCount(1.0, 2))
	x.Equal(1, MinCount(0.3, 3), "0.3*3 is 0.8999999999999999")
	x.Equal(3, MinCount(0.7, 4))
	x.Equal(1, MinCount(0.5, 0))
}

func TestCountsCountTransactions(t *testing.T) {
	x := assert.New(t)
	c := NewCounts()
	c.Report(store(ab, bc))
	c.Report(store(ab))
	x.Equal(2, c.Support(ab), "embeddings are not counted")
	x.Equal(1, c.Support(bc))
	x.Equal(0, c.Support(abc))
	x.Equal(2, c.Size())
}

func TestMergeIsOrderFree(t *testing.T) {
	x := assert.New(t)
	parts := []*Counts{NewCounts(), NewCounts(), NewCounts()}
	parts[0].Report(store(ab, bc))
	parts[1].Report(store(ab, abc))
	parts[2].Report(store(bc))

	left := NewCounts()
	for _, p := range parts {
		left.Merge(p)
	}
	right := NewCounts()
	for i := len(parts) - 1; i >= 0; i-- {
		right.Merge(parts[i])
	}
	x.Equal(left.Frequent(1).Patterns(), right.Frequent(1).Patterns())
	x.Equal(2, left.Support(ab))
	x.Equal(2, left.Support(bc))
	x.Equal(1, left.Support(abc))
}

func TestFrequent(t *testing.T) {
	x := assert.New(t)
	c := NewCounts()
	c.Add(ab, 3)
	c.Add(bc, 1)
	c.Add(abc, 2)
	f := c.Frequent(2)
	x.Equal(2, f.Size())
	x.True(f.Has(ab))
	x.False(f.Has(bc))
	x.Equal(2, f.Support(abc))
	c.Add(bc, 5)
	x.False(f.Has(bc), "the snapshot does not follow the counts")
	patterns := f.Patterns()
	x.Equal(2, len(patterns))
	x.True(patterns[0].Code.Equals(ab))
	x.True(patterns[1].Code.Equals(abc))
}

func TestPrune(t *testing.T) {
	x := assert.New(t)
	g := graph.New(1).AddVertex(1, "A").AddVertex(2, "B").AddEdge(0, 1, 2, "e")
	vertices, edges := dictionary.Build([]*graph.Graph{g}, 1)
	tx, err := (&transaction.Encoder{Vertices: vertices, Edges: edges}).Encode(g)
	x.Nil(err)
	tx.Embeddings = store(ab, bc)
	tx.Active = true

	c := NewCounts()
	c.Add(ab, 2)
	Prune(tx, c.Frequent(2))
	x.True(tx.Active)
	x.Equal(1, tx.Embeddings.Size())

	Prune(tx, NewCounts().Frequent(1))
	x.False(tx.Active)
	x.True(tx.Embeddings.Empty())
}

func TestCollectorOnlyGrows(t *testing.T) {
	x := assert.New(t)
	col := NewCollector()
	c := NewCounts()
	c.Add(ab, 4)
	col.Add(c.Frequent(2))
	c = NewCounts()
	c.Add(abc, 2)
	col.Add(c.Frequent(2))
	col.Add(NewCounts().Frequent(2))
	x.Equal(2, col.Size())
	x.True(col.Has(ab))
	x.Equal(4, col.Support(ab))
	x.Equal([]Supported{{ab, 4}, {abc, 2}}, col.Patterns())
}
