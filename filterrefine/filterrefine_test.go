package filterrefine

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"context"
	"fmt"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/mine"
	"github.com/timtadh/gspan/transaction"
	"github.com/timtadh/gspan/types/graph"
)

func conf(minSupport float64, partitions int) *config.Config {
	c := config.Default()
	c.MinSupport = minSupport
	c.Partitions = partitions
	c.Parallelism = 2
	return c
}

func step(from, to, fl, el, tl int) dfs.Step {
	return dfs.Step{FromTime: from, ToTime: to, FromLabel: fl, EdgeLabel: el, ToLabel: tl, Outgoing: true}
}

func code(fl, tl int) dfs.Compressed {
	return dfs.Compress(dfs.Code{step(0, 1, fl, 0, tl)})
}

func collection() []*graph.Graph {
	labels := []string{"A", "B", "C"}
	var graphs []*graph.Graph
	for i := 0; i < 11; i++ {
		g := graph.New(i)
		for v := 0; v < 5; v++ {
			g.AddVertex(v, labels[(v*(i+1))%len(labels)])
		}
		for v := 0; v < 4; v++ {
			g.AddEdge(v, v, v+1, labels[(v+i)%2])
		}
		g.AddEdge(4, 0, 2+i%3, "e")
		if i%4 == 0 {
			g.AddEdge(5, 4, 1, "a")
		}
		graphs = append(graphs, g)
	}
	graphs = append(graphs, graph.New(11).AddVertex(1, "A").AddEdge(0, 1, 2, "a"))
	return graphs
}

func format(r *mine.Result) []string {
	var lines []string
	for _, p := range r.Patterns {
		lines = append(lines, fmt.Sprintf("%v %d", p.Code, p.Support))
	}
	return lines
}

func TestPartition(t *testing.T) {
	x := assert.New(t)
	graphs := collection()[:5]
	parts := Partition(graphs, 2)
	x.Equal(2, len(parts))
	x.Equal([]*graph.Graph{graphs[0], graphs[2], graphs[4]}, parts[0])
	x.Equal([]*graph.Graph{graphs[1], graphs[3]}, parts[1])
	x.Equal(1, len(Partition(graphs, 0)))
	x.Equal(0, len(Partition(graphs, 9)[7]))
}

func TestGroup(t *testing.T) {
	x := assert.New(t)
	reports := []Report{
		{Worker: 0, Code: code(0, 1), Support: 3, Frequent: true},
		{Worker: 1, Code: code(0, 1), Support: 1},
		{Worker: 1, Code: code(0, 1), Support: 1},
		{Worker: 2, Code: code(1, 1), Support: 2},
	}
	cands := Group(reports, 3)
	x.Equal(2, len(cands))
	x.True(cands[0].Code.Equals(code(0, 1)))
	x.Equal(4, cands[0].Support, "a worker is counted once")
	x.True(cands[0].Frequent)
	x.Equal(uint(2), cands[0].Reported.Count())
	x.False(cands[1].Frequent)
}

func TestClassify(t *testing.T) {
	x := assert.New(t)
	sizes := []int{4, 4, 2}
	reports := []Report{
		// reported everywhere, 6 >= 5
		{Worker: 0, Code: code(0, 0), Support: 3, Frequent: true},
		{Worker: 1, Code: code(0, 0), Support: 2, Frequent: true},
		{Worker: 2, Code: code(0, 0), Support: 1},
		// reported everywhere, 4 < 5
		{Worker: 0, Code: code(0, 1), Support: 2, Frequent: true},
		{Worker: 1, Code: code(0, 1), Support: 1},
		{Worker: 2, Code: code(0, 1), Support: 1, Frequent: true},
		// 3 + 0.5*4 + 0.5*2 = 6 >= 5
		{Worker: 0, Code: code(1, 1), Support: 3, Frequent: true},
		// never locally frequent
		{Worker: 0, Code: code(1, 2), Support: 1},
		{Worker: 1, Code: code(1, 2), Support: 1},
		// 2 + 1 + 0.5*4 = 5 >= 5
		{Worker: 1, Code: code(2, 2), Support: 2, Frequent: true},
		{Worker: 2, Code: code(2, 2), Support: 1},
		// 1 + 0 + 0.5*4 = 3 < 5
		{Worker: 2, Code: code(0, 2), Support: 1, Frequent: true},
		{Worker: 1, Code: code(0, 2), Support: 0},
	}
	cls := Classify(Group(reports, 3), sizes, 0.5, 5)
	x.Equal(1, len(cls.Complete))
	x.True(cls.Complete[0].Code.Equals(code(0, 0)))
	x.Equal(6, cls.Complete[0].Support)

	x.Equal(2, len(cls.Incomplete))
	x.True(cls.Incomplete[0].Code.Equals(code(1, 1)))
	x.Equal(6.0, cls.Incomplete[0].Estimate)
	x.True(cls.Incomplete[1].Code.Equals(code(2, 2)))
	x.Equal(5.0, cls.Incomplete[1].Estimate)

	x.Equal(3, cls.Dropped)
	x.Equal([]dfs.Compressed{code(2, 2)}, cls.Refine[0])
	x.Equal([]dfs.Compressed{code(1, 1)}, cls.Refine[1])
	x.Equal([]dfs.Compressed{code(1, 1)}, cls.Refine[2])
}

func TestRefine(t *testing.T) {
	x := assert.New(t)
	graphs := []*graph.Graph{
		graph.New(1).AddVertex(1, "A").AddVertex(2, "B").AddEdge(0, 1, 2, "e"),
		graph.New(2).AddVertex(1, "A").AddVertex(2, "B").AddEdge(0, 1, 2, "e"),
		graph.New(3).AddVertex(1, "B").AddVertex(2, "B").AddEdge(0, 1, 2, "e"),
	}
	vertices, edges := dictionary.Build(graphs, 1)
	enc := &transaction.Encoder{Vertices: vertices, Edges: edges}
	decoder, err := dfs.NewDecoder(16)
	x.Nil(err)
	w, err := NewWorker(0, conf(0.5, 1), enc, decoder, graphs)
	x.Nil(err)
	x.Equal(3, w.Size)
	x.Equal("B", vertices.Label(0), "B is the most common label")

	reports, err := w.Refine(context.Background(), []dfs.Compressed{
		code(0, 1),
		code(0, 0),
		dfs.Compressed{9, 9},
		code(1, 1),
	})
	x.Nil(err)
	x.Equal(3, len(reports), "the corrupt code is skipped")
	x.Equal(2, reports[0].Support)
	x.Equal(1, reports[1].Support)
	x.Equal(0, reports[2].Support)
}

func TestDecodeUnknownLabels(t *testing.T) {
	x := assert.New(t)
	graphs := []*graph.Graph{
		graph.New(1).AddVertex(1, "A").AddVertex(2, "B").AddEdge(0, 1, 2, "e"),
	}
	vertices, edges := dictionary.Build(graphs, 1)
	ds := &mine.Dataset{Graphs: 1, MinCount: 1, Vertices: vertices, Edges: edges}
	coord, err := NewCoordinator(conf(1, 1))
	x.Nil(err)
	ps := coord.decode(ds, nil, code(0, 1), 1)
	ps = coord.decode(ds, ps, code(0, 2), 1)
	ps = coord.decode(ds, ps, dfs.Compress(dfs.Code{step(0, 1, 0, 1, 1)}), 1)
	ps = coord.decode(ds, ps, dfs.Compressed{9, 9}, 1)
	x.Equal(1, len(ps), "only the code with known labels is kept")
	x.True(ps[0].Code.Equals(dfs.Code{step(0, 1, 0, 0, 1)}))
}

// paths is a collection where every graph holds the path A-B-C and most
// hold a little more.
func paths() []*graph.Graph {
	var graphs []*graph.Graph
	for i := 0; i < 10; i++ {
		g := graph.New(i).
			AddVertex(1, "A").AddVertex(2, "B").AddVertex(3, "C").
			AddEdge(0, 1, 2, "e").AddEdge(1, 2, 3, "e")
		if i%5 != 0 {
			g.AddVertex(4, "A").AddEdge(2, 3, 4, "f")
		}
		graphs = append(graphs, g)
	}
	return graphs
}

func TestEquivalence(t *testing.T) {
	x := assert.New(t)
	cases := []struct {
		graphs   []*graph.Graph
		supports []float64
	}{
		{collection(), []float64{0.1, 0.2, 0.35, 0.5}},
		{paths(), []float64{0.5, 0.8, 0.9, 1.0}},
	}
	for _, cs := range cases {
		for _, minSupport := range cs.supports {
			equivalent(x, cs.graphs, minSupport)
		}
	}
}

// equivalent checks that every partitioning finds what the iterative miner
// finds on the whole collection.
func equivalent(x *assert.Assertions, graphs []*graph.Graph, minSupport float64) {
	m, err := mine.NewMiner(conf(minSupport, 1))
	x.Nil(err)
	expected, err := m.Mine(context.Background(), graphs)
	x.Nil(err)
	x.True(len(expected.Patterns) > 0, "support %v finds patterns", minSupport)
	for _, partitions := range []int{1, 2, 3, 5, 16} {
		for _, likeliness := range []float64{0, 0.05, 1} {
			c := conf(minSupport, partitions)
			c.Likeliness = likeliness
			coord, err := NewCoordinator(c)
			x.Nil(err)
			got, err := coord.Mine(context.Background(), graphs)
			x.Nil(err)
			x.Equal(expected.MinCount, got.MinCount)
			x.Equal(format(expected), format(got),
				"support %v partitions %v likeliness %v", minSupport, partitions, likeliness)
		}
	}
}

func TestEquivalenceUnevenPartitions(t *testing.T) {
	x := assert.New(t)
	graphs := collection()
	m, err := mine.NewMiner(conf(0.3, 1))
	x.Nil(err)
	expected, err := m.Mine(context.Background(), graphs)
	x.Nil(err)
	coord, err := NewCoordinator(conf(0.3, 1))
	x.Nil(err)
	parts := [][]*graph.Graph{graphs[:1], graphs[1:2], graphs[2:], nil}
	got, err := coord.MinePartitions(context.Background(), parts)
	x.Nil(err)
	x.Equal(format(expected), format(got))
}

func TestCancelled(t *testing.T) {
	x := assert.New(t)
	coord, err := NewCoordinator(conf(0.3, 3))
	x.Nil(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = coord.Mine(ctx, collection())
	x.Equal(context.Canceled, err)
}
