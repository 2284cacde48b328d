package mine

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"context"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/support"
	"github.com/timtadh/gspan/types/graph"
)

func conf(minSupport float64) *config.Config {
	c := config.Default()
	c.MinSupport = minSupport
	c.Parallelism = 2
	return c
}

func mine(t *testing.T, c *config.Config, graphs ...*graph.Graph) *Result {
	m, err := NewMiner(c)
	if err != nil {
		t.Fatal(err)
	}
	r, err := m.Mine(context.Background(), graphs)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func step(from, to, fl, el, tl int) dfs.Step {
	return dfs.Step{FromTime: from, ToTime: to, FromLabel: fl, EdgeLabel: el, ToLabel: tl, Outgoing: true}
}

func single(id int) *graph.Graph {
	return graph.New(id).AddVertex(1, "A").AddVertex(2, "B").AddEdge(0, 1, 2, "e")
}

func triangle(id int) *graph.Graph {
	return graph.New(id).
		AddVertex(1, "A").AddVertex(2, "A").AddVertex(3, "A").
		AddEdge(0, 1, 2, "e").AddEdge(1, 2, 3, "e").AddEdge(2, 3, 1, "e")
}

func TestSingleEdgeScenario(t *testing.T) {
	for _, directed := range []bool{false, true} {
		x := assert.New(t)
		c := conf(0.5)
		c.Directed = directed
		r := mine(t, c, single(1), single(2), single(3), single(4))
		x.Equal(2, r.MinCount)
		x.Equal(1, len(r.Patterns))
		x.True(r.Patterns[0].Code.Equals(dfs.Code{step(0, 1, 0, 0, 1)}))
		x.Equal(4, r.Patterns[0].Support)
		x.Equal("A", r.Vertices.Label(0))
		x.Equal("e", r.Edges.Label(0))
	}
}

func TestPathScenario(t *testing.T) {
	x := assert.New(t)
	path := graph.New(1).
		AddVertex(1, "A").AddVertex(2, "B").AddVertex(3, "C").
		AddEdge(0, 1, 2, "e").AddEdge(1, 2, 3, "e")
	r := mine(t, conf(1.0), path, single(2))
	x.Equal(2, r.MinCount)
	x.Equal(1, len(r.Patterns))
	x.True(r.Patterns[0].Code.Equals(dfs.Code{step(0, 1, 0, 0, 1)}))
	x.Equal(2, r.Patterns[0].Support)

	r = mine(t, conf(0.5), path, single(2))
	x.Equal(3, len(r.Patterns))
	x.Equal(2, r.Patterns[0].Support)
	x.Equal(2, len(r.Patterns[1].Code))
	x.Equal(1, r.Patterns[1].Support)
}

func TestMultiGraphScenario(t *testing.T) {
	for _, directed := range []bool{false, true} {
		x := assert.New(t)
		parallel := graph.New(1).
			AddVertex(1, "A").AddVertex(2, "B").
			AddEdge(0, 1, 2, "e").AddEdge(1, 1, 2, "e").AddEdge(2, 2, 2, "e")

		c := conf(1.0)
		c.Directed = directed
		c.MultiGraph = true
		r := mine(t, c, parallel)
		x.Equal(2, len(r.Patterns), "two parallel edges are two edges")
		back := dfs.Step{FromTime: 1, ToTime: 0, FromLabel: 1, EdgeLabel: 0, ToLabel: 0, Outgoing: !directed}
		x.True(r.Patterns[1].Code.Equals(dfs.Code{step(0, 1, 0, 0, 1), back}))
		x.Equal(1, r.Patterns[1].Support)

		c.MultiGraph = false
		r = mine(t, c, parallel)
		x.Equal(1, len(r.Patterns), "parallel edges collapse")
	}
}

func TestTriangle(t *testing.T) {
	x := assert.New(t)
	r := mine(t, conf(1.0), triangle(1))
	x.Equal(3, len(r.Patterns))
	x.True(r.Patterns[2].Code.Equals(dfs.Code{
		step(0, 1, 0, 0, 0),
		step(1, 2, 0, 0, 0),
		step(2, 0, 0, 0, 0),
	}))
}

func TestMaxEdges(t *testing.T) {
	x := assert.New(t)
	for max := 0; max <= 4; max++ {
		c := conf(1.0)
		c.MaxEdges = max
		r := mine(t, c, triangle(1))
		expected := max
		if expected > 3 {
			expected = 3
		}
		x.Equal(expected, len(r.Patterns))
		for _, p := range r.Patterns {
			x.True(len(p.Code) <= max)
		}
	}
}

func TestMinEdges(t *testing.T) {
	x := assert.New(t)
	c := conf(1.0)
	c.MinEdges = 2
	r := mine(t, c, triangle(1))
	x.Equal(2, len(r.Patterns))
	for _, p := range r.Patterns {
		x.True(len(p.Code) >= 2)
	}
}

func TestSkippedGraphsCount(t *testing.T) {
	x := assert.New(t)
	dangling := func(id int) *graph.Graph {
		return graph.New(id).AddVertex(1, "A").AddEdge(0, 1, 5, "e")
	}
	graphs := []*graph.Graph{single(1), single(2), dangling(3), dangling(4)}
	ds, err := Prepare(conf(0.75), graphs)
	x.Nil(err)
	x.Equal(4, ds.Graphs)
	x.Equal(3, ds.MinCount)
	x.Equal(2, len(ds.Transactions))
	x.Equal(2, len(ds.Skipped))

	r := mine(t, conf(0.75), graphs...)
	x.Equal(0, len(r.Patterns))
	r = mine(t, conf(0.5), graphs...)
	x.Equal(1, len(r.Patterns))
}

func TestEmptyInput(t *testing.T) {
	x := assert.New(t)
	r := mine(t, conf(0.5))
	x.Equal(0, len(r.Patterns))
}

func TestBadConfig(t *testing.T) {
	x := assert.New(t)
	_, err := NewMiner(conf(0))
	x.IsType(&config.ConfigError{}, err)
	_, err = Prepare(conf(2), nil)
	x.IsType(&config.ConfigError{}, err)
}

func TestCancel(t *testing.T) {
	x := assert.New(t)
	m, err := NewMiner(conf(1.0))
	x.Nil(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Mine(ctx, []*graph.Graph{triangle(1)})
	x.Equal(context.Canceled, err)
}

func TestSupportMonotonicity(t *testing.T) {
	x := assert.New(t)
	labels := []string{"A", "B", "C"}
	var graphs []*graph.Graph
	for i := 0; i < 6; i++ {
		g := graph.New(i)
		for v := 0; v < 5; v++ {
			g.AddVertex(v, labels[(v*i+v)%len(labels)])
		}
		for v := 0; v < 4; v++ {
			g.AddEdge(v, v, v+1, labels[(v+i)%2])
		}
		g.AddEdge(4, 0, 2+i%3, "e")
		graphs = append(graphs, g)
	}
	r := mine(t, conf(0.3), graphs...)
	x.True(len(r.Patterns) > 0)
	support := make(map[string]int)
	for _, p := range r.Patterns {
		x.True(dfs.IsCanonical(p.Code, false))
		support[p.Code.String()] = p.Support
	}
	for _, p := range r.Patterns {
		if len(p.Code) < 2 {
			continue
		}
		parent, has := support[p.Code[:len(p.Code)-1].String()]
		x.True(has, "the prefix of %v is frequent", p.Code)
		x.True(parent >= p.Support)
	}
}

func TestObserver(t *testing.T) {
	x := assert.New(t)
	m, err := NewMiner(conf(1.0))
	x.Nil(err)
	ds, err := Prepare(conf(1.0), []*graph.Graph{triangle(1), triangle(2)})
	x.Nil(err)
	var rounds []int
	var frequent []int
	collector, err := m.Run(context.Background(), ds.Transactions, ds.MinCount, func(round int, counts *support.Counts, f *support.Frequent) {
		rounds = append(rounds, round)
		frequent = append(frequent, f.Size())
		for _, p := range f.Patterns() {
			x.Equal(round, len(p.Code))
			x.Equal(2, p.Support)
		}
	})
	x.Nil(err)
	x.Equal([]int{1, 2, 3, 4}, rounds)
	x.Equal([]int{1, 1, 1, 0}, frequent)
	x.Equal(3, collector.Size())
	for _, tx := range ds.Transactions {
		x.False(tx.Active)
	}
}
