package reporters

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/grow"
	"github.com/timtadh/gspan/mine"
	"github.com/timtadh/gspan/pattern"
	"github.com/timtadh/gspan/stores/patterns"
	"github.com/timtadh/gspan/types/graph"
)

func tmpConfig(t *testing.T) (*config.Config, func()) {
	dir, err := ioutil.TempDir("", "gspan-reporters")
	if err != nil {
		t.Fatal(err)
	}
	c := config.Default()
	c.MinSupport = 1
	c.Parallelism = 1
	c.Output = dir
	return c, func() { os.RemoveAll(dir) }
}

// triangle mines a triangle with a tail: A-A-A closed plus A-B.
func triangle(t *testing.T, c *config.Config) []*pattern.Pattern {
	g := graph.New(1).
		AddVertex(1, "A").AddVertex(2, "A").AddVertex(3, "A").AddVertex(4, "B").
		AddEdge(0, 1, 2, "e").AddEdge(1, 2, 3, "e").AddEdge(2, 3, 1, "e").AddEdge(3, 3, 4, "f")
	m, err := mine.NewMiner(c)
	if err != nil {
		t.Fatal(err)
	}
	r, err := m.Mine(context.Background(), []*graph.Graph{g})
	if err != nil {
		t.Fatal(err)
	}
	return pattern.DecodeAll(r.Patterns, r.Vertices, r.Edges, c.Directed)
}

func read(t *testing.T, path string) string {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestChainCollectSkip(t *testing.T) {
	x := assert.New(t)
	c, clean := tmpConfig(t)
	defer clean()
	ps := triangle(t, c)
	all := &Collector{}
	every := &Collector{}
	r := &Chain{Reporters: []Reporter{all, NewSkip(2, every), NewLog("DEBUG", "pattern")}}
	x.Nil(ReportAll(r, ps))
	x.Equal(ps, all.Patterns)
	x.Equal(len(ps)/2, len(every.Patterns))
	x.Equal(ps[1], every.Patterns[0])
}

func TestMax(t *testing.T) {
	x := assert.New(t)
	c, clean := tmpConfig(t)
	defer clean()
	ps := triangle(t, c)
	grower, err := grow.New(false, 16)
	x.Nil(err)
	kept := &Collector{}
	max, err := NewMax(grower, kept)
	x.Nil(err)
	x.Nil(ReportAll(max, ps))
	x.Equal(1, len(kept.Patterns))
	x.Equal("4:4", kept.Patterns[0].Name())
	for _, p := range ps {
		x.Equal(p == kept.Patterns[0], max.Maximal(p))
	}
}

func TestCount(t *testing.T) {
	x := assert.New(t)
	c, clean := tmpConfig(t)
	defer clean()
	ps := triangle(t, c)
	r, err := NewCount(c, "count")
	x.Nil(err)
	x.Nil(ReportAll(r, ps))
	x.Equal(len(ps), r.Count())
	lines := strings.Split(strings.TrimSpace(read(t, c.OutputFile("count"))), "\n")
	x.Equal("8", lines[0])
	x.Equal(5, len(lines))
	x.Equal("4 edges: 1", lines[4])
}

func TestFile(t *testing.T) {
	x := assert.New(t)
	c, clean := tmpConfig(t)
	defer clean()
	ps := triangle(t, c)
	r, err := NewFile(c, pattern.Veg{}, "patterns", "supports")
	x.Nil(err)
	x.Nil(ReportAll(r, ps))

	graphs, err := graph.Parse(strings.NewReader(read(t, c.OutputFile("patterns.veg"))))
	x.Nil(err)
	x.Equal(len(ps), len(graphs))
	for i, g := range graphs {
		x.Equal(ps[i].Graph.E, g.E)
	}
	supports := strings.Split(strings.TrimSpace(read(t, c.OutputFile("supports"))), "\n")
	x.Equal(len(ps), len(supports))
	x.True(strings.HasPrefix(supports[0], "1\t1:2\t1\t"))
}

func TestDir(t *testing.T) {
	x := assert.New(t)
	c, clean := tmpConfig(t)
	defer clean()
	ps := triangle(t, c)
	r, err := NewDir(c, pattern.Dot{}, "patterns")
	x.Nil(err)
	x.Nil(ReportAll(r, ps))
	x.Equal("8\n", read(t, filepath.Join(c.OutputFile("patterns"), "count")))
	x.Equal("1\n", read(t, filepath.Join(c.OutputFile("patterns"), "0", "pattern.support")))
	x.Contains(read(t, filepath.Join(c.OutputFile("patterns"), "3", "pattern.dot")), "graph {")
}

func TestIndex(t *testing.T) {
	x := assert.New(t)
	c, clean := tmpConfig(t)
	defer clean()
	ps := triangle(t, c)
	r, err := NewIndex(c, "patterns.bpt")
	x.Nil(err)
	x.Nil(ReportAll(r, ps))

	decoder, err := dfs.NewDecoder(16)
	x.Nil(err)
	loaded, err := patterns.Load(c.OutputFile("patterns.bpt"), decoder, 2, 2)
	x.Nil(err)
	x.Equal(len(ps), len(loaded))
	supports := make(map[string]int)
	for _, l := range loaded {
		supports[l.Code.String()] = l.Support
	}
	for _, p := range ps {
		support, has := supports[p.Code.String()]
		x.True(has, "%v is indexed", p.Code)
		x.Equal(p.Support, support)
	}
}

func TestIndexSkipsDuplicates(t *testing.T) {
	x := assert.New(t)
	c, clean := tmpConfig(t)
	defer clean()
	ps := triangle(t, c)
	r, err := NewIndex(c, "patterns.bpt")
	x.Nil(err)
	x.Nil(ReportAll(r, append(ps, ps[0])))

	tree, err := patterns.OpenBpTree(c.OutputFile("patterns.bpt"))
	x.Nil(err)
	defer tree.Close()
	x.Equal(len(ps), tree.Size())
}
