// Package transaction turns labeled input graphs into integer labeled
// transactions ready for mining.
package transaction

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/types/graph"
)

// EncodingError marks an input graph that cannot be mined. The graph is
// skipped and the run goes on.
type EncodingError struct {
	Graph  int
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("graph %d cannot be encoded: %v", e.Graph, e.Reason)
}

// Encoder holds the dictionaries shared by every transaction of a run.
//
// Self loops are never encoded. With MultiGraph unset only the first edge
// (in input order) between a pair of vertices is kept; the pair is ordered
// when Directed is set.
type Encoder struct {
	Vertices   *dictionary.Dictionary
	Edges      *dictionary.Dictionary
	Directed   bool
	MultiGraph bool
}

type vertexPair struct {
	a, b int
}

func (enc *Encoder) Encode(g *graph.Graph) (*Transaction, error) {
	if g.Invalid != nil {
		return nil, &EncodingError{Graph: g.Id, Reason: g.Invalid.Error()}
	}
	t := newTransaction(g.Id)
	seen := make(map[int]bool, len(g.V))
	for _, v := range g.V {
		if seen[v.Id] {
			return nil, &EncodingError{Graph: g.Id, Reason: fmt.Sprintf("duplicate vertex id %d", v.Id)}
		}
		seen[v.Id] = true
		if label, has := enc.Vertices.Id(v.Label); has {
			t.VertexLabels[v.Id] = label
		}
	}
	pairs := make(map[vertexPair]bool)
	for idx, e := range g.E {
		if !seen[e.Src] {
			return nil, &EncodingError{Graph: g.Id, Reason: fmt.Sprintf("edge %d has a dangling source %d", e.Id, e.Src)}
		} else if !seen[e.Targ] {
			return nil, &EncodingError{Graph: g.Id, Reason: fmt.Sprintf("edge %d has a dangling target %d", e.Id, e.Targ)}
		}
		label, has := enc.Edges.Id(e.Label)
		if !has || e.Src == e.Targ {
			continue
		}
		src, srcHas := t.VertexLabels[e.Src]
		targ, targHas := t.VertexLabels[e.Targ]
		if !srcHas || !targHas {
			continue
		}
		if !enc.MultiGraph {
			pair := vertexPair{e.Src, e.Targ}
			if !enc.Directed && pair.a > pair.b {
				pair.a, pair.b = pair.b, pair.a
			}
			if pairs[pair] {
				continue
			}
			pairs[pair] = true
		}
		t.Adjacency[e.Src] = append(t.Adjacency[e.Src], AdjacencyListEntry{
			EdgeId:        idx,
			ToVertexId:    e.Targ,
			ToVertexLabel: targ,
			EdgeLabel:     label,
			Outgoing:      true,
		})
		t.Adjacency[e.Targ] = append(t.Adjacency[e.Targ], AdjacencyListEntry{
			EdgeId:        idx,
			ToVertexId:    e.Src,
			ToVertexLabel: src,
			EdgeLabel:     label,
			Outgoing:      !enc.Directed,
		})
		t.edges++
	}
	t.finish()
	return t, nil
}

// EncodeAll encodes every graph it can. The graphs it skips are reported in
// the returned list, one EncodingError each.
func (enc *Encoder) EncodeAll(graphs []*graph.Graph) ([]*Transaction, graph.ErrorList) {
	var errs graph.ErrorList
	txs := make([]*Transaction, 0, len(graphs))
	for _, g := range graphs {
		t, err := enc.Encode(g)
		if err != nil {
			errors.Logf("WARNING", "skipping %v", err)
			errs = append(errs, err)
			continue
		}
		txs = append(txs, t)
	}
	return txs, errs
}
