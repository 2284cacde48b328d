package mine

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"context"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/grow"
	"github.com/timtadh/gspan/support"
	"github.com/timtadh/gspan/transaction"
	"github.com/timtadh/gspan/types/graph"
)

// Dataset is a graph collection ready for mining.
type Dataset struct {
	Graphs       int
	Transactions []*transaction.Transaction
	Skipped      graph.ErrorList
	MinCount     int
	Vertices     *dictionary.Dictionary
	Edges        *dictionary.Dictionary
}

// Prepare encodes graphs. The minimum count is computed from every input
// graph, including the ones that fail to encode.
func Prepare(conf *config.Config, graphs []*graph.Graph) (*Dataset, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	minCount := support.MinCount(conf.MinSupport, len(graphs))
	vertices, edges := dictionary.Build(graphs, minCount)
	enc := &transaction.Encoder{
		Vertices:   vertices,
		Edges:      edges,
		Directed:   conf.Directed,
		MultiGraph: conf.MultiGraph,
	}
	txs, skipped := enc.EncodeAll(graphs)
	errors.Logf("INFO", "encoded %d of %d graphs, min count %d, %d vertex labels, %d edge labels",
		len(txs), len(graphs), minCount, vertices.Len(), edges.Len())
	return &Dataset{
		Graphs:       len(graphs),
		Transactions: txs,
		Skipped:      skipped,
		MinCount:     minCount,
		Vertices:     vertices,
		Edges:        edges,
	}, nil
}

// Result is the output of a run: frequent patterns in DFS code order with
// the dictionaries needed to decode them.
type Result struct {
	Patterns []support.Supported
	Vertices *dictionary.Dictionary
	Edges    *dictionary.Dictionary
	MinCount int
	Graphs   int
}

// NewResult keeps the patterns with at least minEdges edges.
func NewResult(ds *Dataset, patterns []support.Supported, minEdges int) *Result {
	kept := make([]support.Supported, 0, len(patterns))
	for _, p := range patterns {
		if len(p.Code) >= minEdges {
			kept = append(kept, p)
		}
	}
	return &Result{
		Patterns: kept,
		Vertices: ds.Vertices,
		Edges:    ds.Edges,
		MinCount: ds.MinCount,
		Graphs:   ds.Graphs,
	}
}

// Miner runs gSpan in bulk synchronous rounds. Round n reports the n-edge
// codes of every active transaction, counts them, collects the frequent
// ones and grows them into the n+1-edge codes. No transaction grows round
// n+1 before round n is counted everywhere.
type Miner struct {
	config *config.Config
	grower *grow.Grower
}

func NewMiner(conf *config.Config) (*Miner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	g, err := grow.New(conf.Directed, conf.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Miner{
		config: conf,
		grower: g,
	}, nil
}

func (m *Miner) Grower() *grow.Grower {
	return m.grower
}

func (m *Miner) Mine(ctx context.Context, graphs []*graph.Graph) (*Result, error) {
	ds, err := Prepare(m.config, graphs)
	if err != nil {
		return nil, err
	}
	collector, err := m.Run(ctx, ds.Transactions, ds.MinCount, nil)
	if err != nil {
		return nil, err
	}
	return NewResult(ds, collector.Patterns(), m.config.MinEdges), nil
}

// Observer sees the counts of every round and the frequent snapshot built
// from them. It is called between rounds and must not keep counts.
type Observer func(round int, counts *support.Counts, frequent *support.Frequent)

// Run mines txs until no code is frequent or the patterns reach MaxEdges
// edges. The context is checked at every barrier. observe may be nil.
func (m *Miner) Run(ctx context.Context, txs []*transaction.Transaction, minCount int, observe Observer) (*support.Collector, error) {
	collector := support.NewCollector()
	if m.config.MaxEdges == 0 || len(txs) == 0 {
		return collector, nil
	}
	pool := newWorkers(m.config.Workers())
	defer pool.Stop()

	counts := pool.Each(txs, func(tx *transaction.Transaction, counts *support.Counts) {
		tx.Embeddings = m.grower.Initial(tx)
		tx.Active = !tx.Embeddings.Empty()
		counts.Report(tx.Embeddings)
	})
	active := txs
	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frequent := counts.Frequent(minCount)
		collector.Add(frequent)
		if observe != nil {
			observe(round, counts, frequent)
		}
		errors.Logf("INFO", "round %d: %d active transactions, %d codes, %d frequent, %d collected",
			round, len(active), counts.Size(), frequent.Size(), collector.Size())
		if frequent.Size() == 0 || round >= m.config.MaxEdges {
			break
		}
		counts = pool.Each(active, func(tx *transaction.Transaction, counts *support.Counts) {
			support.Prune(tx, frequent)
			if !tx.Active {
				tx.Deactivate()
				return
			}
			tx.Embeddings = m.grower.Grow(tx, tx.Embeddings)
			tx.Active = !tx.Embeddings.Empty()
			counts.Report(tx.Embeddings)
		})
		active = stillActive(active)
	}
	for _, tx := range active {
		tx.Deactivate()
	}
	return collector, nil
}

func stillActive(txs []*transaction.Transaction) []*transaction.Transaction {
	active := make([]*transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Active {
			active = append(active, tx)
		} else {
			tx.Deactivate()
		}
	}
	return active
}
