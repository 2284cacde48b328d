// Package filterrefine mines partitioned transactions. Every worker mines
// its own partition, the coordinator merges what they report and asks
// workers for exact counts only on codes that could still be frequent.
package filterrefine

import (
	"context"
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/dictionary"
	"github.com/timtadh/gspan/mine"
	"github.com/timtadh/gspan/support"
	"github.com/timtadh/gspan/transaction"
	"github.com/timtadh/gspan/types/graph"
)

type Coordinator struct {
	config  *config.Config
	decoder *dfs.Decoder
}

func NewCoordinator(conf *config.Config) (*Coordinator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	decoder, err := dfs.NewDecoder(conf.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Coordinator{
		config:  conf,
		decoder: decoder,
	}, nil
}

// Mine splits graphs into config.Partitions parts and mines them.
func (c *Coordinator) Mine(ctx context.Context, graphs []*graph.Graph) (*mine.Result, error) {
	return c.MinePartitions(ctx, Partition(graphs, c.config.Partitions))
}

// MinePartitions mines an existing partitioning. The dictionaries and the
// minimum count are global so every worker speaks the same labels.
func (c *Coordinator) MinePartitions(ctx context.Context, parts [][]*graph.Graph) (*mine.Result, error) {
	var all []*graph.Graph
	for _, part := range parts {
		all = append(all, part...)
	}
	minCount := support.MinCount(c.config.MinSupport, len(all))
	vertices, edges := dictionary.Build(all, minCount)
	enc := &transaction.Encoder{
		Vertices:   vertices,
		Edges:      edges,
		Directed:   c.config.Directed,
		MultiGraph: c.config.MultiGraph,
	}
	ds := &mine.Dataset{
		Graphs:   len(all),
		MinCount: minCount,
		Vertices: vertices,
		Edges:    edges,
	}

	workers := make([]*Worker, 0, len(parts))
	sizes := make([]int, 0, len(parts))
	for i, part := range parts {
		w, err := NewWorker(i, c.config, enc, c.decoder, part)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
		sizes = append(sizes, w.Size)
	}

	reports, err := c.filter(ctx, workers)
	if err != nil {
		return nil, err
	}
	cls := Classify(Group(reports, len(workers)), sizes, c.config.MinSupport, minCount)
	errors.Logf("INFO", "filter: %d reports, %d complete, %d incomplete, %d dropped",
		len(reports), len(cls.Complete), len(cls.Incomplete), cls.Dropped)

	refined, err := c.refine(ctx, workers, cls.Refine)
	if err != nil {
		return nil, err
	}

	patterns := make([]support.Supported, 0, len(cls.Complete)+len(cls.Incomplete))
	for _, cand := range cls.Complete {
		patterns = c.decode(ds, patterns, cand.Code, cand.Support)
	}
	extra := make(map[string]int)
	for _, r := range refined {
		extra[string(r.Code)] += r.Support
	}
	for _, cand := range cls.Incomplete {
		total := cand.Support + extra[string(cand.Code)]
		if total >= minCount {
			patterns = c.decode(ds, patterns, cand.Code, total)
		}
	}
	sort.Slice(patterns, func(i, j int) bool {
		return dfs.Compare(patterns[i].Code, patterns[j].Code) < 0
	})
	return mine.NewResult(ds, patterns, c.config.MinEdges), nil
}

// decode drops codes that do not decode or that use labels the run's
// dictionaries do not hold.
func (c *Coordinator) decode(ds *mine.Dataset, patterns []support.Supported, z dfs.Compressed, n int) []support.Supported {
	code, err := c.decoder.Decode(z)
	if err != nil {
		errors.Logf("ERROR", "dropping a result: %v", err)
		return patterns
	}
	if err := code.LabelsWithin(ds.Vertices.Len(), ds.Edges.Len()); err != nil {
		errors.Logf("ERROR", "dropping a result: %v", err)
		return patterns
	}
	return append(patterns, support.Supported{Code: code, Support: n})
}

func (c *Coordinator) filter(ctx context.Context, workers []*Worker) ([]Report, error) {
	results := make([][]Report, len(workers))
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		i, w := i, w
		g.Go(func() error {
			reports, err := w.Filter(gctx)
			if err != nil {
				return err
			}
			results[i] = reports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var reports []Report
	for _, r := range results {
		reports = append(reports, r...)
	}
	return reports, nil
}

func (c *Coordinator) refine(ctx context.Context, workers []*Worker, requests map[int][]dfs.Compressed) ([]Report, error) {
	results := make([][]Report, len(workers))
	g, gctx := errgroup.WithContext(ctx)
	for i, codes := range requests {
		i, codes := i, codes
		g.Go(func() error {
			reports, err := workers[i].Refine(gctx, codes)
			if err != nil {
				return err
			}
			results[i] = reports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var reports []Report
	for _, r := range results {
		reports = append(reports, r...)
	}
	return reports, nil
}
