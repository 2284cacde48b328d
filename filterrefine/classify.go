package filterrefine

import (
	"sort"
)

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/timtadh/data-structures/hashtable"
)

import (
	"github.com/timtadh/gspan/dfs"
)

// Candidate gathers the reports of every worker on one code.
type Candidate struct {
	Code     dfs.Compressed
	Support  int
	Frequent bool
	Reported *bitset.BitSet
	Estimate float64
}

// Classification splits candidates into complete results, incomplete
// results waiting for refinement and dropped codes. Refine lists, per
// worker, the codes that worker has to count.
type Classification struct {
	Complete   []*Candidate
	Incomplete []*Candidate
	Dropped    int
	Refine     map[int][]dfs.Compressed
}

// Group merges reports on the same code.
func Group(reports []Report, workers int) []*Candidate {
	byCode := hashtable.NewLinearHash()
	var candidates []*Candidate
	for _, r := range reports {
		var cand *Candidate
		if byCode.Has(r.Code) {
			x, err := byCode.Get(r.Code)
			if err != nil {
				panic(err)
			}
			cand = x.(*Candidate)
		} else {
			cand = &Candidate{
				Code:     r.Code,
				Reported: bitset.New(uint(workers)),
			}
			if err := byCode.Put(r.Code, cand); err != nil {
				panic(err)
			}
			candidates = append(candidates, cand)
		}
		if cand.Reported.Test(uint(r.Worker)) {
			continue
		}
		cand.Reported.Set(uint(r.Worker))
		cand.Support += r.Support
		cand.Frequent = cand.Frequent || r.Frequent
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Code.Less(candidates[j].Code)
	})
	return candidates
}

// Classify decides what happens to every candidate. sizes holds the
// partition size of each worker. A worker that did not report a code has a
// local support below minSupport times its size, so the estimate adds that
// much for each missing worker and never falls below the true support.
func Classify(candidates []*Candidate, sizes []int, minSupport float64, minCount int) *Classification {
	cls := &Classification{
		Refine: make(map[int][]dfs.Compressed),
	}
	for _, cand := range candidates {
		if !cand.Frequent {
			cls.Dropped++
			continue
		}
		if int(cand.Reported.Count()) == len(sizes) {
			cand.Estimate = float64(cand.Support)
			if cand.Support >= minCount {
				cls.Complete = append(cls.Complete, cand)
			} else {
				cls.Dropped++
			}
			continue
		}
		cand.Estimate = float64(cand.Support)
		for w, size := range sizes {
			if !cand.Reported.Test(uint(w)) {
				cand.Estimate += minSupport * float64(size)
			}
		}
		if cand.Estimate+1e-9 < float64(minCount) {
			cls.Dropped++
			continue
		}
		cls.Incomplete = append(cls.Incomplete, cand)
		for w := range sizes {
			if !cand.Reported.Test(uint(w)) {
				cls.Refine[w] = append(cls.Refine[w], cand.Code)
			}
		}
	}
	return cls
}
