// Package support counts in how many transactions each code occurs and
// decides which codes survive a round.
package support

import (
	"fmt"
	"math"
	"sort"
)

import (
	"github.com/timtadh/data-structures/hashtable"
)

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/embeddings"
	"github.com/timtadh/gspan/transaction"
)

// MinCount converts a relative support into the number of transactions a
// pattern must occur in. It is never less than 1.
func MinCount(minSupport float64, total int) int {
	n := int(math.Ceil(minSupport*float64(total) - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// Supported pairs a code with the number of transactions containing it.
type Supported struct {
	Code    dfs.Code
	Support int
}

func (s Supported) String() string {
	return fmt.Sprintf("%v %d", s.Code, s.Support)
}

func sortSupported(patterns []Supported) []Supported {
	sort.Slice(patterns, func(i, j int) bool {
		return dfs.Compare(patterns[i].Code, patterns[j].Code) < 0
	})
	return patterns
}

type table struct {
	hash *hashtable.LinearHash
}

func newTable() table {
	return table{hash: hashtable.NewLinearHash()}
}

func (t table) get(c dfs.Code) int {
	if !t.hash.Has(c) {
		return 0
	}
	n, err := t.hash.Get(c)
	if err != nil {
		panic(err)
	}
	return n.(int)
}

func (t table) put(c dfs.Code, n int) {
	if err := t.hash.Put(c, n); err != nil {
		panic(err)
	}
}

func (t table) each(do func(dfs.Code, int)) {
	for k, v, next := t.hash.Iterate()(); next != nil; k, v, next = next() {
		do(k.(dfs.Code), v.(int))
	}
}

func (t table) patterns() []Supported {
	patterns := make([]Supported, 0, t.hash.Size())
	t.each(func(c dfs.Code, n int) {
		patterns = append(patterns, Supported{Code: c, Support: n})
	})
	return sortSupported(patterns)
}

// Counts is a partial sum of per-transaction reports. Each task of a round
// fills its own Counts; the partial sums are merged afterwards. Merging is
// associative and commutative.
type Counts struct {
	table
}

func NewCounts() *Counts {
	return &Counts{newTable()}
}

// Report counts one transaction for every code in its frontier.
func (c *Counts) Report(store *embeddings.Store) {
	store.Each(func(code dfs.Code, _ []*dfs.Embedding) {
		c.Add(code, 1)
	})
}

func (c *Counts) Add(code dfs.Code, n int) {
	c.put(code, c.get(code)+n)
}

func (c *Counts) Merge(o *Counts) {
	o.each(func(code dfs.Code, n int) {
		c.Add(code, n)
	})
}

func (c *Counts) Support(code dfs.Code) int {
	return c.get(code)
}

func (c *Counts) Size() int {
	return c.hash.Size()
}

func (c *Counts) Each(do func(dfs.Code, int)) {
	c.each(do)
}

// Frequent builds the snapshot of codes reaching minCount.
func (c *Counts) Frequent(minCount int) *Frequent {
	f := &Frequent{newTable()}
	c.each(func(code dfs.Code, n int) {
		if n >= minCount {
			f.put(code, n)
		}
	})
	return f
}

// Frequent is the set of frequent codes of one round. It is never modified
// after it is built so every transaction may read it at once.
type Frequent struct {
	table
}

func (f *Frequent) Has(c dfs.Code) bool {
	return f.hash.Has(c)
}

func (f *Frequent) Support(c dfs.Code) int {
	return f.get(c)
}

func (f *Frequent) Size() int {
	return f.hash.Size()
}

func (f *Frequent) Patterns() []Supported {
	return f.patterns()
}

// Prune drops the infrequent codes from the frontier of tx.
func Prune(tx *transaction.Transaction, f *Frequent) {
	tx.Embeddings.Retain(f.Has)
	tx.Active = !tx.Embeddings.Empty()
}

// Collector accumulates every frequent pattern of a run. Patterns are only
// ever added.
type Collector struct {
	table
}

func NewCollector() *Collector {
	return &Collector{newTable()}
}

func (c *Collector) Add(f *Frequent) {
	f.each(c.AddPattern)
}

func (c *Collector) AddPattern(code dfs.Code, support int) {
	c.put(code, support)
}

func (c *Collector) Has(code dfs.Code) bool {
	return c.hash.Has(code)
}

func (c *Collector) Support(code dfs.Code) int {
	return c.get(code)
}

func (c *Collector) Size() int {
	return c.hash.Size()
}

// Patterns lists the collected patterns in DFS code order.
func (c *Collector) Patterns() []Supported {
	return c.patterns()
}
