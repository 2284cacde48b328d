// Package dictionary maps string labels to dense integer labels.
package dictionary

import (
	"sort"
)

import (
	"github.com/timtadh/gspan/types/graph"
)

// Dictionary is immutable once built. Integer labels are indices into the
// label list, the most frequent label gets 0.
type Dictionary struct {
	labels []string
	ids    map[string]int
	counts []int
}

// New builds a dictionary from graph frequencies. Only labels occurring in
// at least minCount graphs are kept. Labels are ordered by descending
// frequency, ties broken by the label itself.
func New(counts map[string]int, minCount int) *Dictionary {
	labels := make([]string, 0, len(counts))
	for label, count := range counts {
		if count >= minCount {
			labels = append(labels, label)
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := counts[labels[i]], counts[labels[j]]
		if a != b {
			return a > b
		}
		return labels[i] < labels[j]
	})
	d := &Dictionary{
		labels: labels,
		ids:    make(map[string]int, len(labels)),
		counts: make([]int, len(labels)),
	}
	for i, label := range labels {
		d.ids[label] = i
		d.counts[i] = counts[label]
	}
	return d
}

// Build counts every label once per graph and builds the vertex and edge
// dictionaries. Invalid graphs are skipped.
func Build(graphs []*graph.Graph, minCount int) (vertices, edges *Dictionary) {
	vcounts := make(map[string]int)
	ecounts := make(map[string]int)
	for _, g := range graphs {
		if g.Invalid != nil {
			continue
		}
		seen := make(map[string]bool)
		for _, v := range g.V {
			if !seen[v.Label] {
				seen[v.Label] = true
				vcounts[v.Label]++
			}
		}
		seen = make(map[string]bool)
		for _, e := range g.E {
			if !seen[e.Label] {
				seen[e.Label] = true
				ecounts[e.Label]++
			}
		}
	}
	return New(vcounts, minCount), New(ecounts, minCount)
}

// Id returns the integer label, ok is false when the label was pruned or
// never seen.
func (d *Dictionary) Id(label string) (id int, ok bool) {
	id, ok = d.ids[label]
	return id, ok
}

func (d *Dictionary) Label(id int) string {
	if id < 0 || id >= len(d.labels) {
		return ""
	}
	return d.labels[id]
}

// Count is the number of graphs the label occurs in.
func (d *Dictionary) Count(id int) int {
	return d.counts[id]
}

func (d *Dictionary) Len() int {
	return len(d.labels)
}

func (d *Dictionary) Labels() []string {
	return append([]string(nil), d.labels...)
}
