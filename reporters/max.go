package reporters

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/grow"
	"github.com/timtadh/gspan/pattern"
)

// Max holds every pattern until Close and then passes on the maximal ones:
// patterns contained in no other reported pattern. Every frequent proper
// supergraph implies a frequent one with exactly one more edge, so only
// those are searched.
type Max struct {
	Reporter Reporter
	grower   *grow.Grower
	byEdges  map[int][]*pattern.Pattern
	order    []*pattern.Pattern
}

func NewMax(grower *grow.Grower, reporter Reporter) (*Max, error) {
	m := &Max{
		Reporter: reporter,
		grower:   grower,
		byEdges:  make(map[int][]*pattern.Pattern),
	}
	return m, nil
}

func (m *Max) Report(p *pattern.Pattern) error {
	m.order = append(m.order, p)
	m.byEdges[len(p.Code)] = append(m.byEdges[len(p.Code)], p)
	return nil
}

func (m *Max) Maximal(p *pattern.Pattern) bool {
	for _, q := range m.byEdges[len(p.Code)+1] {
		if m.grower.Supports(dfs.PatternGraph(q.Code, p.Directed), p.Code) {
			return false
		}
	}
	return true
}

func (m *Max) Close() error {
	for _, p := range m.order {
		if !m.Maximal(p) {
			continue
		}
		if err := m.Reporter.Report(p); err != nil {
			m.Reporter.Close()
			return err
		}
	}
	return m.Reporter.Close()
}
