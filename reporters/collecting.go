package reporters

import (
	"github.com/timtadh/gspan/pattern"
)

type Collector struct {
	Patterns []*pattern.Pattern
}

func (c *Collector) Report(p *pattern.Pattern) error {
	c.Patterns = append(c.Patterns, p)
	return nil
}

func (c *Collector) Close() error {
	return nil
}
