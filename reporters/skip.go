package reporters

import (
	"github.com/timtadh/gspan/pattern"
)

// Skip passes on every n-th pattern.
type Skip struct {
	Skip     int
	Reporter Reporter
	count    int
}

func NewSkip(n int, rptr Reporter) *Skip {
	return &Skip{
		Skip:     n,
		Reporter: rptr,
	}
}

func (r *Skip) Report(p *pattern.Pattern) error {
	r.count++
	if r.count%r.Skip == 0 {
		return r.Reporter.Report(p)
	}
	return nil
}

func (r *Skip) Close() error {
	return r.Reporter.Close()
}
