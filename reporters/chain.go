package reporters

import (
	"github.com/timtadh/gspan/pattern"
)

type Chain struct {
	Reporters []Reporter
}

func (r *Chain) Report(p *pattern.Pattern) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(p)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Chain) Close() error {
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
