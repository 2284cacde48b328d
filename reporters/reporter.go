package reporters

import (
	"github.com/timtadh/gspan/pattern"
)

// Reporter receives every mined pattern once, in result order, and is
// closed after the last one.
type Reporter interface {
	Report(p *pattern.Pattern) error
	Close() error
}

// ReportAll hands patterns to r and closes it.
func ReportAll(r Reporter, patterns []*pattern.Pattern) error {
	for _, p := range patterns {
		if err := r.Report(p); err != nil {
			r.Close()
			return err
		}
	}
	return r.Close()
}
