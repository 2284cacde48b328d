package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/pattern"
)

// Count writes how many patterns it saw, and how many of each size, to
// filename when closed.
type Count struct {
	config   *config.Config
	count    int
	byEdges  map[int]int
	max      int
	filename string
}

func NewCount(c *config.Config, filename string) (*Count, error) {
	r := &Count{
		config:   c,
		byEdges:  make(map[int]int),
		filename: filename,
	}
	return r, nil
}

func (r *Count) Report(p *pattern.Pattern) error {
	r.count++
	r.byEdges[len(p.Code)]++
	if len(p.Code) > r.max {
		r.max = len(p.Code)
	}
	return nil
}

func (r *Count) Count() int {
	return r.count
}

func (r *Count) Close() error {
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	_, perr := fmt.Fprintf(f, "%v\n", r.count)
	for edges := 1; edges <= r.max && perr == nil; edges++ {
		_, perr = fmt.Fprintf(f, "%d edges: %d\n", edges, r.byEdges[edges])
	}
	err = f.Close()
	if perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	return nil
}
