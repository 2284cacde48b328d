package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/pattern"
	"github.com/timtadh/gspan/stores/patterns"
)

// Index writes every pattern's compressed code and support to an fs2
// B+tree in the output directory. The codes use the run's label ids.
type Index struct {
	tree *patterns.BpTree
}

func NewIndex(c *config.Config, filename string) (*Index, error) {
	tree, err := patterns.NewBpTree(c.OutputFile(filename))
	if err != nil {
		return nil, err
	}
	return &Index{tree: tree}, nil
}

// Report adds p unless its code is already indexed.
func (r *Index) Report(p *pattern.Pattern) error {
	code := dfs.Compress(p.Code)
	if has, err := r.tree.Has(code); err != nil {
		return err
	} else if has {
		errors.Logf("WARNING", "pattern %v is already indexed", p.Name())
		return nil
	}
	return r.tree.Add(code, int32(p.Support))
}

func (r *Index) Close() error {
	return r.tree.Close()
}
