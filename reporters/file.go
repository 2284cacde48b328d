package reporters

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/pattern"
)

// File writes every pattern to one patterns file and a line per pattern to
// a supports file holding the name, support and code.
type File struct {
	config   *config.Config
	fmt      pattern.Formatter
	patterns io.WriteCloser
	supports io.WriteCloser
}

func NewFile(c *config.Config, fmt pattern.Formatter, patternsFilename, supportsFilename string) (*File, error) {
	patterns, err := os.Create(c.OutputFile(patternsFilename + fmt.FileExt()))
	if err != nil {
		return nil, err
	}
	supports, err := os.Create(c.OutputFile(supportsFilename))
	if err != nil {
		patterns.Close()
		return nil, err
	}
	r := &File{
		config:   c,
		fmt:      fmt,
		patterns: patterns,
		supports: supports,
	}
	return r, nil
}

func (r *File) Report(p *pattern.Pattern) error {
	err := r.fmt.FormatPattern(r.patterns, p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.supports, "%d\t%s\t%d\t%v\n", p.Graph.Id, p.Name(), p.Support, p.Code)
	return err
}

func (r *File) Close() error {
	err := r.patterns.Close()
	if err != nil {
		return err
	}
	err = r.supports.Close()
	if err != nil {
		return err
	}
	return nil
}
