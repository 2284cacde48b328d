package reporters

import (
	"fmt"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/gspan/config"
	"github.com/timtadh/gspan/pattern"
)

// Dir gives every pattern its own numbered directory under dirname.
type Dir struct {
	config *config.Config
	fmt    pattern.Formatter
	dir    string
	count  int
}

func NewDir(c *config.Config, fmt pattern.Formatter, dirname string) (*Dir, error) {
	patterns := c.OutputFile(dirname)
	err := os.MkdirAll(patterns, 0775)
	if err != nil {
		return nil, err
	}
	r := &Dir{
		config: c,
		fmt:    fmt,
		dir:    patterns,
	}
	return r, nil
}

func (r *Dir) Report(p *pattern.Pattern) error {
	dir := filepath.Join(r.dir, fmt.Sprintf("%d", r.count))
	err := os.MkdirAll(dir, 0775)
	if err != nil {
		return err
	}
	r.count++
	name, err := os.Create(filepath.Join(dir, "pattern.name"))
	if err != nil {
		return err
	}
	defer name.Close()
	fmt.Fprintf(name, "%s\n", p.Name())
	support, err := os.Create(filepath.Join(dir, "pattern.support"))
	if err != nil {
		return err
	}
	defer support.Close()
	fmt.Fprintf(support, "%d\n", p.Support)
	code, err := os.Create(filepath.Join(dir, "pattern.code"))
	if err != nil {
		return err
	}
	defer code.Close()
	fmt.Fprintf(code, "%v\n", p.Code)
	out, err := os.Create(filepath.Join(dir, "pattern"+r.fmt.FileExt()))
	if err != nil {
		return err
	}
	defer out.Close()
	return r.fmt.FormatPattern(out, p)
}

func (r *Dir) Close() error {
	count, err := os.Create(filepath.Join(r.dir, "count"))
	if err != nil {
		return err
	}
	defer count.Close()
	fmt.Fprintf(count, "%d\n", r.count)
	return nil
}
