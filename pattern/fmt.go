package pattern

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Formatter writes patterns in one file format.
type Formatter interface {
	FileExt() string
	FormatPattern(w io.Writer, p *Pattern) error
}

// Formatters maps a format name to its Formatter.
var Formatters = map[string]Formatter{
	"veg": Veg{},
	"dot": Dot{},
}

func GetFormatter(name string) (Formatter, error) {
	f, has := Formatters[name]
	if !has {
		return nil, errors.Errorf("unknown format %v", name)
	}
	return f, nil
}

// Veg writes the line format the loader reads. The graph line also carries
// the support so the file can be loaded again as an input collection.
type Veg struct{}

func (Veg) FileExt() string {
	return ".veg"
}

func (Veg) FormatPattern(w io.Writer, p *Pattern) error {
	lines := make([]string, 0, 1+len(p.Graph.V)+len(p.Graph.E))
	line := func(kind string, obj interface{}) error {
		data, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		lines = append(lines, kind+"\t"+string(data))
		return nil
	}
	err := line("graph", map[string]interface{}{
		"id":      p.Graph.Id,
		"support": p.Support,
		"name":    p.Name(),
	})
	if err != nil {
		return err
	}
	for _, v := range p.Graph.V {
		if err := line("vertex", map[string]interface{}{"id": v.Id, "label": v.Label}); err != nil {
			return err
		}
	}
	for _, e := range p.Graph.E {
		err := line("edge", map[string]interface{}{"id": e.Id, "src": e.Src, "targ": e.Targ, "label": e.Label})
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%s\n", strings.Join(lines, "\n"))
	return err
}

type Dot struct{}

func (Dot) FileExt() string {
	return ".dot"
}

func (Dot) FormatPattern(w io.Writer, p *Pattern) error {
	_, err := fmt.Fprintf(w, "// %s support %d\n\n%s\n\n", p.Name(), p.Support, DotString(p))
	return err
}

func DotString(p *Pattern) string {
	kind, arrow := "graph", "--"
	if p.Directed {
		kind, arrow = "digraph", "->"
	}
	lines := make([]string, 0, len(p.Graph.V)+len(p.Graph.E)+2)
	lines = append(lines, kind+" {")
	for _, v := range p.Graph.V {
		lines = append(lines, fmt.Sprintf("    %d [label=%s];", v.Id, strconv.Quote(v.Label)))
	}
	for _, e := range p.Graph.E {
		lines = append(lines, fmt.Sprintf("    %d %s %d [label=%s];", e.Src, arrow, e.Targ, strconv.Quote(e.Label)))
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}
