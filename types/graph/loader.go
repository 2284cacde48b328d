package graph

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Input opens the data source. closer releases whatever it opened.
type Input func() (reader io.Reader, closer func())

type ErrorList []error

func (self ErrorList) Error() string {
	var s []string
	for _, err := range self {
		s = append(s, err.Error())
	}
	return "Errors [" + strings.Join(s, ", ") + "]"
}

// Load reads a veg file holding many graphs. Each graph starts with a
// `graph {"id": ...}` line and is followed by its vertex and edge lines.
// Vertex and edge lines before the first graph line form graph 0.
//
// A bad line invalidates the graph it belongs to but loading carries on.
// The returned ErrorList names every bad line; it is informational and the
// graphs are returned alongside it.
func Load(input Input) ([]*Graph, error) {
	in, closer := input()
	defer closer()
	return Parse(in)
}

func Parse(in io.Reader) (graphs []*Graph, err error) {
	var errs ErrorList
	var cur *Graph
	current := func() *Graph {
		if cur == nil {
			cur = New(len(graphs))
			graphs = append(graphs, cur)
		}
		return cur
	}
	lineNo := 0
	err = processLines(in, func(line []byte) {
		lineNo++
		if len(line) == 0 || !bytes.Contains(line, []byte("\t")) {
			return
		}
		line_type, data := parseLine(line)
		var lineErr error
		switch line_type {
		case "graph":
			cur = nil
			lineErr = loadGraph(current(), data)
		case "vertex":
			lineErr = loadVertex(current(), data)
		case "edge":
			lineErr = loadEdge(current(), data)
		default:
			lineErr = errors.Errorf("Unknown line type %v", line_type)
		}
		if lineErr != nil {
			lineErr = errors.Errorf("line %d: %v", lineNo, lineErr)
			current().invalidate(lineErr)
			errs = append(errs, lineErr)
		}
	})
	if err != nil {
		return nil, err
	}
	if len(errs) == 0 {
		return graphs, nil
	}
	return graphs, errs
}

func loadGraph(g *Graph, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	if _, has := obj["id"]; !has {
		return nil
	}
	id, err := intField(obj, "id")
	if err != nil {
		return err
	}
	g.Id = id
	return nil
}

func loadVertex(g *Graph, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	id, err := intField(obj, "id")
	if err != nil {
		return err
	}
	label, err := labelField(obj)
	if err != nil {
		return err
	}
	g.AddVertex(id, label)
	return nil
}

func loadEdge(g *Graph, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	id := len(g.E)
	if _, has := obj["id"]; has {
		if id, err = intField(obj, "id"); err != nil {
			return err
		}
	}
	src, err := intField(obj, "src")
	if err != nil {
		return err
	}
	targ, err := intField(obj, "targ")
	if err != nil {
		return err
	}
	label, err := labelField(obj)
	if err != nil {
		return err
	}
	g.AddEdge(id, src, targ, label)
	return nil
}

func intField(obj map[string]interface{}, name string) (int, error) {
	n, ok := obj[name].(json.Number)
	if !ok {
		return 0, errors.Errorf("expected a number for %v got %v", name, obj[name])
	}
	i, err := n.Int64()
	if err != nil {
		return 0, err
	}
	return int(i), nil
}

func labelField(obj map[string]interface{}) (string, error) {
	label, ok := obj["label"].(string)
	if !ok {
		return "", errors.Errorf("missing label in %v", obj)
	}
	return strings.TrimSpace(label), nil
}

func processLines(in io.Reader, process func([]byte)) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		unsafe := scanner.Bytes()
		line := make([]byte, len(unsafe))
		copy(line, unsafe)
		process(line)
	}
	return scanner.Err()
}

func parseJson(data []byte) (obj map[string]interface{}, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseLine(line []byte) (line_type string, data []byte) {
	split := bytes.SplitN(line, []byte("\t"), 2)
	return strings.TrimSpace(string(split[0])), bytes.TrimSpace(split[1])
}
