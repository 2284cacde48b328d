package dfs

import (
	"hash/fnv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/types"
)

// Code is a DFS code: the steps of one discovery order of a pattern. The
// empty code is the single vertex start state.
type Code []Step

// Extend returns a new code with s appended. The receiver is not modified so
// a parent may be shared by many children.
func (c Code) Extend(s Step) Code {
	kid := make(Code, len(c), len(c)+1)
	copy(kid, c)
	return append(kid, s)
}

func (c Code) EdgeCount() int {
	return len(c)
}

// RightmostVertex is the discovery time of the last discovered vertex.
func (c Code) RightmostVertex() int {
	r := 0
	for _, s := range c {
		if s.Forward() && s.ToTime > r {
			r = s.ToTime
		}
	}
	return r
}

func (c Code) VertexCount() int {
	if len(c) == 0 {
		return 0
	}
	return c.RightmostVertex() + 1
}

// RightmostPath lists the discovery times on the path from the rightmost
// vertex back to the root, rightmost vertex first.
func (c Code) RightmostPath() []int {
	if len(c) == 0 {
		return nil
	}
	cur := c.RightmostVertex()
	path := make([]int, 0, cur+1)
	path = append(path, cur)
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Forward() && c[i].ToTime == cur {
			cur = c[i].FromTime
			path = append(path, cur)
		}
	}
	return path
}

// VertexLabels maps discovery times to vertex labels.
func (c Code) VertexLabels() []int {
	labels := make([]int, c.VertexCount())
	for _, s := range c {
		labels[s.FromTime] = s.FromLabel
		labels[s.ToTime] = s.ToLabel
	}
	return labels
}

// Valid checks the structural rules every grown code satisfies. Labels are
// never negative. Forward steps discover exactly the next vertex from an
// already discovered one. Backward steps connect two discovered vertices
// whose labels agree with earlier steps.
func (c Code) Valid() error {
	if len(c) == 0 {
		return nil
	}
	if c[0].FromTime != 0 || c[0].ToTime != 1 {
		return errors.Errorf("first step %v must be (0,1)", c[0])
	}
	for i, s := range c {
		if s.FromLabel < 0 || s.EdgeLabel < 0 || s.ToLabel < 0 {
			return errors.Errorf("step %d %v has a negative label", i, s)
		}
	}
	labels := map[int]int{0: c[0].FromLabel, 1: c[0].ToLabel}
	next := 2
	for i := 1; i < len(c); i++ {
		s := c[i]
		from, has := labels[s.FromTime]
		if !has {
			return errors.Errorf("step %d %v starts at an undiscovered vertex", i, s)
		} else if from != s.FromLabel {
			return errors.Errorf("step %d %v disagrees on the label of %d", i, s, s.FromTime)
		}
		if s.Forward() {
			if s.ToTime != next {
				return errors.Errorf("step %d %v must discover vertex %d", i, s, next)
			}
			labels[s.ToTime] = s.ToLabel
			next++
		} else if s.Backward() {
			if to, has := labels[s.ToTime]; !has || to != s.ToLabel {
				return errors.Errorf("step %d %v is a bad backward step", i, s)
			}
		} else {
			return errors.Errorf("step %d %v is a self loop", i, s)
		}
	}
	return nil
}

// LabelsWithin fails when a step uses a vertex label outside [0, vertices)
// or an edge label outside [0, edges).
func (c Code) LabelsWithin(vertices, edges int) error {
	for i, s := range c {
		if s.FromLabel < 0 || s.FromLabel >= vertices || s.ToLabel < 0 || s.ToLabel >= vertices {
			return errors.Errorf("step %d %v has an unknown vertex label", i, s)
		} else if s.EdgeLabel < 0 || s.EdgeLabel >= edges {
			return errors.Errorf("step %d %v has an unknown edge label", i, s)
		}
	}
	return nil
}

// Compare compares codes step by step. A proper prefix is smaller than any
// of its extensions.
func Compare(a, b Code) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := CompareSteps(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a), len(b))
}

func (c Code) Equals(o types.Equatable) bool {
	b, ok := o.(Code)
	if !ok || len(c) != len(b) {
		return false
	}
	for i := range c {
		if c[i] != b[i] {
			return false
		}
	}
	return true
}

func (c Code) Less(o types.Sortable) bool {
	b, ok := o.(Code)
	if !ok {
		return false
	}
	return Compare(c, b) < 0
}

func (c Code) Hash() int {
	h := fnv.New32a()
	buf := make([]byte, 0, 24)
	for _, s := range c {
		buf = buf[:0]
		for _, x := range [...]int{s.FromTime, s.ToTime, s.FromLabel, s.EdgeLabel, s.ToLabel} {
			buf = append(buf, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
		}
		if s.Outgoing {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		h.Write(buf)
	}
	return int(h.Sum32())
}

func (c Code) String() string {
	steps := make([]string, 0, len(c))
	for _, s := range c {
		steps = append(steps, s.String())
	}
	return "[" + strings.Join(steps, "") + "]"
}
