package dfs

import (
	"fmt"
)

// Step is a single edge of a DFS code. FromTime and ToTime are discovery
// times, not vertex ids. Outgoing is true when the edge points from the
// FromTime vertex to the ToTime vertex. Undirected codes always carry
// Outgoing == true.
type Step struct {
	FromTime, ToTime               int
	FromLabel, EdgeLabel, ToLabel int
	Outgoing                       bool
}

func (s Step) Forward() bool {
	return s.ToTime > s.FromTime
}

func (s Step) Backward() bool {
	return s.ToTime < s.FromTime
}

// CompareSteps orders steps for the minimum DFS code test. Backward steps
// come before forward steps. Forward steps prefer the deepest source vertex
// (the rightmost path rule).
func CompareSteps(a, b Step) int {
	af, bf := a.Forward(), b.Forward()
	if !af && bf {
		return -1
	} else if af && !bf {
		return 1
	} else if !af && !bf {
		if c := compareInt(a.FromTime, b.FromTime); c != 0 {
			return c
		} else if c := compareInt(a.ToTime, b.ToTime); c != 0 {
			return c
		} else if c := compareInt(a.EdgeLabel, b.EdgeLabel); c != 0 {
			return c
		} else if c := compareInt(a.ToLabel, b.ToLabel); c != 0 {
			return c
		} else if c := compareInt(a.FromLabel, b.FromLabel); c != 0 {
			return c
		}
		return compareDirection(a.Outgoing, b.Outgoing)
	}
	if c := compareInt(a.ToTime, b.ToTime); c != 0 {
		return c
	} else if c := compareInt(b.FromTime, a.FromTime); c != 0 {
		return c
	} else if c := compareInt(a.FromLabel, b.FromLabel); c != 0 {
		return c
	} else if c := compareInt(a.EdgeLabel, b.EdgeLabel); c != 0 {
		return c
	} else if c := compareInt(a.ToLabel, b.ToLabel); c != 0 {
		return c
	}
	return compareDirection(a.Outgoing, b.Outgoing)
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// outgoing before incoming
func compareDirection(a, b bool) int {
	if a == b {
		return 0
	} else if a {
		return -1
	}
	return 1
}

func (s Step) String() string {
	arrow := "->"
	if !s.Outgoing {
		arrow = "<-"
	}
	return fmt.Sprintf(
		"(%v:%v)%v%v(%v:%v)",
		s.FromTime, s.FromLabel,
		arrow, s.EdgeLabel,
		s.ToTime, s.ToLabel,
	)
}
