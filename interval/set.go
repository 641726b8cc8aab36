package interval

import (
	"math"
	"sort"
)

// PosType is the coordinate type.  GFF3 coordinates are not bounded by the
// BAM limit, so this is 64 bits wide.
type PosType int64

// PosTypeMax is the largest representable position.
const PosTypeMax = math.MaxInt64

// Set is a sorted sequence of disjoint, non-empty, non-touching half-open
// intervals, stored as endpoints.  The zero Set is empty.
type Set []PosType

// NewSet returns the set containing the single interval [start, end).  It is
// empty if end <= start.
func NewSet(start, end PosType) Set {
	if end <= start {
		return nil
	}
	return Set{start, end}
}

// Empty reports whether s contains no positions.
func (s Set) Empty() bool { return len(s) == 0 }

// Len returns the number of positions in s.
func (s Set) Len() PosType {
	var n PosType
	for i := 0; i < len(s); i += 2 {
		n += s[i+1] - s[i]
	}
	return n
}

// searchPosType returns the index of x in a[], or the position where x would
// be inserted if x isn't in a (this could be len(a)).  It's exactly the same
// as sort.SearchInt(), except for PosType.
func searchPosType(a []PosType, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

// Contains reports whether [pos, pos+1) is in s.
func (s Set) Contains(pos PosType) bool {
	// An odd insertion point for pos+1 means pos+1 lies in (start, end].
	return searchPosType(s, pos+1)&1 == 1
}

// Intersect returns the intersection of a and b.
func Intersect(a, b Set) Set {
	var out Set
	for i, j := 0, 0; i < len(a) && j < len(b); {
		lo, hi := a[i], a[i+1]
		if b[j] > lo {
			lo = b[j]
		}
		if b[j+1] < hi {
			hi = b[j+1]
		}
		if lo < hi {
			out = append(out, lo, hi)
		}
		if a[i+1] < b[j+1] {
			i += 2
		} else {
			j += 2
		}
	}
	return out
}

// Union returns the union of a and b.
func Union(a, b Set) Set {
	var (
		out                Set
		prevStart, prevEnd PosType
		started            bool
		i, j               int
	)
	for i < len(a) || j < len(b) {
		var start, end PosType
		if j >= len(b) || (i < len(a) && a[i] <= b[j]) {
			start, end = a[i], a[i+1]
			i += 2
		} else {
			start, end = b[j], b[j+1]
			j += 2
		}
		if !started {
			prevStart, prevEnd, started = start, end, true
			continue
		}
		if start > prevEnd {
			// New interval doesn't overlap previous one, so we can save the previous
			// one.
			out = append(out, prevStart, prevEnd)
			prevStart, prevEnd = start, end
		} else if end > prevEnd {
			// Intervals overlap, merge them.
			prevEnd = end
		}
	}
	if started {
		out = append(out, prevStart, prevEnd)
	}
	return out
}

// Overlaps reports whether a and b share at least one position.
func Overlaps(a, b Set) bool {
	return !Intersect(a, b).Empty()
}
