package t2048

import "math/bits"

// CellSet is a set of linear cell indices in [0, CellCount).
type CellSet uint16

// AllCells returns the set containing every index.
func AllCells() CellSet {
	return CellSet(1<<CellCount - 1)
}

// Add inserts i into the set.
func (s *CellSet) Add(i int) {
	*s |= 1 << uint(i)
}

// Remove deletes i from the set.
func (s *CellSet) Remove(i int) {
	*s &^= 1 << uint(i)
}

// Has reports whether i is in the set.
func (s CellSet) Has(i int) bool {
	if i < 0 || i >= CellCount {
		return false
	}
	return s&(1<<uint(i)) != 0
}

// Len returns the number of members.
func (s CellSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Nth returns the k-th member in ascending order, or -1 if k is out of range.
func (s CellSet) Nth(k int) int {
	if k < 0 {
		return -1
	}
	rest := uint16(s)
	for rest != 0 {
		i := bits.TrailingZeros16(rest)
		if k == 0 {
			return i
		}
		k--
		rest &^= 1 << uint(i)
	}
	return -1
}

// Indices returns the members in ascending order.
func (s CellSet) Indices() []int {
	out := make([]int, 0, s.Len())
	for i := range CellCount {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// emptyCells scans the grid and returns the set of empty indices.
func emptyCells(g Grid) CellSet {
	var s CellSet
	for y := range BoardSize {
		for x := range BoardSize {
			if g[y][x].IsEmpty() {
				s.Add(y*BoardSize + x)
			}
		}
	}
	return s
}
