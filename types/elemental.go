package types

import (
	"fmt"
	"math"
	"sort"
)

// EdgeKey names an undirected edge between two point indices. The lower
// index sits in the low 32 bits, so both traversal directions share a key
// and keys sort by their upper point.
type EdgeKey uint64

func NewEdgeKey(p0, p1 int) EdgeKey {
	if p0 < 0 || p1 < 0 || p0 > math.MaxUint32 || p1 > math.MaxUint32 {
		panic(fmt.Errorf("edge points %d and %d do not fit in 32 bits", p0, p1))
	}
	if p1 < p0 {
		p0, p1 = p1, p0
	}
	return EdgeKey(uint64(p1)<<32 | uint64(p0))
}

// Points returns the edge points in ascending order.
func (ek EdgeKey) Points() (lo, hi int) {
	return int(ek & math.MaxUint32), int(ek >> 32)
}

func (ek EdgeKey) String() string {
	lo, hi := ek.Points()
	return fmt.Sprintf("%d-%d", lo, hi)
}

// EdgeCount tallies how many cells or markers reference each edge.
type EdgeCount map[EdgeKey]int

// AddLoop counts the closing polygon edges through points.
func (ec EdgeCount) AddLoop(points []int) {
	for i, p := range points {
		ec[NewEdgeKey(p, points[(i+1)%len(points)])]++
	}
}

// Keys returns the sorted edges seen exactly n times.
func (ec EdgeCount) Keys(n int) (keys []EdgeKey) {
	for ek, count := range ec {
		if count == n {
			keys = append(keys, ek)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return
}
