package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Edge keys do not depend on direction
		ek := NewEdgeKey(1, 0)
		assert.Equal(t, EdgeKey(1<<32), ek)
		assert.Equal(t, ek, NewEdgeKey(0, 1))
		lo, hi := NewEdgeKey(100, 100001).Points()
		assert.Equal(t, [2]int{100, 100001}, [2]int{lo, hi})
		assert.Equal(t, "3-7", NewEdgeKey(7, 3).String())
		// Largest representable points
		ek = NewEdgeKey(1<<32-1, 1<<32-1)
		assert.Equal(t, EdgeKey(1<<64-1), ek)
		lo, hi = NewEdgeKey(1<<32-1, 1).Points()
		assert.Equal(t, [2]int{1, 1<<32 - 1}, [2]int{lo, hi})
		assert.Panics(t, func() { NewEdgeKey(-1, 2) })
		assert.Panics(t, func() { NewEdgeKey(0, 1<<32) })
	}
	{ // Edges shared by two quads of a strip are interior
		ec := make(EdgeCount)
		ec.AddLoop([]int{0, 1, 4, 3})
		ec.AddLoop([]int{1, 2, 5, 4})
		assert.Equal(t, []EdgeKey{NewEdgeKey(1, 4)}, ec.Keys(2))
		boundary := ec.Keys(1)
		assert.Equal(t, 6, len(boundary))
		assert.Equal(t, NewEdgeKey(0, 1), boundary[0])
		assert.Empty(t, ec.Keys(3))
	}
	{ // Marker tags
		tokens := []string{"FIXED", "Symmetry-1", "Load-top", "Fixed-22", "clamped-left", "top", "Free-10"}
		flags := []BCFLAG{BC_Fixed, BC_Symmetry, BC_Load, BC_Fixed, BC_Fixed, BC_None, BC_Free}
		labels := []string{"", "1", "top", "22", "left", "top", "10"}
		for i, token := range tokens {
			bt := NewBCTAG(token)
			fmt.Printf("bt = %s, bcflag = %v\n", bt, bt.GetFLAG().String())
			assert.Equal(t, flags[i], bt.GetFLAG())
			assert.Equal(t, labels[i], bt.GetLabel())
		}
		assert.Equal(t, "BCFLAG(42)", BCFLAG(42).String())
	}
	{ // Growing slices
		s := GrowSlice([]int{1, 2}, 4)
		assert.Equal(t, []int{1, 2, 0, 0}, s)
		assert.Equal(t, 2, len(GrowSlice([]float64{1, 2}, 1)))
	}
}
