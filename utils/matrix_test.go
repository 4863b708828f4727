package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Rows
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, 2, M.Rows())
		assert.Equal(t, 3, M.Cols())
		row := M.Row(1)
		assert.Equal(t, []float64{4, 5, 6}, row)
		row[0] = 10
		assert.Equal(t, 4., M.At(1, 0))
		assert.Panics(t, func() { M.Row(2) })
	}
	// Read only
	{
		M := NewMatrix(2, 2)
		M.Set(1, 1, 2)
		M.SetReadOnly("coords")
		assert.True(t, M.IsReadOnly())
		assert.Equal(t, "coords", M.Name())
		assert.Equal(t, 2., M.At(1, 1))
		assert.PanicsWithError(t, `attempt to write to a read only matrix named: "coords"`, func() { M.Set(0, 0, 1) })
	}
	// Column range
	{
		M := NewMatrix(3, 2, []float64{
			0, 5,
			-2, 1,
			4, 3,
		})
		min, max := M.ColumnRange(0)
		assert.Equal(t, -2., min)
		assert.Equal(t, 4., max)
		min, max = M.ColumnRange(1)
		assert.Equal(t, 1., min)
		assert.Equal(t, 5., max)
	}
	// NaN detection
	{
		M := NewMatrix(1, 2, []float64{1, math.NaN()})
		assert.True(t, IsNan(M))
		assert.True(t, IsNan([]float64{0, math.NaN()}))
		assert.False(t, IsNan([]float64{0, 1}))
		assert.False(t, IsNan(1.))
	}
	assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
}

func TestIndex(t *testing.T) {
	assert.Equal(t, Index{6, 7, 8}, NodalDOFs(2, 3))
	assert.Equal(t, Index{2, 3}, NodalDOFs(1, 2))
	assert.Equal(t, Index{4, 5, 6}, NewRange(4, 6))
}
