package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	K := NewDOK(4, 4)
	K.AddBlock(Index{0, 1}, Index{2, 3}, []float64{
		1, 2,
		3, 4,
	})
	K.AddBlock(Index{2, 3}, Index{0, 1}, []float64{
		1, 3,
		2, 4,
	})
	K.Add(0, 0, 5).Add(0, 0, 1)
	assert.Equal(t, 6., K.At(0, 0))
	assert.Equal(t, 2., K.At(0, 3))
	assert.Equal(t, 9, K.NNZ())
	assert.Panics(t, func() { K.AddBlock(Index{0}, Index{0}, []float64{1, 2}) })
	C := K.ToCSR()
	assert.Equal(t, 9, C.NNZ())
	assert.Equal(t, 0., C.MaxAsymmetry())
	assert.Equal(t, []float64{6 + 1 + 2, 3 + 4, 1 + 3, 2 + 4}, C.MulVec([]float64{1, 1, 1, 1}))
	K.Add(1, 0, 0.5)
	assert.Equal(t, 0.5, K.ToCSR().MaxAsymmetry())
	K.SetReadOnly("K")
	assert.Panics(t, func() { K.Add(0, 0, 1) })
}
