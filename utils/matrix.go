package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a dense gonum matrix with a write guard, used for data that
// is fixed once loaded, like mesh coordinates.
type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:    m,
		name: "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

func (m Matrix) Rows() int        { return m.M.RawMatrix().Rows }
func (m Matrix) Cols() int        { return m.M.RawMatrix().Cols }
func (m Matrix) Data() []float64  { return m.RawMatrix().Data }
func (m Matrix) Name() string     { return m.name }
func (m Matrix) IsReadOnly() bool { return m.readOnly }

func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) (row []float64) {
	var (
		nr, nc = m.Dims()
	)
	if i < 0 || i >= nr {
		panic(fmt.Errorf("row index %d out of bounds, max_bounds = %d", i, nr-1))
	}
	row = make([]float64, nc)
	copy(row, m.M.RawRowView(i))
	return
}

// ColumnRange returns the minimum and maximum of column j.
func (m Matrix) ColumnRange(j int) (min, max float64) {
	for i := 0; i < m.Rows(); i++ {
		val := m.At(i, j)
		if i == 0 || val < min {
			min = val
		}
		if i == 0 || val > max {
			max = val
		}
	}
	return
}

func (m Matrix) checkWritable() {
	if m.IsReadOnly() {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.Name())
		panic(err)
	}
}
