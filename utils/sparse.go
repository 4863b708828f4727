package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is a dictionary of keys sparse matrix used for incremental
// construction, converted to CSR for arithmetic.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// Add sums val into entry (i, j).
func (m DOK) Add(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

// AddBlock sums a row-major block into the rows I and columns J.
func (m DOK) AddBlock(I, J Index, block []float64) DOK { // Changes receiver
	if len(I)*len(J) != len(block) {
		err := fmt.Errorf("block of length %d does not match index lengths %d x %d", len(block), len(I), len(J))
		panic(err)
	}
	for ii, i := range I {
		for jj, j := range J {
			m.Add(i, j, block[ii*len(J)+jj])
		}
	}
	return m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is the compressed sparse row form of an assembled matrix.
type CSR struct {
	M    *sparse.CSR
	name string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

// MulVec returns M x.
func (m CSR) MulVec(x []float64) (y []float64) {
	var (
		nr, nc = m.Dims()
		yV     mat.VecDense
	)
	if len(x) != nc {
		panic(fmt.Errorf("vector length %d does not match matrix columns %d", len(x), nc))
	}
	yV.MulVec(m.M, mat.NewVecDense(nc, x))
	y = make([]float64, nr)
	copy(y, yV.RawVector().Data)
	return
}

// MaxAsymmetry returns max |M(i,j) - M(j,i)| over the stored entries.
func (m CSR) MaxAsymmetry() (maxDiff float64) {
	m.M.DoNonZero(func(i, j int, v float64) {
		diff := v - m.M.At(j, i)
		if diff < 0 {
			diff = -diff
		}
		if diff > maxDiff {
			maxDiff = diff
		}
	})
	return
}
