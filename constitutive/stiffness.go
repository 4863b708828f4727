package constitutive

import (
	"fmt"

	"github.com/notargets/gofea/element"
	"gonum.org/v1/gonum/mat"
)

// BMatrix is the strain-displacement operator of one node from its
// physical shape function gradient.
func BMatrix(grad []float64, dim int) (B *mat.Dense) {
	switch dim {
	case 2:
		B = mat.NewDense(3, 2, []float64{
			grad[0], 0,
			0, grad[1],
			grad[1], grad[0],
		})
	case 3:
		B = mat.NewDense(6, 3, []float64{
			grad[0], 0, 0,
			0, grad[1], 0,
			0, 0, grad[2],
			grad[1], grad[0], 0,
			0, grad[2], grad[1],
			grad[2], 0, grad[0],
		})
	default:
		panic(fmt.Errorf("no strain operator for dimension %d", dim))
	}
	return
}

// StiffnessBlock returns B_a^T D B_b row-major.
func StiffnessBlock(D mat.Matrix, gradA, gradB []float64, dim int) (block []float64) {
	var (
		Ba, Bb = BMatrix(gradA, dim), BMatrix(gradB, dim)
		DBb    mat.Dense
	)
	DBb.Mul(D, Bb)
	K := mat.NewDense(dim, dim, nil)
	K.Mul(Ba.T(), &DBb)
	block = K.RawMatrix().Data
	return
}

// GeometricBlock is the initial stress coupling (gradA . sigma . gradB) I
// for a row-major Cauchy stress sigma.
func GeometricBlock(gradA, gradB, sigma []float64, dim int) (block []float64) {
	var s float64
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			s += gradA[i] * sigma[i*dim+j] * gradB[j]
		}
	}
	block = make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		block[i*dim+i] = s
	}
	return
}

// Accumulate integrates the element stiffness into the blocks of el. The
// last gradient computation of el must be of the requested configuration. Each
// node pair a <= b is evaluated once and registered with its transpose.
// A non nil prestress adds the initial stress term.
func (le *LinearElastic) Accumulate(el element.Element, cfg element.Configuration, prestress []float64) (err error) {
	var (
		dim    = el.Dim()
		nNodes = el.NodeCount()
		D      = le.D(dim)
		grads  = make([][]float64, nNodes)
	)
	if gradCfg, ok := el.GradConfig(); !ok || gradCfg != cfg {
		err = fmt.Errorf("%s element has no %s configuration gradients", el.Type(), cfg)
		return
	}
	if prestress != nil && len(prestress) != dim*dim {
		err = fmt.Errorf("prestress has %d components, need %d", len(prestress), dim*dim)
		return
	}
	for node := range grads {
		grads[node] = make([]float64, dim)
	}
	for g := 0; g < el.GaussPointCount(); g++ {
		var detJ float64
		if cfg == element.Current {
			detJ = el.Jx(g)
		} else {
			detJ = el.JX(g)
		}
		factor := el.Weight(g) * detJ * le.IntegrationFactor(dim)
		for node := 0; node < nNodes; node++ {
			for i := 0; i < dim; i++ {
				grads[node][i] = el.GradNiX(node, g, i)
			}
		}
		for a := 0; a < nNodes; a++ {
			for b := a; b < nNodes; b++ {
				K := StiffnessBlock(D, grads[a], grads[b], dim)
				if prestress != nil {
					Kg := GeometricBlock(grads[a], grads[b], prestress, dim)
					for i := range K {
						K[i] += Kg[i]
					}
				}
				for i := range K {
					K[i] *= factor
				}
				el.AddKab(K, a, b)
				if a != b {
					el.AddKabT(K, b, a)
				}
			}
		}
	}
	return
}
