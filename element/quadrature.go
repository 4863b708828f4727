package element

import (
	"fmt"
	"math"
	"strings"
)

type ElementType uint8

const (
	TRIA1 ElementType = iota
	QUAD4
	TETRA1
	HEXA8
)

var elementTypeNames = map[ElementType]string{
	TRIA1:  "TRIA1",
	QUAD4:  "QUAD4",
	TETRA1: "TETRA1",
	HEXA8:  "HEXA8",
}

func (et ElementType) String() string {
	if name, ok := elementTypeNames[et]; ok {
		return name
	}
	return fmt.Sprintf("ElementType(%d)", uint8(et))
}

func NewElementType(label string) (et ElementType, err error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for key, name := range elementTypeNames {
		if name == label {
			et = key
			return
		}
	}
	err = fmt.Errorf("unknown element type [%s]", label)
	return
}

// QuadratureRule holds the parent space integration data of an element
// family. Rules are built once at package init and never written after.
type QuadratureRule struct {
	et        ElementType
	nNodes    int
	nGauss    int
	parentDim int
	affine    bool

	parentCoord [][]float64   // [g][k]
	weight      []float64     // [g]
	n           [][]float64   // [g][node]
	dNdXi       [][][]float64 // [g][node][k]
}

func (qr *QuadratureRule) Type() ElementType { return qr.et }
func (qr *QuadratureRule) NNodes() int       { return qr.nNodes }
func (qr *QuadratureRule) NGauss() int       { return qr.nGauss }
func (qr *QuadratureRule) ParentDim() int    { return qr.parentDim }

// Affine rules have constant shape function gradients in parent space, so
// the Jacobian is the same at every quadrature point.
func (qr *QuadratureRule) Affine() bool { return qr.affine }

func (qr *QuadratureRule) Weight(g int) float64 { return qr.weight[g] }

func (qr *QuadratureRule) ParentCoord(g, k int) float64 { return qr.parentCoord[g][k] }

// Ni is the value of the shape function of node at quadrature point g.
func (qr *QuadratureRule) Ni(node, g int) float64 { return qr.n[g][node] }

// DNi is the derivative of the shape function of node with respect to
// parent coordinate k at quadrature point g.
func (qr *QuadratureRule) DNi(node, g, k int) float64 { return qr.dNdXi[g][node][k] }

var rules = map[ElementType]*QuadratureRule{
	TRIA1:  newTria1Rule(),
	QUAD4:  newQuad4Rule(),
	TETRA1: newTetra1Rule(),
	HEXA8:  newHexa8Rule(),
}

func RuleFor(et ElementType) (qr *QuadratureRule, err error) {
	var ok bool
	if qr, ok = rules[et]; !ok {
		err = fmt.Errorf("no quadrature rule for element type %s", et)
	}
	return
}

func newRule(et ElementType, nNodes, nGauss, parentDim int, affine bool) (qr *QuadratureRule) {
	qr = &QuadratureRule{
		et:          et,
		nNodes:      nNodes,
		nGauss:      nGauss,
		parentDim:   parentDim,
		affine:      affine,
		parentCoord: make([][]float64, nGauss),
		weight:      make([]float64, nGauss),
		n:           make([][]float64, nGauss),
		dNdXi:       make([][][]float64, nGauss),
	}
	for g := 0; g < nGauss; g++ {
		qr.parentCoord[g] = make([]float64, parentDim)
		qr.n[g] = make([]float64, nNodes)
		qr.dNdXi[g] = make([][]float64, nNodes)
		for node := 0; node < nNodes; node++ {
			qr.dNdXi[g][node] = make([]float64, parentDim)
		}
	}
	return
}

// Linear triangle on the parent triangle (0,0),(1,0),(0,1), one point at
// the centroid.
func newTria1Rule() (qr *QuadratureRule) {
	qr = newRule(TRIA1, 3, 1, 2, true)
	xi, eta := 1./3., 1./3.
	qr.parentCoord[0][0], qr.parentCoord[0][1] = xi, eta
	qr.weight[0] = 0.5
	qr.n[0][0] = 1. - xi - eta
	qr.n[0][1] = xi
	qr.n[0][2] = eta
	copy(qr.dNdXi[0][0], []float64{-1, -1})
	copy(qr.dNdXi[0][1], []float64{1, 0})
	copy(qr.dNdXi[0][2], []float64{0, 1})
	return
}

// Bilinear quadrilateral on [-1,1]^2 with the 2x2 Gauss rule.
func newQuad4Rule() (qr *QuadratureRule) {
	var (
		a      = 1. / math.Sqrt(3.)
		nodeXi = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		gpXi   = [4][2]float64{{-a, -a}, {a, -a}, {a, a}, {-a, a}}
	)
	qr = newRule(QUAD4, 4, 4, 2, false)
	for g, gp := range gpXi {
		qr.parentCoord[g][0], qr.parentCoord[g][1] = gp[0], gp[1]
		qr.weight[g] = 1.
		for node, nx := range nodeXi {
			fx, fy := 1.+nx[0]*gp[0], 1.+nx[1]*gp[1]
			qr.n[g][node] = 0.25 * fx * fy
			qr.dNdXi[g][node][0] = 0.25 * nx[0] * fy
			qr.dNdXi[g][node][1] = 0.25 * fx * nx[1]
		}
	}
	return
}

// Linear tetrahedron on the parent tetrahedron with vertices at the origin
// and the unit axis points, one point at the centroid.
func newTetra1Rule() (qr *QuadratureRule) {
	qr = newRule(TETRA1, 4, 1, 3, true)
	xi, eta, zeta := 0.25, 0.25, 0.25
	copy(qr.parentCoord[0], []float64{xi, eta, zeta})
	qr.weight[0] = 1. / 6.
	qr.n[0][0] = 1. - xi - eta - zeta
	qr.n[0][1] = xi
	qr.n[0][2] = eta
	qr.n[0][3] = zeta
	copy(qr.dNdXi[0][0], []float64{-1, -1, -1})
	copy(qr.dNdXi[0][1], []float64{1, 0, 0})
	copy(qr.dNdXi[0][2], []float64{0, 1, 0})
	copy(qr.dNdXi[0][3], []float64{0, 0, 1})
	return
}

// Trilinear hexahedron on [-1,1]^3 with the 2x2x2 Gauss rule. Nodes 0-3
// are the bottom face counter-clockwise, 4-7 the top face above them.
func newHexa8Rule() (qr *QuadratureRule) {
	var (
		a      = 1. / math.Sqrt(3.)
		nodeXi = [8][3]float64{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		}
	)
	qr = newRule(HEXA8, 8, 8, 3, false)
	for g, gp := range nodeXi {
		for k := 0; k < 3; k++ {
			qr.parentCoord[g][k] = a * gp[k]
		}
		qr.weight[g] = 1.
		xi := qr.parentCoord[g]
		for node, nx := range nodeXi {
			f := [3]float64{1. + nx[0]*xi[0], 1. + nx[1]*xi[1], 1. + nx[2]*xi[2]}
			qr.n[g][node] = 0.125 * f[0] * f[1] * f[2]
			qr.dNdXi[g][node][0] = 0.125 * nx[0] * f[1] * f[2]
			qr.dNdXi[g][node][1] = 0.125 * f[0] * nx[1] * f[2]
			qr.dNdXi[g][node][2] = 0.125 * f[0] * f[1] * nx[2]
		}
	}
	return
}

// Dim is the parent space dimension of the element family.
func (et ElementType) Dim() int {
	if et == TETRA1 || et == HEXA8 {
		return 3
	}
	return 2
}
