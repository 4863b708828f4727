package element

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Element is the contract shared by every isoparametric element kernel.
// Only the quadrature data and the way gradients are evaluated differ
// between the concrete types.
type Element interface {
	Analysis() *Analysis
	Type() ElementType
	Rule() *QuadratureRule
	Dim() int
	NodeCount() int
	GaussPointCount() int

	SetRefCoord(val float64, node, dim int)
	SetCurrCoord(val float64, node, dim int)
	SetRefCoords(node int, x []float64)
	SetCurrCoords(node int, x []float64)
	ResetCurrToRef()
	RefCoord(node, dim int) float64
	CurrCoord(node, dim int) float64

	ComputeGradLinear() error
	ComputeGradNonLinear() error

	Weight(g int) float64
	Ni(node, g int) float64
	JX(g int) float64
	Jx(g int) float64
	GradNiX(node, g, dim int) float64
	GradConfig() (cfg Configuration, ok bool)
	GaussCoord(g, dim int) float64
	Volume(cfg Configuration) float64

	AddKab(block []float64, nodeA, nodeB int)
	AddKabT(block []float64, nodeA, nodeB int)
	Kab(nodeA, nodeB int) []float64
	Clear()
}

// New builds an element of the given type for the analysis.
func New(a *Analysis, et ElementType) (el Element, err error) {
	switch et {
	case TRIA1:
		var tri *Tria1
		if tri, err = NewTria1(a); err == nil {
			el = tri
		}
	case QUAD4:
		var quad *Quad4
		if quad, err = NewQuad4(a); err == nil {
			el = quad
		}
	case TETRA1:
		var tet *Tetra1
		if tet, err = NewTetra1(a); err == nil {
			el = tet
		}
	case HEXA8:
		var hex *Hexa8
		if hex, err = NewHexa8(a); err == nil {
			el = hex
		}
	default:
		err = fmt.Errorf("unable to build element of type %s", et)
	}
	return
}

// GaussPoint is the derived state of one quadrature point, recomputed in
// place by every gradient computation.
type GaussPoint struct {
	gradNi []float64 // [node*dim + i]
	jX, jx float64
}

type base struct {
	analysis            *Analysis
	rule                *QuadratureRule
	dim, nNodes, nGauss int
	refCoord, currCoord []float64 // [node*dim + i]
	refSet, currSet     []bool
	nRefSet, nCurrSet   int
	gauss               []GaussPoint
	kab                 []float64 // [((a*nNodes + b)*dim + i)*dim + j]
	refValid, currValid bool
	gradValid           bool
	gradCfg             Configuration // producer of the stored gradients
	jac, jacInv         *mat.Dense
}

func newBase(a *Analysis, et ElementType) (b base, err error) {
	var (
		qr *QuadratureRule
	)
	if a == nil {
		err = fmt.Errorf("element %s needs an analysis context", et)
		return
	}
	if qr, err = RuleFor(et); err != nil {
		return
	}
	if qr.ParentDim() != a.Dim() {
		err = fmt.Errorf("element %s is %d dimensional, analysis dimension is %d",
			et, qr.ParentDim(), a.Dim())
		return
	}
	var (
		dim    = a.Dim()
		nNodes = qr.NNodes()
		nGauss = qr.NGauss()
	)
	b = base{
		analysis:  a,
		rule:      qr,
		dim:       dim,
		nNodes:    nNodes,
		nGauss:    nGauss,
		refCoord:  make([]float64, nNodes*dim),
		currCoord: make([]float64, nNodes*dim),
		refSet:    make([]bool, nNodes*dim),
		currSet:   make([]bool, nNodes*dim),
		gauss:     make([]GaussPoint, nGauss),
		kab:       make([]float64, nNodes*nNodes*dim*dim),
		jac:       mat.NewDense(dim, dim, nil),
		jacInv:    mat.NewDense(dim, dim, nil),
	}
	for g := range b.gauss {
		b.gauss[g].gradNi = make([]float64, nNodes*dim)
	}
	return
}

func (b *base) Analysis() *Analysis   { return b.analysis }
func (b *base) Type() ElementType     { return b.rule.Type() }
func (b *base) Rule() *QuadratureRule { return b.rule }
func (b *base) Dim() int              { return b.dim }
func (b *base) NodeCount() int        { return b.nNodes }
func (b *base) GaussPointCount() int  { return b.nGauss }

func (b *base) checkNode(node int) {
	if node < 0 || node >= b.nNodes {
		contractViolation("node index %d out of range for %s element with %d nodes",
			node, b.rule.Type(), b.nNodes)
	}
}

func (b *base) checkDim(dim int) {
	if dim < 0 || dim >= b.dim {
		contractViolation("dimension index %d out of range, analysis dimension is %d", dim, b.dim)
	}
}

func (b *base) checkGauss(g int) {
	if g < 0 || g >= b.nGauss {
		contractViolation("gauss point index %d out of range for %s element with %d points",
			g, b.rule.Type(), b.nGauss)
	}
}

func (b *base) coordIndex(node, dim int) int {
	b.checkNode(node)
	b.checkDim(dim)
	return node*b.dim + dim
}

func (b *base) SetRefCoord(val float64, node, dim int) {
	ind := b.coordIndex(node, dim)
	b.refCoord[ind] = val
	if !b.refSet[ind] {
		b.refSet[ind] = true
		b.nRefSet++
	}
}

func (b *base) SetCurrCoord(val float64, node, dim int) {
	ind := b.coordIndex(node, dim)
	b.currCoord[ind] = val
	if !b.currSet[ind] {
		b.currSet[ind] = true
		b.nCurrSet++
	}
}

func (b *base) SetRefCoords(node int, x []float64) {
	if len(x) != b.dim {
		contractViolation("coordinate row has length %d, analysis dimension is %d", len(x), b.dim)
	}
	for i, val := range x {
		b.SetRefCoord(val, node, i)
	}
}

func (b *base) SetCurrCoords(node int, x []float64) {
	if len(x) != b.dim {
		contractViolation("coordinate row has length %d, analysis dimension is %d", len(x), b.dim)
	}
	for i, val := range x {
		b.SetCurrCoord(val, node, i)
	}
}

// ResetCurrToRef places the current configuration on the reference one.
func (b *base) ResetCurrToRef() {
	b.requireCoords(Reference)
	copy(b.currCoord, b.refCoord)
	for i := range b.currSet {
		b.currSet[i] = true
	}
	b.nCurrSet = len(b.currSet)
}

func (b *base) RefCoord(node, dim int) float64  { return b.refCoord[b.coordIndex(node, dim)] }
func (b *base) CurrCoord(node, dim int) float64 { return b.currCoord[b.coordIndex(node, dim)] }

func (b *base) Weight(g int) float64 {
	b.checkGauss(g)
	return b.rule.Weight(g)
}

func (b *base) Ni(node, g int) float64 {
	b.checkNode(node)
	b.checkGauss(g)
	return b.rule.Ni(node, g)
}

func (b *base) JX(g int) float64 {
	b.checkGauss(g)
	if !b.refValid {
		contractViolation("reference Jacobian of %s element requested before ComputeGradLinear", b.rule.Type())
	}
	return b.gauss[g].jX
}

func (b *base) Jx(g int) float64 {
	b.checkGauss(g)
	if !b.currValid {
		contractViolation("current Jacobian of %s element requested before ComputeGradNonLinear", b.rule.Type())
	}
	return b.gauss[g].jx
}

func (b *base) GradNiX(node, g, dim int) float64 {
	b.checkGauss(g)
	ind := b.coordIndex(node, dim)
	if !b.gradValid {
		contractViolation("shape function gradients of %s element requested before computation", b.rule.Type())
	}
	return b.gauss[g].gradNi[ind]
}

// GaussCoord interpolates the reference position of quadrature point g.
func (b *base) GaussCoord(g, dim int) (x float64) {
	b.checkGauss(g)
	b.checkDim(dim)
	b.requireCoords(Reference)
	for node := 0; node < b.nNodes; node++ {
		x += b.rule.Ni(node, g) * b.refCoord[node*b.dim+dim]
	}
	return
}

// Volume integrates the unit function over the element in the given
// configuration, using the Jacobians of the last matching computation.
func (b *base) Volume(cfg Configuration) (vol float64) {
	for g := 0; g < b.nGauss; g++ {
		if cfg == Current {
			vol += b.rule.Weight(g) * b.Jx(g)
		} else {
			vol += b.rule.Weight(g) * b.JX(g)
		}
	}
	return
}

func (b *base) requireCoords(cfg Configuration) {
	var (
		nSet = b.nRefSet
	)
	if cfg == Current {
		nSet = b.nCurrSet
	}
	if nSet != b.nNodes*b.dim {
		contractViolation("%s coordinates of %s element are incomplete, %d of %d set",
			cfg, b.rule.Type(), nSet, b.nNodes*b.dim)
	}
}

func (b *base) kabIndex(nodeA, nodeB int) int {
	b.checkNode(nodeA)
	b.checkNode(nodeB)
	return (nodeA*b.nNodes + nodeB) * b.dim * b.dim
}

func (b *base) checkBlock(block []float64) {
	if len(block) != b.dim*b.dim {
		contractViolation("stiffness block has length %d, expected %d", len(block), b.dim*b.dim)
	}
}

// AddKab sums a row-major dim x dim block into the pair (nodeA, nodeB)
// only. The mirrored pair is not touched: a symmetric coupling computed
// once for a != b is registered as AddKab(K, a, b) followed by
// AddKabT(K, b, a), which keeps Kab(b, a) equal to the transpose of
// Kab(a, b).
func (b *base) AddKab(block []float64, nodeA, nodeB int) {
	b.checkBlock(block)
	kab := b.kab[b.kabIndex(nodeA, nodeB):]
	for i, val := range block {
		kab[i] += val
	}
}

// AddKabT sums the transpose of block into the pair (nodeA, nodeB). With
// AddKab(K, a, b) and AddKabT(K, b, a) the caller registers both halves of
// a symmetric coupling from one computed block.
func (b *base) AddKabT(block []float64, nodeA, nodeB int) {
	b.checkBlock(block)
	kab := b.kab[b.kabIndex(nodeA, nodeB):]
	for i := 0; i < b.dim; i++ {
		for j := 0; j < b.dim; j++ {
			kab[i*b.dim+j] += block[j*b.dim+i]
		}
	}
}

// Kab returns a row-major copy of the accumulated block of (nodeA, nodeB).
func (b *base) Kab(nodeA, nodeB int) (block []float64) {
	var (
		ind = b.kabIndex(nodeA, nodeB)
	)
	block = make([]float64, b.dim*b.dim)
	copy(block, b.kab[ind:ind+b.dim*b.dim])
	return
}

// Clear zeroes the stiffness blocks. Coordinates and gradients are kept.
func (b *base) Clear() {
	for i := range b.kab {
		b.kab[i] = 0
	}
}

func (b *base) coords(cfg Configuration) []float64 {
	b.requireCoords(cfg)
	if cfg == Current {
		return b.currCoord
	}
	return b.refCoord
}

func (b *base) invalidate(cfg Configuration) {
	if cfg == Current {
		b.currValid = false
	} else {
		b.refValid = false
	}
	b.gradValid = false
}

// computeGrad evaluates the Jacobian, its inverse and the physical shape
// function gradients at every quadrature point.
func (b *base) computeGrad(cfg Configuration) (err error) {
	if b.rule.affine {
		return b.computeGradAffine(cfg)
	}
	x := b.coords(cfg)
	for g := 0; g < b.nGauss; g++ {
		if err = b.computeGradAt(x, g, cfg); err != nil {
			b.invalidate(cfg)
			return
		}
	}
	b.validate(cfg)
	return
}

// computeGradAffine evaluates the constant Jacobian once and shares the
// result with every quadrature point.
func (b *base) computeGradAffine(cfg Configuration) (err error) {
	x := b.coords(cfg)
	if err = b.computeGradAt(x, 0, cfg); err != nil {
		b.invalidate(cfg)
		return
	}
	gp0 := &b.gauss[0]
	for g := 1; g < b.nGauss; g++ {
		copy(b.gauss[g].gradNi, gp0.gradNi)
		b.gauss[g].jX, b.gauss[g].jx = gp0.jX, gp0.jx
	}
	b.validate(cfg)
	return
}

func (b *base) validate(cfg Configuration) {
	if cfg == Current {
		b.currValid = true
	} else {
		b.refValid = true
	}
	b.gradValid = true
	b.gradCfg = cfg
}

// GradConfig reports the configuration of the last successful gradient
// computation; ok is false when no gradients are stored.
func (b *base) GradConfig() (cfg Configuration, ok bool) {
	return b.gradCfg, b.gradValid
}

func (b *base) computeGradAt(x []float64, g int, cfg Configuration) (err error) {
	var (
		dim    = b.dim
		jac    = b.jac.RawMatrix().Data
		jacInv = b.jacInv.RawMatrix().Data
		gp     = &b.gauss[g]
		detJ   float64
	)
	for i := range jac {
		jac[i] = 0
	}
	// J[i][k] = dx_i/dxi_k
	for node := 0; node < b.nNodes; node++ {
		for i := 0; i < dim; i++ {
			xi := x[node*dim+i]
			for k := 0; k < dim; k++ {
				jac[i*dim+k] += xi * b.rule.DNi(node, g, k)
			}
		}
	}
	if detJ, err = b.invert(); err != nil {
		err = &GeometryError{Type: b.rule.Type(), Config: cfg, GaussPoint: g, DetJ: detJ}
		return
	}
	// dN/dx_i = sum_k Jinv[k][i] dN/dxi_k
	for node := 0; node < b.nNodes; node++ {
		for i := 0; i < dim; i++ {
			var sum float64
			for k := 0; k < dim; k++ {
				sum += jacInv[k*dim+i] * b.rule.DNi(node, g, k)
			}
			gp.gradNi[node*dim+i] = sum
		}
	}
	if cfg == Current {
		gp.jx = detJ
	} else {
		gp.jX = detJ
	}
	return
}

// invert fills jacInv from jac and returns det(jac). A determinant that is
// not strictly positive is an error.
func (b *base) invert() (detJ float64, err error) {
	var (
		jac    = b.jac.RawMatrix().Data
		jacInv = b.jacInv.RawMatrix().Data
	)
	switch b.dim {
	case 2:
		detJ = jac[0]*jac[3] - jac[1]*jac[2]
		if !(detJ > 0) {
			err = ErrDegenerateGeometry
			return
		}
		jacInv[0] = jac[3] / detJ
		jacInv[1] = -jac[1] / detJ
		jacInv[2] = -jac[2] / detJ
		jacInv[3] = jac[0] / detJ
	default:
		detJ = mat.Det(b.jac)
		if !(detJ > 0) {
			err = ErrDegenerateGeometry
			return
		}
		if err = b.jacInv.Inverse(b.jac); err != nil {
			return
		}
	}
	return
}
