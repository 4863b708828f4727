package element

// Quad4 is the 4 node bilinear quadrilateral with the 2x2 Gauss rule. Its
// Jacobian varies over the element and is evaluated at every point.
type Quad4 struct {
	base
}

func NewQuad4(a *Analysis) (el *Quad4, err error) {
	var b base
	if b, err = newBase(a, QUAD4); err != nil {
		return
	}
	el = &Quad4{base: b}
	return
}

func (el *Quad4) ComputeGradLinear() error { return el.computeGrad(Reference) }

func (el *Quad4) ComputeGradNonLinear() error { return el.computeGrad(Current) }
