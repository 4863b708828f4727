package element

// Tetra1 is the 4 node linear tetrahedron integrated with one point.
type Tetra1 struct {
	base
}

func NewTetra1(a *Analysis) (el *Tetra1, err error) {
	var b base
	if b, err = newBase(a, TETRA1); err != nil {
		return
	}
	el = &Tetra1{base: b}
	return
}

func (el *Tetra1) ComputeGradLinear() error { return el.computeGrad(Reference) }

func (el *Tetra1) ComputeGradNonLinear() error { return el.computeGrad(Current) }
