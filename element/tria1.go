package element

// Tria1 is the 3 node linear triangle integrated with one point. The
// Jacobian is constant over the element.
type Tria1 struct {
	base
}

func NewTria1(a *Analysis) (el *Tria1, err error) {
	var b base
	if b, err = newBase(a, TRIA1); err != nil {
		return
	}
	el = &Tria1{base: b}
	return
}

func (el *Tria1) ComputeGradLinear() error { return el.computeGrad(Reference) }

func (el *Tria1) ComputeGradNonLinear() error { return el.computeGrad(Current) }
