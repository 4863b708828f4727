package element

type Hexa8 struct {
	base
}

func NewHexa8(a *Analysis) (el *Hexa8, err error) {
	var b base
	if b, err = newBase(a, HEXA8); err != nil {
		return
	}
	el = &Hexa8{base: b}
	return
}

func (el *Hexa8) ComputeGradLinear() error { return el.computeGrad(Reference) }

func (el *Hexa8) ComputeGradNonLinear() error { return el.computeGrad(Current) }
