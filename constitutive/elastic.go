package constitutive

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearElastic is an isotropic Hookean material. In 2D the thickness
// scales the element integrals and PlaneStress selects the plane stress
// moduli over the plane strain ones.
type LinearElastic struct {
	Young       float64
	Poisson     float64
	Thickness   float64
	PlaneStress bool
}

func NewLinearElastic(young, poisson, thickness float64, planeStress bool) (le *LinearElastic, err error) {
	switch {
	case !(young > 0):
		err = fmt.Errorf("young's modulus must be positive, have %g", young)
	case !(poisson > -1 && poisson < 0.5):
		err = fmt.Errorf("poisson ratio must be in (-1, 0.5), have %g", poisson)
	case !(thickness > 0):
		err = fmt.Errorf("thickness must be positive, have %g", thickness)
	}
	if err != nil {
		return
	}
	le = &LinearElastic{
		Young:       young,
		Poisson:     poisson,
		Thickness:   thickness,
		PlaneStress: planeStress,
	}
	return
}

// Lame returns the first Lame parameter and the shear modulus.
func (le *LinearElastic) Lame() (lambda, mu float64) {
	var (
		E, nu = le.Young, le.Poisson
	)
	lambda = E * nu / ((1 + nu) * (1 - 2*nu))
	mu = E / (2 * (1 + nu))
	return
}

// D is the elasticity matrix in Voigt notation, ordered xx, yy, xy in 2D
// and xx, yy, zz, xy, yz, xz in 3D.
func (le *LinearElastic) D(dim int) (D *mat.SymDense) {
	lambda, mu := le.Lame()
	switch dim {
	case 2:
		D = mat.NewSymDense(3, nil)
		if le.PlaneStress {
			c := le.Young / (1 - le.Poisson*le.Poisson)
			D.SetSym(0, 0, c)
			D.SetSym(1, 1, c)
			D.SetSym(0, 1, c*le.Poisson)
			D.SetSym(2, 2, c*(1-le.Poisson)/2)
		} else {
			D.SetSym(0, 0, lambda+2*mu)
			D.SetSym(1, 1, lambda+2*mu)
			D.SetSym(0, 1, lambda)
			D.SetSym(2, 2, mu)
		}
	case 3:
		D = mat.NewSymDense(6, nil)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				D.SetSym(i, j, lambda)
			}
			D.SetSym(i, i, lambda+2*mu)
			D.SetSym(i+3, i+3, mu)
		}
	default:
		panic(fmt.Errorf("no elasticity matrix for dimension %d", dim))
	}
	return
}

// IntegrationFactor is the out of plane measure multiplying element integrals.
func (le *LinearElastic) IntegrationFactor(dim int) float64 {
	if dim == 2 {
		return le.Thickness
	}
	return 1
}
