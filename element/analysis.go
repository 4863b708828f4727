package element

import "fmt"

// Analysis carries the settings shared read-only by every element of one
// analysis. The spatial dimension is fixed at construction.
type Analysis struct {
	dim int
}

func NewAnalysis(dim int) (a *Analysis, err error) {
	if dim != 2 && dim != 3 {
		err = fmt.Errorf("spatial dimension must be 2 or 3, have %d", dim)
		return
	}
	a = &Analysis{dim: dim}
	return
}

func (a *Analysis) Dim() int { return a.dim }

// Check asserts that el was built for this analysis.
func (a *Analysis) Check(el Element) (err error) {
	if el.Analysis() != a {
		err = fmt.Errorf("element %s was built for another analysis", el.Type())
		return
	}
	if el.Dim() != a.dim {
		err = fmt.Errorf("element %s has dimension %d, analysis dimension is %d",
			el.Type(), el.Dim(), a.dim)
	}
	return
}
