package utils

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// NodalDOFs lists the global degrees of freedom of a mesh node carrying
// nDim unknowns, interleaved by node.
func NodalDOFs(node, nDim int) (I Index) {
	I = NewRange(node*nDim, node*nDim+nDim-1)
	return
}
