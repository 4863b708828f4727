package element

import (
	"fmt"
	"io"
)

// WriteGradients dumps the last computed shape function gradients of el
// with the Jacobian of the configuration that produced them.
// globalNode maps a local node to its mesh index for labelling; nil prints
// local indices.
func WriteGradients(w io.Writer, el Element, elemID int, globalNode func(local int) int) (err error) {
	var (
		dim    = el.Dim()
		labels = []string{"dN/dx", "dN/dy", "dN/dz"}
	)
	cfg, ok := el.GradConfig()
	if !ok {
		return fmt.Errorf("element %d has no computed gradients", elemID)
	}
	detJ, jLabel := el.JX, "J_X"
	if cfg == Current {
		detJ, jLabel = el.Jx, "J_x"
	}
	if globalNode == nil {
		globalNode = func(local int) int { return local }
	}
	if _, err = fmt.Fprintf(w, "Element %d [%s] %s configuration\n", elemID, el.Type(), cfg); err != nil {
		return
	}
	for g := 0; g < el.GaussPointCount(); g++ {
		if _, err = fmt.Fprintf(w, "  Gauss point %d: weight = %8.5f, %s = %12.6e\n",
			g, el.Weight(g), jLabel, detJ(g)); err != nil {
			return
		}
		for node := 0; node < el.NodeCount(); node++ {
			if _, err = fmt.Fprintf(w, "    node %6d", globalNode(node)); err != nil {
				return
			}
			for i := 0; i < dim; i++ {
				if _, err = fmt.Fprintf(w, "  %s = %12.6e", labels[i], el.GradNiX(node, g, i)); err != nil {
					return
				}
			}
			if _, err = fmt.Fprintln(w); err != nil {
				return
			}
		}
	}
	return
}
