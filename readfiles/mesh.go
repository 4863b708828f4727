package readfiles

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/gofea/element"
	"github.com/notargets/gofea/types"
	"github.com/notargets/gofea/utils"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
	ELType_Tetrahedral   SU2ElementType = 10
	ELType_Hexahedral    SU2ElementType = 12
	ELType_Prism         SU2ElementType = 13
	ELType_Pyramid       SU2ElementType = 14
)

var su2NodeCount = map[SU2ElementType]int{
	ELType_LINE:          2,
	ELType_Triangle:      3,
	ELType_Quadrilateral: 4,
	ELType_Tetrahedral:   4,
	ELType_Hexahedral:    8,
	ELType_Prism:         6,
	ELType_Pyramid:       5,
}

var su2Kernel = map[SU2ElementType]element.ElementType{
	ELType_Triangle:      element.TRIA1,
	ELType_Quadrilateral: element.QUAD4,
	ELType_Tetrahedral:   element.TETRA1,
	ELType_Hexahedral:    element.HEXA8,
}

// Cell is one mesh entity in SU2 node order.
type Cell struct {
	Kind  SU2ElementType
	Nodes []int
}

// ElementType is the kernel that integrates a volume cell.
func (c Cell) ElementType() (et element.ElementType, err error) {
	var ok bool
	if et, ok = su2Kernel[c.Kind]; !ok {
		err = fmt.Errorf("no element kernel for SU2 element type %d", c.Kind)
	}
	return
}

type Mesh struct {
	Dim     int
	Coords  utils.Matrix // NPOIN x Dim, read only
	Cells   []Cell
	Markers map[types.BCTAG][]Cell
}

func (m *Mesh) NumPoints() int { return m.Coords.Rows() }
func (m *Mesh) NumCells() int  { return len(m.Cells) }

// MarkerTags returns the marker names in sorted order.
func (m *Mesh) MarkerTags() (tags []types.BCTAG) {
	for tag := range m.Markers {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return
}

// MarkerNodes returns the sorted distinct points referenced by a marker.
func (m *Mesh) MarkerNodes(tag types.BCTAG) (nodes []int) {
	seen := make(map[int]bool)
	for _, c := range m.Markers[tag] {
		for _, n := range c.Nodes {
			if !seen[n] {
				seen[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	sort.Ints(nodes)
	return
}

// EdgeDefect is a boundary edge that the markers of a 2D mesh describe
// inconsistently. Tag is empty for an unmarked boundary edge.
type EdgeDefect struct {
	Tag    types.BCTAG
	Edge   types.EdgeKey
	Reason string
}

func (ed EdgeDefect) String() string {
	if ed.Tag == "" {
		return fmt.Sprintf("edge %s: %s", ed.Edge, ed.Reason)
	}
	return fmt.Sprintf("marker %s edge %s: %s", ed.Tag, ed.Edge, ed.Reason)
}

// MarkerEdges returns the sorted edges of the line cells of a marker.
func (m *Mesh) MarkerEdges(tag types.BCTAG) (edges []types.EdgeKey) {
	for _, c := range m.Markers[tag] {
		if c.Kind == ELType_LINE {
			edges = append(edges, types.NewEdgeKey(c.Nodes[0], c.Nodes[1]))
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	return
}

// CheckMarkerEdges compares the marker lines of a 2D mesh with the
// boundary of its cells, the edges used by exactly one cell. It reports
// marker edges off the boundary, edges claimed more than once across all
// markers, and boundary edges no marker covers. 3D meshes are not checked.
func (m *Mesh) CheckMarkerEdges() (defects []EdgeDefect) {
	if m.Dim != 2 {
		return
	}
	var (
		cellEdges   = make(types.EdgeCount)
		markerEdges = make(types.EdgeCount)
	)
	for _, c := range m.Cells {
		cellEdges.AddLoop(c.Nodes)
	}
	for _, tag := range m.MarkerTags() {
		edges := m.MarkerEdges(tag)
		for i, ek := range edges {
			if cellEdges[ek] != 1 {
				defects = append(defects, EdgeDefect{tag, ek, "not on the boundary"})
			}
			if markerEdges[ek] > 0 && (i == 0 || edges[i-1] != ek) {
				defects = append(defects, EdgeDefect{tag, ek, "already claimed by another marker"})
			}
			if i > 0 && edges[i-1] == ek {
				defects = append(defects, EdgeDefect{tag, ek, "repeated"})
			}
			markerEdges[ek]++
		}
	}
	for _, ek := range cellEdges.Keys(1) {
		if markerEdges[ek] == 0 {
			defects = append(defects, EdgeDefect{Edge: ek, Reason: "boundary edge has no marker"})
		}
	}
	return
}

// Bounds returns the coordinate range of each dimension.
func (m *Mesh) Bounds() (min, max []float64) {
	nc := m.Coords.Cols()
	min, max = make([]float64, nc), make([]float64, nc)
	for i := 0; i < nc; i++ {
		min[i], max[i] = m.Coords.ColumnRange(i)
	}
	return
}

// CoincidentPoints returns the pairs of points closer than utils.NODETOL
// in every coordinate.
func (m *Mesh) CoincidentPoints() (pairs [][2]int) {
	var (
		nPts  = m.NumPoints()
		order = make([]int, nPts)
	)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return m.Coords.At(order[i], 0) < m.Coords.At(order[j], 0) })
	for i := 0; i < nPts; i++ {
		for j := i + 1; j < nPts; j++ {
			p, q := order[i], order[j]
			if m.Coords.At(q, 0)-m.Coords.At(p, 0) > utils.NODETOL {
				break
			}
			same := true
			for d := 1; d < m.Dim; d++ {
				if math.Abs(m.Coords.At(q, d)-m.Coords.At(p, d)) > utils.NODETOL {
					same = false
				}
			}
			if same {
				if p > q {
					p, q = q, p
				}
				pairs = append(pairs, [2]int{p, q})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] == pairs[j][0] {
			return pairs[i][1] < pairs[j][1]
		}
		return pairs[i][0] < pairs[j][0]
	})
	return
}
