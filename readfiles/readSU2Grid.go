package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gofea/types"
	"github.com/notargets/gofea/utils"
)

// parseError carries a malformed input failure out of the line readers.
type parseError struct{ err error }

func fail(format string, args ...interface{}) {
	panic(parseError{fmt.Errorf(format, args...)})
}

func ReadSU2(filename string, verbose bool) (mesh *Mesh, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("unable to open file %s: %w", filename, err)
		return
	}
	defer file.Close()
	if mesh, err = ReadSU2Reader(file); err != nil {
		err = fmt.Errorf("reading %s: %w", filename, err)
		return
	}
	if verbose {
		fmt.Printf("Read %d dimensional mesh, %d points, %d elements, %d markers\n",
			mesh.Dim, mesh.NumPoints(), mesh.NumCells(), len(mesh.Markers))
	}
	return
}

// ReadSU2Reader parses the NDIME, NELEM, NPOIN and NMARK sections of an
// SU2 mesh. NDIME must precede NPOIN, otherwise sections may come in any
// order.
func ReadSU2Reader(r io.Reader) (mesh *Mesh, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pe, ok := rec.(parseError)
			if !ok {
				panic(rec)
			}
			mesh, err = nil, pe.err
		}
	}()
	var (
		reader             = bufio.NewReader(r)
		haveElems, havePts bool
		line               string
		more               bool
	)
	mesh = &Mesh{Markers: make(map[types.BCTAG][]Cell)}
	for {
		if line, more = nextLine(reader); !more {
			break
		}
		if line == "" {
			continue
		}
		key, value := splitToken(line)
		switch key {
		case "NDIME":
			mesh.Dim = parseNumber(value)
			if mesh.Dim != 2 && mesh.Dim != 3 {
				fail("unsupported dimension %d", mesh.Dim)
			}
		case "NELEM":
			mesh.Cells = readElements(reader, parseNumber(value))
			haveElems = true
		case "NPOIN":
			if mesh.Dim == 0 {
				fail("NPOIN found before NDIME")
			}
			mesh.Coords = readVertices(reader, parseNumber(value), mesh.Dim)
			havePts = true
		case "NMARK":
			readBCs(reader, parseNumber(value), mesh.Markers)
		}
	}
	switch {
	case mesh.Dim == 0:
		fail("missing NDIME")
	case !haveElems:
		fail("missing NELEM")
	case !havePts:
		fail("missing NPOIN")
	}
	if utils.IsNan(mesh.Coords) {
		fail("coordinates contain NaN")
	}
	checkConnectivity(mesh)
	mesh.Coords.SetReadOnly("Coords")
	return
}

func checkConnectivity(mesh *Mesh) {
	nPts := mesh.NumPoints()
	check := func(c Cell, what string, k int) {
		for _, n := range c.Nodes {
			if n < 0 || n >= nPts {
				fail("%s %d references point %d, have %d points", what, k, n, nPts)
			}
		}
	}
	for k, c := range mesh.Cells {
		et, err := c.ElementType()
		if err != nil {
			fail("element %d: %v", k, err)
		}
		if et.Dim() != mesh.Dim {
			fail("element %d is %s in a %d dimensional mesh", k, et, mesh.Dim)
		}
		check(c, "element", k)
	}
	for _, tag := range mesh.MarkerTags() {
		for k, c := range mesh.Markers[tag] {
			check(c, "marker "+string(tag)+" element", k)
		}
	}
}

func readCell(line string) (c Cell) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		fail("empty element line")
	}
	c.Kind = SU2ElementType(parseNumber(fields[0]))
	nNodes, ok := su2NodeCount[c.Kind]
	if !ok {
		fail("unknown SU2 element type %d", c.Kind)
	}
	// A trailing element index is allowed
	if len(fields) < nNodes+1 {
		fail("element line [%s] has %d nodes, need %d", line, len(fields)-1, nNodes)
	}
	c.Nodes = make([]int, nNodes)
	for i := range c.Nodes {
		c.Nodes[i] = parseNumber(fields[i+1])
	}
	return
}

func readElements(reader *bufio.Reader, K int) (cells []Cell) {
	cells = make([]Cell, K)
	for k := 0; k < K; k++ {
		cells[k] = readCell(getLineNoComments(reader))
	}
	return
}

func readVertices(reader *bufio.Reader, Nv, dim int) (coords utils.Matrix) {
	var (
		err error
	)
	if Nv < 1 {
		fail("mesh has no points")
	}
	coords = utils.NewMatrix(Nv, dim)
	for i := 0; i < Nv; i++ {
		line := getLineNoComments(reader)
		fields := strings.Fields(line)
		if len(fields) < dim {
			fail("unable to read %d coordinates from [%s]", dim, line)
		}
		for j := 0; j < dim; j++ {
			var x float64
			if x, err = strconv.ParseFloat(fields[j], 64); err != nil {
				fail("bad coordinate in [%s]: %v", line, err)
			}
			coords.Set(i, j, x)
		}
	}
	return
}

func readBCs(reader *bufio.Reader, NBCs int, BCs map[types.BCTAG][]Cell) {
	var (
		prevInd int
	)
	for n := 0; n < NBCs; n++ {
		key := types.NewBCTAG(readLabel(reader))
		nCells := readNumber(reader)
		// Repeated tags append to a common slice
		prevInd = len(BCs[key])
		BCs[key] = types.GrowSlice(BCs[key], prevInd+nCells)
		for i := 0; i < nCells; i++ {
			c := readCell(getLineNoComments(reader))
			if c.Kind != ELType_LINE && c.Kind != ELType_Triangle && c.Kind != ELType_Quadrilateral {
				fail("marker %s contains SU2 element type %d, need a line or face", key, c.Kind)
			}
			BCs[key][i+prevInd] = c
		}
	}
}

func splitToken(line string) (key, value string) {
	ind := strings.Index(line, "=")
	if ind < 0 {
		fail("badly formed input line [%s], should have an =", line)
	}
	key = strings.ToUpper(strings.TrimSpace(line[:ind]))
	value = strings.TrimSpace(line[ind+1:])
	return
}

func getToken(reader *bufio.Reader) (token string) {
	_, token = splitToken(getLineNoComments(reader))
	return
}

func readLabel(reader *bufio.Reader) (label string) {
	fields := strings.Fields(getToken(reader))
	if len(fields) == 0 {
		fail("missing label")
	}
	label = fields[0]
	return
}

func readNumber(reader *bufio.Reader) (num int) {
	num = parseNumber(getToken(reader))
	return
}

func parseNumber(token string) (num int) {
	var (
		err    error
		fields = strings.Fields(token)
	)
	if len(fields) == 0 {
		fail("unable to read number from token: [%s]", token)
	}
	if num, err = strconv.Atoi(fields[0]); err != nil {
		fail("unable to read number from token: [%s]", token)
	}
	if num < 0 {
		fail("negative count or index %d", num)
	}
	return
}
