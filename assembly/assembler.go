package assembly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/notargets/gofea/constitutive"
	"github.com/notargets/gofea/element"
	"github.com/notargets/gofea/readfiles"
	"github.com/notargets/gofea/utils"
	"golang.org/x/sync/errgroup"
)

// Assembler owns one element kernel per mesh cell and integrates them into
// a global stiffness matrix. Each element is only ever touched by the
// worker owning its partition bucket.
type Assembler struct {
	Analysis *element.Analysis
	Mesh     *readfiles.Mesh
	Material *constitutive.LinearElastic
	// NonLinear integrates on the current configuration with the current
	// gradients, otherwise on the reference configuration.
	NonLinear bool
	// Prestress is a row major Cauchy stress added as an initial stress
	// term; nil for none.
	Prestress      []float64
	ParallelDegree int
	Logger         *slog.Logger

	elements []element.Element
}

// Result is an assembled global system, DOFs interleaved by node.
type Result struct {
	K         utils.CSR
	Volume    float64
	NDof      int
	NElements int
	Dim       int
}

// RigidResidual returns max |K t| over the unit translations t, zero for a
// stiffness without spurious rigid body forces.
func (r *Result) RigidResidual() (resid float64) {
	for dir := 0; dir < r.Dim; dir++ {
		t := make([]float64, r.NDof)
		for i := dir; i < r.NDof; i += r.Dim {
			t[i] = 1
		}
		for _, f := range r.K.MulVec(t) {
			resid = math.Max(resid, math.Abs(f))
		}
	}
	return
}

// ElementError attributes a failure to a mesh element.
type ElementError struct {
	Element int
	Err     error
}

func (ee *ElementError) Error() string { return fmt.Sprintf("element %d: %v", ee.Element, ee.Err) }
func (ee *ElementError) Unwrap() error { return ee.Err }

func NewAssembler(mesh *readfiles.Mesh, material *constitutive.LinearElastic, logger *slog.Logger) (as *Assembler, err error) {
	if logger == nil {
		return nil, errors.New("assembler needs a logger")
	}
	as = &Assembler{
		Mesh:           mesh,
		Material:       material,
		ParallelDegree: 1,
		Logger:         logger,
	}
	if err = as.Setup(); err != nil {
		as = nil
	}
	return
}

// Setup builds the element kernels and loads their reference coordinates.
func (as *Assembler) Setup() (err error) {
	if as.Analysis, err = element.NewAnalysis(as.Mesh.Dim); err != nil {
		return
	}
	as.elements = make([]element.Element, as.Mesh.NumCells())
	for k, cell := range as.Mesh.Cells {
		var et element.ElementType
		if et, err = cell.ElementType(); err != nil {
			return &ElementError{k, err}
		}
		if as.elements[k], err = element.New(as.Analysis, et); err != nil {
			return &ElementError{k, err}
		}
		if err = as.Analysis.Check(as.elements[k]); err != nil {
			return &ElementError{k, err}
		}
		for node, pt := range cell.Nodes {
			as.elements[k].SetRefCoords(node, as.Mesh.Coords.Row(pt))
		}
	}
	as.Logger.Debug("elements created", "count", len(as.elements), "dim", as.Mesh.Dim)
	return
}

func (as *Assembler) NDof() int { return as.Mesh.NumPoints() * as.Mesh.Dim }

func (as *Assembler) Element(k int) element.Element { return as.elements[k] }

func (as *Assembler) checkDisplacement(displacement []float64) error {
	if displacement != nil && len(displacement) != as.NDof() {
		return fmt.Errorf("displacement has %d entries, need %d", len(displacement), as.NDof())
	}
	if utils.IsNan(displacement) {
		return errors.New("displacement contains NaN")
	}
	return nil
}

// placeCurrent sets the current coordinates of element k to reference plus
// displacement.
func (as *Assembler) placeCurrent(k int, displacement []float64) {
	var (
		el  = as.elements[k]
		dim = as.Mesh.Dim
	)
	if displacement == nil {
		el.ResetCurrToRef()
		return
	}
	x := make([]float64, dim)
	for node, pt := range as.Mesh.Cells[k].Nodes {
		for i := 0; i < dim; i++ {
			x[i] = el.RefCoord(node, i) + displacement[pt*dim+i]
		}
		el.SetCurrCoords(node, x)
	}
}

// integrate computes the gradients and stiffness blocks of element k and
// returns its measure in the integration configuration.
func (as *Assembler) integrate(k int, displacement []float64) (vol float64, err error) {
	var (
		el  = as.elements[k]
		cfg = element.Reference
	)
	el.Clear()
	if as.NonLinear {
		cfg = element.Current
		as.placeCurrent(k, displacement)
		err = el.ComputeGradNonLinear()
	} else {
		err = el.ComputeGradLinear()
	}
	if err != nil {
		return
	}
	if err = as.Material.Accumulate(el, cfg, as.Prestress); err != nil {
		return
	}
	vol = el.Volume(cfg)
	return
}

// forEachBucket runs fn over every element, one goroutine per partition
// bucket, stopping at the first error or when ctx is done.
func (as *Assembler) forEachBucket(ctx context.Context, fn func(k int) error) (err error) {
	var (
		pm   = utils.NewPartitionMap(as.ParallelDegree, len(as.elements))
		g, c = errgroup.WithContext(ctx)
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		bn := np
		g.Go(func() error {
			kMin, kMax := pm.GetBucketRange(bn)
			as.Logger.Debug("bucket started", "bucket", bn, "kMin", kMin, "kMax", kMax,
				"elements", pm.GetBucketDimension(bn))
			for kLocal := 0; kLocal < pm.GetBucketDimension(bn); kLocal++ {
				if err := c.Err(); err != nil {
					return err
				}
				if err := fn(pm.GetGlobalK(kLocal, bn)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Assemble integrates all elements and scatters their blocks into the
// global stiffness. The displacement is only used by the nonlinear
// formulation; nil places the current configuration on the reference.
func (as *Assembler) Assemble(ctx context.Context, displacement []float64) (res *Result, err error) {
	var (
		start  = time.Now()
		dim    = as.Mesh.Dim
		nDof   = as.NDof()
		K      = utils.NewDOK(nDof, nDof)
		volume float64
		mu     sync.Mutex
	)
	if err = as.checkDisplacement(displacement); err != nil {
		return
	}
	as.Logger.Debug("assembly started", "workers", as.ParallelDegree, "mem", utils.GetMemUsage())
	err = as.forEachBucket(ctx, func(k int) error {
		vol, err := as.integrate(k, displacement)
		if err != nil {
			return &ElementError{k, err}
		}
		var (
			el    = as.elements[k]
			nodes = as.Mesh.Cells[k].Nodes
		)
		mu.Lock()
		defer mu.Unlock()
		for a, na := range nodes {
			for b, nb := range nodes {
				K.AddBlock(utils.NodalDOFs(na, dim), utils.NodalDOFs(nb, dim), el.Kab(a, b))
			}
		}
		volume += vol
		return nil
	})
	if err != nil {
		as.Logger.Error("assembly failed", "error", err)
		return
	}
	K.SetReadOnly("K")
	res = &Result{
		K:         K.ToCSR(),
		Volume:    volume,
		NDof:      nDof,
		NElements: len(as.elements),
		Dim:       dim,
	}
	as.Logger.Info("assembled", "elements", res.NElements, "dofs", nDof,
		"nnz", res.K.NNZ(), "volume", volume, "elapsed", time.Since(start))
	return
}

// Defect is an element whose geometry cannot be integrated.
type Defect struct {
	Element int
	Err     *element.GeometryError
}

// CheckGeometry computes the reference gradients of every element, and
// the current ones when a displacement is given, and reports every
// degenerate element in element order.
func (as *Assembler) CheckGeometry(ctx context.Context, displacement []float64) (defects []Defect, err error) {
	var (
		mu sync.Mutex
	)
	if err = as.checkDisplacement(displacement); err != nil {
		return
	}
	report := func(k int, err error) error {
		var ge *element.GeometryError
		if !errors.As(err, &ge) {
			return &ElementError{k, err}
		}
		mu.Lock()
		defects = append(defects, Defect{k, ge})
		mu.Unlock()
		return nil
	}
	err = as.forEachBucket(ctx, func(k int) error {
		el := as.elements[k]
		if err := el.ComputeGradLinear(); err != nil {
			return report(k, err)
		}
		if displacement != nil {
			as.placeCurrent(k, displacement)
			if err := el.ComputeGradNonLinear(); err != nil {
				return report(k, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(defects, func(i, j int) bool {
		if defects[i].Element == defects[j].Element {
			return defects[i].Err.Config < defects[j].Err.Config
		}
		return defects[i].Element < defects[j].Element
	})
	for _, d := range defects {
		as.Logger.Warn("degenerate element", "element", d.Element, "error", d.Err)
	}
	return
}

// WriteGradients recomputes the reference gradients of element k and
// writes them labelled with mesh point indices.
func (as *Assembler) WriteGradients(w io.Writer, k int) (err error) {
	if k < 0 || k >= len(as.elements) {
		return fmt.Errorf("element %d out of range, have %d elements", k, len(as.elements))
	}
	el := as.elements[k]
	if err = el.ComputeGradLinear(); err != nil {
		return &ElementError{k, err}
	}
	nodes := as.Mesh.Cells[k].Nodes
	return element.WriteGradients(w, el, k, func(local int) int { return nodes[local] })
}
