package InputParameters

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/notargets/gofea/constitutive"
)

type Formulation string

const (
	Linear    Formulation = "Linear"
	NonLinear Formulation = "NonLinear"
)

type MaterialParameters struct {
	Young       float64 `json:"Young"`
	Poisson     float64 `json:"Poisson"`
	Thickness   float64 `json:"Thickness"`
	PlaneStress bool    `json:"PlaneStress"`
}

// DisplacementParameters prescribe u(x) = Scale * (Uniform + Gradient x),
// used to place the current configuration of a nonlinear assembly.
type DisplacementParameters struct {
	Scale    float64     `json:"Scale"`
	Uniform  []float64   `json:"Uniform"`
	Gradient [][]float64 `json:"Gradient"`
}

// Parameters obtained from the YAML input file
type InputParametersFEA struct {
	Title          string                 `json:"Title"`
	Dimension      int                    `json:"Dimension"`
	Formulation    Formulation            `json:"Formulation"`
	Material       MaterialParameters     `json:"Material"`
	Prestress      [][]float64            `json:"Prestress"` // Cauchy stress, Dimension x Dimension
	ParallelDegree int                    `json:"ParallelDegree"`
	Displacement   DisplacementParameters `json:"Displacement"`
}

func (ip *InputParametersFEA) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("parsing input parameters: %w", err)
	}
	if ip.Formulation == "" {
		ip.Formulation = Linear
	}
	if ip.Material.Thickness == 0 {
		ip.Material.Thickness = 1
	}
	return
}

func (ip *InputParametersFEA) Validate() (err error) {
	var (
		dim = ip.Dimension
	)
	if dim != 2 && dim != 3 {
		return fmt.Errorf("dimension must be 2 or 3, have %d", dim)
	}
	switch Formulation(strings.ToLower(string(ip.Formulation))) {
	case "linear":
		ip.Formulation = Linear
	case "nonlinear":
		ip.Formulation = NonLinear
	default:
		return fmt.Errorf("unknown formulation [%s]", ip.Formulation)
	}
	if _, err = ip.NewMaterial(); err != nil {
		return
	}
	if ip.ParallelDegree < 0 {
		return fmt.Errorf("parallel degree must not be negative, have %d", ip.ParallelDegree)
	}
	if err = checkSquare("Prestress", ip.Prestress, dim); err != nil {
		return
	}
	for i := range ip.Prestress {
		for j := range ip.Prestress[i] {
			if ip.Prestress[i][j] != ip.Prestress[j][i] {
				return fmt.Errorf("prestress is not symmetric at [%d][%d]", i, j)
			}
		}
	}
	if u := ip.Displacement.Uniform; len(u) != 0 && len(u) != dim {
		return fmt.Errorf("uniform displacement has %d components, need %d", len(u), dim)
	}
	return checkSquare("Displacement gradient", ip.Displacement.Gradient, dim)
}

func checkSquare(name string, A [][]float64, dim int) error {
	if len(A) == 0 {
		return nil
	}
	if len(A) != dim {
		return fmt.Errorf("%s has %d rows, need %d", name, len(A), dim)
	}
	for i, row := range A {
		if len(row) != dim {
			return fmt.Errorf("%s row %d has %d columns, need %d", name, i, len(row), dim)
		}
	}
	return nil
}

func (ip *InputParametersFEA) NewMaterial() (le *constitutive.LinearElastic, err error) {
	m := ip.Material
	if le, err = constitutive.NewLinearElastic(m.Young, m.Poisson, m.Thickness, m.PlaneStress); err != nil {
		err = fmt.Errorf("material: %w", err)
	}
	return
}

// PrestressTensor returns the prestress row major, nil when none is given.
func (ip *InputParametersFEA) PrestressTensor() (sigma []float64) {
	for _, row := range ip.Prestress {
		sigma = append(sigma, row...)
	}
	return
}

// DisplacementAt evaluates the prescribed displacement at reference point x.
func (ip *InputParametersFEA) DisplacementAt(x []float64) (u []float64) {
	var (
		d   = ip.Displacement
		dim = len(x)
	)
	u = make([]float64, dim)
	for i := 0; i < dim; i++ {
		if len(d.Uniform) != 0 {
			u[i] = d.Uniform[i]
		}
		if len(d.Gradient) != 0 {
			for j := 0; j < dim; j++ {
				u[i] += d.Gradient[i][j] * x[j]
			}
		}
		u[i] *= d.Scale
	}
	return
}

func (ip *InputParametersFEA) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Dimension\n", ip.Dimension)
	fmt.Fprintf(w, "[%s]\t\t\t= Formulation\n", ip.Formulation)
	fmt.Fprintf(w, "%8.5g\t\t= Young\n", ip.Material.Young)
	fmt.Fprintf(w, "%8.5f\t\t= Poisson\n", ip.Material.Poisson)
	if ip.Dimension == 2 {
		fmt.Fprintf(w, "%8.5f\t\t= Thickness\n", ip.Material.Thickness)
		fmt.Fprintf(w, "[%v]\t\t\t= PlaneStress\n", ip.Material.PlaneStress)
	}
	if len(ip.Prestress) != 0 {
		fmt.Fprintf(w, "%v\t= Prestress\n", ip.Prestress)
	}
	if ip.Displacement.Scale != 0 {
		fmt.Fprintf(w, "%8.5f\t\t= Displacement Scale\n", ip.Displacement.Scale)
	}
	fmt.Fprintf(w, "[%d]\t\t\t\t= Parallel Degree\n", ip.ParallelDegree)
}
