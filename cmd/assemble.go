/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/notargets/gofea/InputParameters"
	"github.com/notargets/gofea/assembly"
	"github.com/notargets/gofea/readfiles"
	"github.com/spf13/cobra"
)

type ModelFEA struct {
	GridFile      string
	ICFile        string
	DumpGradients bool
	Perf          bool
}

const exampleFile = `
########################################
Title: "Test Case"
Dimension: 2
Formulation: Linear # Can be "NonLinear"
Material:
  Young: 210.e9
  Poisson: 0.3
  Thickness: 0.01
  PlaneStress: true
ParallelDegree: 0 # 0 uses the --parallelDegree setting
########################################
`

// AssembleCmd represents the assemble command
var AssembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the global stiffness matrix of an SU2 mesh",
	Long: `
Reads an SU2 mesh and a YAML input file, integrates every element and
assembles the global stiffness matrix, reporting its size and symmetry.

gofea assemble -F mesh.su2 -I input.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mfea := &ModelFEA{}
		mfea.GridFile, _ = cmd.Flags().GetString("gridFile")
		mfea.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		mfea.DumpGradients, _ = cmd.Flags().GetBool("dumpGradients")
		mfea.Perf, _ = cmd.Flags().GetBool("perf")
		var ip *InputParameters.InputParametersFEA
		if ip, err = processInput(mfea, cmd.OutOrStdout()); err != nil {
			return
		}
		return RunAssemble(commandContext(cmd), mfea, ip, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(AssembleCmd)
	AssembleCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format")
	AssembleCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Material\n\t- Formulation")
	AssembleCmd.Flags().Bool("dumpGradients", false, "write the shape function gradients of every element")
	AssembleCmd.Flags().Bool("perf", false, "report CPU cycles spent in the assembly (linux)")
}

func processInput(mfea *ModelFEA, w io.Writer) (ip *InputParameters.InputParametersFEA, err error) {
	if len(mfea.GridFile) == 0 {
		return nil, fmt.Errorf("must supply a grid file (-F, --gridFile) in .su2 (SU2 native) format")
	}
	if len(mfea.ICFile) == 0 {
		fmt.Fprintf(w, "Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
	}
	var data []byte
	if data, err = os.ReadFile(mfea.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParametersFEA{}
	if err = ip.Parse(data); err != nil {
		return
	}
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", mfea.ICFile, err)
	}
	ip.Print(w)
	return
}

func RunAssemble(ctx context.Context, mfea *ModelFEA, ip *InputParameters.InputParametersFEA, w io.Writer) (err error) {
	var (
		mesh *readfiles.Mesh
		as   *assembly.Assembler
		res  *assembly.Result
	)
	if mesh, err = readfiles.ReadSU2(mfea.GridFile, true); err != nil {
		return
	}
	if mesh.Dim != ip.Dimension {
		return fmt.Errorf("mesh is %d dimensional, input file asks for %d", mesh.Dim, ip.Dimension)
	}
	if as, err = newAssembler(mesh, ip.ParallelDegree); err != nil {
		return
	}
	if as.Material, err = ip.NewMaterial(); err != nil {
		return
	}
	as.NonLinear = ip.Formulation == InputParameters.NonLinear
	as.Prestress = ip.PrestressTensor()
	var displacement []float64
	if as.NonLinear && ip.Displacement.Scale != 0 {
		displacement = make([]float64, 0, as.NDof())
		for pt := 0; pt < mesh.NumPoints(); pt++ {
			displacement = append(displacement, ip.DisplacementAt(mesh.Coords.Row(pt))...)
		}
	}
	var (
		start    = time.Now()
		cycles   uint64
		measured bool
	)
	assemble := func() (err error) {
		res, err = as.Assemble(ctx, displacement)
		return
	}
	if mfea.Perf {
		cycles, measured, err = measureCycles(assemble)
	} else {
		err = assemble()
	}
	if err != nil {
		return
	}
	fmt.Fprintf(w, "Assembled %d elements with %d workers in %v\n", res.NElements, as.ParallelDegree, time.Since(start))
	fmt.Fprintf(w, "%d\t\t\t= DOFs\n", res.NDof)
	fmt.Fprintf(w, "%d\t\t\t= Nonzeros\n", res.K.NNZ())
	fmt.Fprintf(w, "%12.6e\t\t= Volume\n", res.Volume)
	fmt.Fprintf(w, "%12.6e\t\t= Max Asymmetry\n", res.K.MaxAsymmetry())
	fmt.Fprintf(w, "%12.6e\t\t= Rigid Residual\n", res.RigidResidual())
	if mfea.Perf {
		if measured {
			fmt.Fprintf(w, "%d\t\t= CPU Cycles\n", cycles)
		} else {
			fmt.Fprintf(w, "CPU cycle counter unavailable\n")
		}
	}
	if mfea.DumpGradients {
		for k := 0; k < mesh.NumCells(); k++ {
			if err = as.WriteGradients(w, k); err != nil {
				return
			}
		}
	}
	return
}

// newAssembler builds the elements of mesh; the material is set by the caller.
func newAssembler(mesh *readfiles.Mesh, fromInput int) (as *assembly.Assembler, err error) {
	logger, err := newLogger()
	if err != nil {
		return
	}
	if as, err = assembly.NewAssembler(mesh, nil, logger); err != nil {
		return
	}
	as.ParallelDegree = parallelDegree(fromInput)
	return
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
