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
	"fmt"
	"io"

	"github.com/notargets/gofea/readfiles"
	"github.com/spf13/cobra"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report degenerate elements and markers of an SU2 mesh",
	Long: `
Computes the reference Jacobian of every element and lists the elements
that are inverted or collapsed, along with the mesh markers. On 2D meshes
the marker lines are compared with the boundary edges of the cells.

gofea check -F mesh.su2 -D 2`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		gridFile, _ := cmd.Flags().GetString("gridFile")
		dim, _ := cmd.Flags().GetInt("dimension")
		return RunCheck(cmd, gridFile, dim, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	CheckCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format")
	CheckCmd.Flags().IntP("dimension", "D", 0, "required mesh dimension, 0 accepts any")
}

func RunCheck(cmd *cobra.Command, gridFile string, dim int, w io.Writer) (err error) {
	var mesh *readfiles.Mesh
	if len(gridFile) == 0 {
		return fmt.Errorf("must supply a grid file (-F, --gridFile) in .su2 (SU2 native) format")
	}
	if mesh, err = readfiles.ReadSU2(gridFile, true); err != nil {
		return
	}
	if dim != 0 && mesh.Dim != dim {
		return fmt.Errorf("mesh is %d dimensional, expected %d", mesh.Dim, dim)
	}
	min, max := mesh.Bounds()
	fmt.Fprintf(w, "Bounds: min = %v, max = %v\n", min, max)
	for _, tag := range mesh.MarkerTags() {
		fmt.Fprintf(w, "Marker %-20s %-12s %6d elements %6d points\n",
			tag, tag.GetFLAG(), len(mesh.Markers[tag]), len(mesh.MarkerNodes(tag)))
	}
	for _, pair := range mesh.CoincidentPoints() {
		fmt.Fprintf(w, "Points %d and %d coincide\n", pair[0], pair[1])
	}
	for _, ed := range mesh.CheckMarkerEdges() {
		fmt.Fprintf(w, "Boundary %v\n", ed)
	}
	as, err := newAssembler(mesh, 0)
	if err != nil {
		return
	}
	defects, err := as.CheckGeometry(commandContext(cmd), nil)
	if err != nil {
		return
	}
	for _, d := range defects {
		fmt.Fprintf(w, "Element %d: %v\n", d.Element, d.Err)
	}
	if len(defects) != 0 {
		return fmt.Errorf("%d of %d elements are degenerate", len(defects), mesh.NumCells())
	}
	fmt.Fprintf(w, "All %d elements are valid\n", mesh.NumCells())
	return
}
