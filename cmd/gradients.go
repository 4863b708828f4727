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

	"github.com/notargets/gofea/readfiles"
	"github.com/spf13/cobra"
)

// GradientsCmd represents the gradients command
var GradientsCmd = &cobra.Command{
	Use:   "gradients",
	Short: "Print the Jacobians and shape function gradients of one element",
	Long: `
Computes the reference configuration gradients of a single element of an
SU2 mesh and prints them for each quadrature point.

gofea gradients -F mesh.su2 -e 3`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var mesh *readfiles.Mesh
		gridFile, _ := cmd.Flags().GetString("gridFile")
		k, _ := cmd.Flags().GetInt("element")
		if len(gridFile) == 0 {
			return fmt.Errorf("must supply a grid file (-F, --gridFile) in .su2 (SU2 native) format")
		}
		if mesh, err = readfiles.ReadSU2(gridFile, false); err != nil {
			return
		}
		as, err := newAssembler(mesh, 1)
		if err != nil {
			return
		}
		return as.WriteGradients(cmd.OutOrStdout(), k)
	},
}

func init() {
	rootCmd.AddCommand(GradientsCmd)
	GradientsCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format")
	GradientsCmd.Flags().IntP("element", "e", 0, "element number")
}
