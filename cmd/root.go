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
	"log/slog"
	"os"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/notargets/gofea/logging"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	profileStop interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gofea",
	Short: "Isoparametric finite element assembly on SU2 meshes",
	Long: `
Computes element Jacobians, shape function gradients and linear elastic
stiffness blocks for TRIA1, QUAD4, TETRA1 and HEXA8 elements read from SU2
meshes, and assembles them into a global sparse stiffness matrix.

gofea assemble -F mesh.su2 -I input.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("profile") {
			profileStop = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profileStop != nil {
			profileStop.Stop()
			profileStop = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gofea.yaml)")
	rootCmd.PersistentFlags().String("logLevel", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Int("parallelDegree", 0, "number of assembly workers, 0 uses one per CPU")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile to the working directory")
	for _, name := range []string{"logLevel", "parallelDegree", "profile"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".gofea" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gofea")
	}
	viper.SetEnvPrefix("GOFEA")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (logger *slog.Logger, err error) {
	var level slog.Level
	if level, err = logging.ParseLevel(viper.GetString("logLevel")); err != nil {
		return
	}
	logger = logging.New(level)
	return
}

// parallelDegree prefers the input file setting over the process setting.
func parallelDegree(fromInput int) int {
	switch {
	case fromInput > 0:
		return fromInput
	case viper.GetInt("parallelDegree") > 0:
		return viper.GetInt("parallelDegree")
	}
	return runtime.NumCPU()
}
