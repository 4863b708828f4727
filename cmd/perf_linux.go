//go:build linux

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
	perf "github.com/hodgesds/perf-utils"
)

// measureCycles runs fn under the hardware cycle counter. When the counter
// cannot be opened fn is run unmeasured.
func measureCycles(fn func() error) (cycles uint64, measured bool, err error) {
	var (
		ran   bool
		fnErr error
	)
	pv, err := perf.CPUCycles(func() error {
		ran = true
		fnErr = fn()
		return fnErr
	})
	switch {
	case !ran:
		err = fn()
	case fnErr != nil:
		err = fnErr
	case err == nil:
		cycles, measured = pv.Value, true
	default:
		err = nil
	}
	return
}
