// Package main is the entrypoint for schedinfo, a tool that builds the
// report-step timeline of a simulation deck and prints step and periodic
// report information.
package main

import "github.com/PetroleumCyberneticsGroup/opm-parser/cmd/schedinfo/cmd"

func main() {
	cmd.Execute()
}
