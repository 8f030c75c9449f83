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
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/ode"
	"github.com/notargets/gotransport/transport"
	"github.com/notargets/gotransport/utils"
)

// AdvDiffCmd represents the advdiff command
var AdvDiffCmd = &cobra.Command{
	Use:   "advdiff",
	Short: "Scalar advection-diffusion model problem",
	Long: `
Runs a single-field DG advection-diffusion equation, either fully implicitly
or with an explicit RK4 loop (IMEX split verification vehicle).

gotransport advdiff -k 40 -n 3 --implicit`,
	Run: func(cmd *cobra.Command, args []string) {
		ma := &ModelAdvDiff{}
		fmt.Println("advdiff called")
		ma.K, _ = cmd.Flags().GetInt("k")
		ma.N, _ = cmd.Flags().GetInt("n")
		ma.DT, _ = cmd.Flags().GetFloat64("dt")
		ma.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		ma.Diffusivity, _ = cmd.Flags().GetFloat64("diffusivity")
		ma.Velocity, _ = cmd.Flags().GetFloat64("velocity")
		ma.Implicit, _ = cmd.Flags().GetBool("implicit")
		ma.Graph, _ = cmd.Flags().GetBool("graph")
		delay, _ := cmd.Flags().GetInt("delay")
		ma.Delay = time.Duration(delay) * time.Millisecond
		RunAdvDiff(ma)
	},
}

func init() {
	rootCmd.AddCommand(AdvDiffCmd)
	AdvDiffCmd.Flags().IntP("k", "k", 40, "Number of elements in model")
	AdvDiffCmd.Flags().IntP("n", "n", 3, "polynomial degree")
	AdvDiffCmd.Flags().Float64("dt", 1.e-3, "time step")
	AdvDiffCmd.Flags().Float64("finalTime", 1., "the target end time for the sim")
	AdvDiffCmd.Flags().Float64("diffusivity", 0.01, "scalar diffusivity")
	AdvDiffCmd.Flags().Float64("velocity", 1., "advection velocity")
	AdvDiffCmd.Flags().Bool("implicit", false, "backward Euler instead of explicit RK4")
	AdvDiffCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	AdvDiffCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
}

type ModelAdvDiff struct {
	K, N                  int
	DT, FinalTime         float64
	Diffusivity, Velocity float64
	Implicit              bool
	Graph                 bool
	Delay                 time.Duration
}

func RunAdvDiff(ma *ModelAdvDiff) {
	var (
		VX, EToV = DG1D.SimpleMesh1D(0, 2*math.Pi, ma.K)
		el       = DG1D.NewElements1D(ma.N, VX, EToV)
		td       = transport.NewAdvDiffTDO(el, transport.DefaultDGParams(ma.N))
		n        = el.NumDOF()
		u        = utils.NewVector(n, el.NodalCoords()).Apply(math.Sin).Data()
	)
	for i := 0; i < n; i++ {
		td.Diffusivity[i] = ma.Diffusivity
		td.Velocity[i] = ma.Velocity
	}
	var (
		Nsteps = int(ma.FinalTime/ma.DT + 0.5)
		Time   float64
		plt    *transportPlot
	)
	fmt.Printf("Nsteps = %d, DOF = %d\n", Nsteps, n)
	implicitStepper := ode.NewBackwardEuler(td)
	explicitStepper := ode.NewRK4(td)
	for tstep := 1; tstep <= Nsteps; tstep++ {
		if ma.Implicit {
			implicitStepper.Step(ma.DT, u)
		} else if err := explicitStepper.Step(ma.DT, u); err != nil {
			panic(err)
		}
		Time += ma.DT
		if ma.Graph {
			if plt == nil {
				plt = newTransportPlot(el, u)
			}
			plt.update(el, "U", u, ma.Delay)
		}
		if tstep%50 == 0 || tstep == Nsteps {
			uv := utils.NewVector(n, u)
			fmt.Printf("step %6d, time %8.4f, Umin, Umax = %8.5f, %8.5f\n", tstep, Time, uv.Min(), uv.Max())
		}
	}
}
