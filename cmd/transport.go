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
	"io/ioutil"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gotransport/DG1D"
	"github.com/notargets/gotransport/InputParameters"
	"github.com/notargets/gotransport/ode"
	"github.com/notargets/gotransport/transport"
)

// TransportCmd represents the transport command
var TransportCmd = &cobra.Command{
	Use:   "transport",
	Short: "Five-field implicit plasma transport solve",
	Long: `
Runs the coupled neutral density / ion density / ion momentum / ion
temperature / electron temperature system with backward Euler or SDIRK2
stepping, block Newton-Krylov implicit solves and per-block multigrid
preconditioning.

gotransport transport -k 20 -n 3 --dt 1e-8`,
	Run: func(cmd *cobra.Command, args []string) {
		mt := &ModelTransport{}
		fmt.Println("transport called")
		mt.K, _ = cmd.Flags().GetInt("k")
		mt.N, _ = cmd.Flags().GetInt("n")
		mt.DT, _ = cmd.Flags().GetFloat64("dt")
		mt.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		mt.EnableMask, _ = cmd.Flags().GetInt("mask")
		mt.InputFile, _ = cmd.Flags().GetString("inputFile")
		mt.Graph, _ = cmd.Flags().GetBool("graph")
		mt.GraphField, _ = cmd.Flags().GetInt("graphField")
		delay, _ := cmd.Flags().GetInt("delay")
		mt.Delay = time.Duration(delay) * time.Millisecond
		mt.Profile, _ = cmd.Flags().GetBool("profile")
		mt.Verbose, _ = cmd.Flags().GetInt("verbose")
		RunTransport(mt)
	},
}

func init() {
	rootCmd.AddCommand(TransportCmd)
	TransportCmd.Flags().IntP("k", "k", 20, "Number of elements in model")
	TransportCmd.Flags().IntP("n", "n", 3, "polynomial degree")
	TransportCmd.Flags().Float64("dt", 1.e-8, "implicit time step")
	TransportCmd.Flags().Float64("finalTime", 1.e-5, "the target end time for the sim")
	TransportCmd.Flags().IntP("mask", "m", 0b11111, "per-field enable bitmask, bit i enables field i")
	TransportCmd.Flags().StringP("inputFile", "F", "", "YAML problem deck, overrides other flags")
	TransportCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	TransportCmd.Flags().Int("graphField", transport.IonDensity, "field index to plot")
	TransportCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	TransportCmd.Flags().Bool("profile", false, "write a CPU profile of the run loop")
	TransportCmd.Flags().IntP("verbose", "v", 1, "log level, 0 quiet, 2 includes Newton iterations")
}

type ModelTransport struct {
	K, N       int
	DT         float64
	FinalTime  float64
	EnableMask int
	InputFile  string
	Graph      bool
	GraphField int
	Delay      time.Duration
	Profile    bool
	Verbose    int
}

func defaultDeck() *InputParameters.TransportParameters {
	return &InputParameters.TransportParameters{
		Title:           "transport",
		XMin:            0,
		XMax:            1,
		ElementCount:    20,
		PolynomialOrder: 3,
		DT:              1.e-8,
		FinalTime:       1.e-5,
		Stepper:         "BackwardEuler",
		EnableMask:      0b11111,
		IonMass:         2.01410177785,
		IonCharge:       1,
		NeutralMass:     2.01410177785,
		NeutralTemp:     3,
		BFieldX:         1,
		DiPerp:          1,
		XiPerp:          1,
		XePerp:          1,
		EtaPerp:         1,
		InitialValues: map[string]float64{
			"neutral_density":       1.e18,
			"ion_density":           1.e18,
			"ion_parallel_momentum": 1.e3,
			"ion_temperature":       5,
			"electron_temperature":  5,
		},
	}
}

func RunTransport(mt *ModelTransport) {
	if mt.Profile {
		defer profile.Start().Stop()
	}
	ip := defaultDeck()
	if mt.InputFile != "" {
		data, err := ioutil.ReadFile(mt.InputFile)
		if err != nil {
			panic(fmt.Errorf("unable to read input file %s: %v", mt.InputFile, err))
		}
		if err = ip.Parse(data); err != nil {
			panic(fmt.Errorf("unable to parse input file %s: %v", mt.InputFile, err))
		}
	} else {
		ip.ElementCount = mt.K
		ip.PolynomialOrder = mt.N
		ip.DT = mt.DT
		ip.FinalTime = mt.FinalTime
		ip.EnableMask = mt.EnableMask
	}
	ip.Print()

	var (
		VX, EToV = DG1D.SimpleMesh1D(ip.XMin, ip.XMax, ip.ElementCount)
		el       = DG1D.NewElements1D(ip.PolynomialOrder, VX, EToV)
		dg       = transport.DefaultDGParams(ip.PolynomialOrder)
		plasma   = &transport.PlasmaParams{
			MI:      ip.IonMass,
			ZI:      ip.IonCharge,
			MN:      ip.NeutralMass,
			TN:      ip.NeutralTemp,
			B0:      ip.BFieldX,
			DiPerp:  ip.DiPerp,
			XiPerp:  ip.XiPerp,
			XePerp:  ip.XePerp,
			EtaPerp: ip.EtaPerp,
		}
	)
	comb := transport.NewCombinedOp(el, dg, plasma, ip.EnableMask, deckBCs(ip))
	tdo := transport.NewTransportTDO(comb)
	tdo.SetLogging(mt.Verbose, "transport")

	y := make([]float64, comb.Height())
	off := comb.Offsets()
	for i := 0; i < transport.NumFields; i++ {
		val := ip.InitialValues[transport.FieldName(i)]
		for n := off[i]; n < off[i+1]; n++ {
			y[n] = val
		}
	}

	var stepper interface{ Step(dt float64, y []float64) }
	switch ip.Stepper {
	case "SDIRK2":
		stepper = ode.NewSDIRK2(tdo)
	default:
		stepper = ode.NewBackwardEuler(tdo)
	}

	sink := transport.NewDataSink()
	comb.RegisterDataFields(sink)

	var (
		logFrequency = 10
		Nsteps       = int(ip.FinalTime/ip.DT + 0.5)
		k            = make([]float64, comb.Height())
		Time         float64
		plt          *transportPlot
	)
	fmt.Printf("Nsteps = %d, DOF = %d\n", Nsteps, comb.Height())
	for tstep := 1; tstep <= Nsteps; tstep++ {
		stepper.Step(ip.DT, y)
		Time += ip.DT
		if mt.Graph {
			if plt == nil {
				plt = newTransportPlot(el, y[off[mt.GraphField]:off[mt.GraphField+1]])
			}
			plt.update(el, transport.FieldName(mt.GraphField),
				y[off[mt.GraphField]:off[mt.GraphField+1]], mt.Delay)
		}
		if tstep%logFrequency == 0 || tstep == Nsteps {
			fmt.Printf("step %6d, time %10.4e, newton iters %2d, ||R|| %10.4e\n",
				tstep, Time, tdo.Newton.FinalIters, tdo.Newton.FinalNorm)
			comb.PrepareDataFields(y, k, sink)
			if ip.CheckState {
				s := transport.SplitState(off, y, k)
				transport.CheckPhysicalState("transport", s)
			}
		}
	}
}

func deckBCs(ip *InputParameters.TransportParameters) (bcs [transport.NumFields][]transport.DirichletBC) {
	for name, perAttr := range ip.BCs {
		for i := 0; i < transport.NumFields; i++ {
			if transport.FieldName(i) != name {
				continue
			}
			for attr, val := range perAttr {
				bcs[i] = append(bcs[i], transport.DirichletBC{Attrs: []int{attr}, Value: val})
			}
		}
	}
	return
}

type transportPlot struct {
	chart    *chart2d.Chart2D
	colorMap *utils2.ColorMap
}

func newTransportPlot(el *DG1D.Elements1D, u []float64) *transportPlot {
	var (
		x          = el.NodalCoords()
		pMin, pMax = u[0], u[0]
	)
	for _, v := range u {
		if v < pMin {
			pMin = v
		}
		if v > pMax {
			pMax = v
		}
	}
	if pMax == pMin {
		pMax = pMin + 1
	}
	p := &transportPlot{
		chart:    chart2d.NewChart2D(1280, 1024, float32(x[0]), float32(x[len(x)-1]), float32(pMin), float32(pMax)),
		colorMap: utils2.NewColorMap(-1, 1, 1),
	}
	go p.chart.Plot()
	return p
}

func (p *transportPlot) update(el *DG1D.Elements1D, name string, u []float64, delay time.Duration) {
	if err := p.chart.AddSeries(name, el.NodalCoords(), u,
		chart2d.NoGlyph, chart2d.Solid, p.colorMap.GetRGB(0)); err != nil {
		panic("unable to add graph series")
	}
	if delay != 0 {
		time.Sleep(delay)
	}
}
