package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type TransportParameters struct {
	Title           string  `yaml:"Title"`
	XMin            float64 `yaml:"XMin"`
	XMax            float64 `yaml:"XMax"`
	ElementCount    int     `yaml:"ElementCount"`
	PolynomialOrder int     `yaml:"PolynomialOrder"`
	FinalTime       float64 `yaml:"FinalTime"`
	DT              float64 `yaml:"DT"`
	Stepper         string  `yaml:"Stepper"` // BackwardEuler or SDIRK2
	EnableMask      int     `yaml:"EnableMask"`
	CheckState      bool    `yaml:"CheckState"`

	IonMass     float64 `yaml:"IonMass"` // amu
	IonCharge   float64 `yaml:"IonCharge"`
	NeutralMass float64 `yaml:"NeutralMass"` // amu
	NeutralTemp float64 `yaml:"NeutralTemp"` // eV
	BFieldX     float64 `yaml:"BFieldX"`     // x-projection of the unit field direction
	DiPerp      float64 `yaml:"DiPerp"`
	XiPerp      float64 `yaml:"XiPerp"`
	XePerp      float64 `yaml:"XePerp"`
	EtaPerp     float64 `yaml:"EtaPerp"`

	// initial uniform field values, keyed by field name
	InitialValues map[string]float64 `yaml:"InitialValues"`
	// Dirichlet BCs: field name -> attribute -> value; attribute -1 means
	// all boundaries
	BCs map[string]map[int]float64 `yaml:"BCs"`
}

func (ip *TransportParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *TransportParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Element Count\n", ip.ElementCount)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("%8.5g\t\t= DT\n", ip.DT)
	fmt.Printf("%8.5g\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t= Stepper\n", ip.Stepper)
	fmt.Printf("[%05b]\t\t\t= Enable Mask\n", ip.EnableMask)
	keys := make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
