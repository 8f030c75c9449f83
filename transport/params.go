package transport

// Field indices into the concatenated unknown vector. The order is
// load-bearing: it fixes the block layout of the offsets, the Jacobian and
// the preconditioner.
const (
	NeutralDensity = iota
	IonDensity
	IonMomentum
	IonTemperature
	ElectronTemperature
	NumFields
)

var fieldNames = [NumFields]string{
	"neutral_density",
	"ion_density",
	"ion_parallel_momentum",
	"ion_temperature",
	"electron_temperature",
}

func FieldName(i int) string { return fieldNames[i] }

// Physical constants (SI)
const (
	EV  = 1.602176634e-19   // J per eV
	AMU = 1.66053906892e-27 // kg per amu
)

// DGParams carries the interior penalty discretization parameters.
type DGParams struct {
	Sigma float64 // symmetrization sign, -1 for SIP
	Kappa float64 // penalty scale, ~ (N+1)^2
}

func DefaultDGParams(order int) DGParams {
	np := float64(order + 1)
	return DGParams{Sigma: -1, Kappa: np * np}
}

// PlasmaParams holds the species and transport model parameters. Densities
// are per m^3, temperatures in eV, masses in amu.
type PlasmaParams struct {
	MI float64 // ion mass [amu]
	ZI float64 // ion charge number
	MN float64 // neutral mass [amu]
	TN float64 // neutral temperature [eV]
	B0 float64 // x-projection of the unit magnetic field direction

	DiPerp  float64 // ion perpendicular particle diffusivity [m^2/s]
	XiPerp  float64 // ion perpendicular thermal diffusivity [m^2/s]
	XePerp  float64 // electron perpendicular thermal diffusivity [m^2/s]
	EtaPerp float64 // ion perpendicular momentum diffusivity [m^2/s]
}

func DefaultPlasmaParams() *PlasmaParams {
	return &PlasmaParams{
		MI:      2.01410177785, // deuterium
		ZI:      1,
		MN:      2.01410177785,
		TN:      3,
		B0:      1,
		DiPerp:  1,
		XiPerp:  1,
		XePerp:  1,
		EtaPerp: 1,
	}
}

// DirichletBC is one (attribute set, value) Dirichlet boundary entry.
// Attribute -1 selects all boundary attributes.
type DirichletBC struct {
	Attrs []int
	Value float64
}
