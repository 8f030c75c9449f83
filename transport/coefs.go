package transport

import "math"

// Transport coefficient closures. Temperatures in eV, densities per m^3.
// The parallel coefficients are simplified Braginskii-style fits; the
// perpendicular coefficients are anomalous constants from PlasmaParams.

// IonizationRate is the electron impact ionization rate coefficient
// <sigma*v>_iz(T_e) in m^3/s.
func IonizationRate(Te float64) float64 {
	return 3.0e-16 * Te * Te / (3.0 + 0.01*Te*Te)
}

// IonizationRateDeriv is d<sigma*v>_iz/dT_e.
func IonizationRateDeriv(Te float64) float64 {
	den := 3.0 + 0.01*Te*Te
	return 1.8e-15 * Te / (den * den)
}

// RecombinationRate is an approximate radiative recombination rate
// coefficient in m^3/s.
func RecombinationRate(Te float64) float64 {
	if Te <= 0 {
		return 0
	}
	return 2.6e-19 / math.Sqrt(Te)
}

// NeutralThermalSpeed is the mean thermal speed of neutrals at temperature
// Tn [eV] with mass mn [amu].
func NeutralThermalSpeed(Tn, mn float64) float64 {
	return math.Sqrt(8 * Tn * EV / (math.Pi * mn * AMU))
}

// NeutralDiffusivity is D_n = v_n^2 / (3 n_e <sigma*v>_iz).
func NeutralDiffusivity(vn, ne, Te float64) float64 {
	return vn * vn / (3 * ne * IonizationRate(Te))
}

// AlignedScalar reduces the field-aligned anisotropic tensor to its xx
// component for a 1-D discretization: K_xx = b0^2 (para - perp) + perp.
func AlignedScalar(b0, para, perp float64) float64 {
	return b0*b0*(para-perp) + perp
}

// AlignedTensor builds the full 3x3 field-aligned diffusion tensor from the
// unit direction bHat and the (parallel, perpendicular, cross) components.
func AlignedTensor(bHat [3]float64, para, perp, cross float64) (K [3][3]float64) {
	for i := 0; i < 3; i++ {
		K[i][i] = perp
		for j := 0; j < 3; j++ {
			K[i][j] += (para - perp) * bHat[i] * bHat[j]
		}
	}
	// cross (Hall-like) part: cross * b x
	K[0][1] += -cross * bHat[2]
	K[1][0] += cross * bHat[2]
	K[0][2] += cross * bHat[1]
	K[2][0] += -cross * bHat[1]
	K[1][2] += -cross * bHat[0]
	K[2][1] += cross * bHat[0]
	return
}

// IonThermalDiffusivityPara is a simplified parallel ion heat diffusivity,
// chi ~ 3.9 tau_i T_i / m_i with the collision time folded into a single
// T^{5/2} scaling. Units fold the eV factor so the energy equation is posed
// in eV.
func IonThermalDiffusivityPara(ni, Ti, mi, zi float64) float64 {
	tau := 3.44e11 * math.Pow(Ti, 1.5) / (ni * zi * zi * zi * zi * 10.0)
	return 3.9 * tau * Ti * EV / (mi * AMU)
}

// ElectronThermalDiffusivityPara is the electron analog, chi ~ 3.16 tau_e
// T_e / m_e with the same folded collision-time fit.
func ElectronThermalDiffusivityPara(ne, Te, zi float64) float64 {
	const me = 9.1093837139e-31
	tau := 3.44e11 * math.Pow(Te, 1.5) / (ne * zi * 10.0)
	return 3.16 * tau * Te * EV / me
}

// IonViscosityPara is a simplified parallel momentum diffusivity
// eta/(m_i n_i) ~ 0.96 tau_i T_i / m_i.
func IonViscosityPara(ni, Ti, mi, zi float64) float64 {
	tau := 3.44e11 * math.Pow(Ti, 1.5) / (ni * zi * zi * zi * zi * 10.0)
	return 0.96 * tau * Ti * EV / (mi * AMU)
}
