package DG1D

import (
	"math"

	"github.com/james-bowman/sparse"
)

// Global operator assembly. Every assembler produces a CSR matrix over the
// flat element-major DOF vector. Variable coefficients are nodal fields
// evaluated by collocation: the elemental matrix is right-scaled by the nodal
// coefficient values, which is exact for constant coefficients and spectrally
// consistent otherwise.

// AssembleMass builds the global mass operator with nodal coefficient c,
// entries A[ki,kj] = J_k * MassHat[i,j] * c[kj]. Pass nil for unit
// coefficient.
func (el *Elements1D) AssembleMass(c []float64) *sparse.CSR {
	var (
		n   = el.NumDOF()
		Np  = el.Np
		dok = sparse.NewDOK(n, n)
	)
	for k := 0; k < el.K; k++ {
		for i := 0; i < Np; i++ {
			gi := el.GlobalID(k, i)
			for j := 0; j < Np; j++ {
				gj := el.GlobalID(k, j)
				val := el.J[k] * el.MassHat.At(i, j)
				if c != nil {
					val *= c[gj]
				}
				if val != 0 {
					dok.Set(gi, gj, dok.At(gi, gj)+val)
				}
			}
		}
	}
	return dok.ToCSR()
}

// AssembleDiffusion builds the symmetric interior penalty operator for
// -div(d grad u) with nodal diffusivity d, penalty parameters sigma and
// kappa, and boundary face terms only where marker selects a Dirichlet
// boundary. Unmarked boundaries are natural (zero flux).
func (el *Elements1D) AssembleDiffusion(d []float64, sigma, kappa float64, marker [2]bool) *sparse.CSR {
	var (
		n   = el.NumDOF()
		Np  = el.Np
		dok = sparse.NewDOK(n, n)
	)
	add := func(i, j int, val float64) {
		if val != 0 {
			dok.Set(i, j, dok.At(i, j)+val)
		}
	}
	// Volume terms: Rx_k * Dr' * MassHat * diag(d) * Dr per element
	DrT := el.Dr.Transpose()
	for k := 0; k < el.K; k++ {
		dk := d[k*Np : (k+1)*Np]
		B := DrT.Mul(el.MassHat.Copy().ScaleCols(dk)).Mul(el.Dr).Scale(el.Rx[k])
		for i := 0; i < Np; i++ {
			gi := el.GlobalID(k, i)
			for j := 0; j < Np; j++ {
				add(gi, el.GlobalID(k, j), B.At(i, j))
			}
		}
	}
	// Interior faces: element k right end against element k+1 left end.
	for k := 0; k < el.K-1; k++ {
		var (
			kL, kR = k, k + 1
			fL     = el.GlobalID(kL, Np-1)
			fR     = el.GlobalID(kR, 0)
			dL     = d[fL]
			dR     = d[fR]
		)
		hL, hR := el.ElemSize(kL), el.ElemSize(kR)
		pen := kappa * 0.5 * (dL/hL + dR/hR)
		for j := 0; j < Np; j++ {
			DLj := el.Rx[kL] * el.Dr.At(Np-1, j)
			DRj := el.Rx[kR] * el.Dr.At(0, j)
			// -<{d du/dn}, [v]>
			add(fL, el.GlobalID(kL, j), -0.5*dL*DLj)
			add(fL, el.GlobalID(kR, j), -0.5*dR*DRj)
			add(fR, el.GlobalID(kL, j), 0.5*dL*DLj)
			add(fR, el.GlobalID(kR, j), 0.5*dR*DRj)
			// sigma <[u], {d dv/dn}>
			add(el.GlobalID(kL, j), fL, sigma*0.5*dL*DLj)
			add(el.GlobalID(kL, j), fR, -sigma*0.5*dL*DLj)
			add(el.GlobalID(kR, j), fL, sigma*0.5*dR*DRj)
			add(el.GlobalID(kR, j), fR, -sigma*0.5*dR*DRj)
		}
		// kappa <{d/h} [u], [v]>
		add(fL, fL, pen)
		add(fL, fR, -pen)
		add(fR, fL, -pen)
		add(fR, fR, pen)
	}
	// Dirichlet boundary faces, one-sided traces.
	if marker[0] {
		k, i0 := 0, 0
		f := el.GlobalID(k, i0)
		df := d[f]
		pen := kappa * df / el.ElemSize(k)
		for j := 0; j < Np; j++ {
			Dj := el.Rx[k] * el.Dr.At(i0, j) // du/dn = -du/dx at the left end
			add(f, el.GlobalID(k, j), df*Dj)
			add(el.GlobalID(k, j), f, -sigma*df*Dj)
		}
		add(f, f, pen)
	}
	if marker[1] {
		k, i0 := el.K-1, Np-1
		f := el.GlobalID(k, i0)
		df := d[f]
		pen := kappa * df / el.ElemSize(k)
		for j := 0; j < Np; j++ {
			Dj := el.Rx[k] * el.Dr.At(i0, j)
			add(f, el.GlobalID(k, j), -df*Dj)
			add(el.GlobalID(k, j), f, sigma*df*Dj)
		}
		add(f, f, pen)
	}
	return dok.ToCSR()
}

// DiffusionBdrRHS assembles the Dirichlet penalty right-hand side matching
// AssembleDiffusion: b_i = sigma*g*{d dv/dn} + kappa*{d/h}*g at marked
// boundaries with boundary values gLeft, gRight. The result must be
// subtracted from the residual.
func (el *Elements1D) DiffusionBdrRHS(d []float64, sigma, kappa float64, marker [2]bool, gLeft, gRight float64) (b []float64) {
	var (
		Np = el.Np
	)
	b = make([]float64, el.NumDOF())
	if marker[0] && gLeft != 0 {
		k, i0 := 0, 0
		f := el.GlobalID(k, i0)
		df := d[f]
		pen := kappa * df / el.ElemSize(k)
		for j := 0; j < Np; j++ {
			Dj := el.Rx[k] * el.Dr.At(i0, j)
			b[el.GlobalID(k, j)] += -sigma * df * Dj * gLeft
		}
		b[f] += pen * gLeft
	}
	if marker[1] && gRight != 0 {
		k, i0 := el.K-1, Np-1
		f := el.GlobalID(k, i0)
		df := d[f]
		pen := kappa * df / el.ElemSize(k)
		for j := 0; j < Np; j++ {
			Dj := el.Rx[k] * el.Dr.At(i0, j)
			b[el.GlobalID(k, j)] += sigma * df * Dj * gRight
		}
		b[f] += pen * gRight
	}
	return
}

// AssembleWeakAdvection builds the advection operator for div(v u) in weak
// form: volume term -(u, v dphi/dx) plus upwind interior face fluxes. When
// includeBdr is set, outflow boundary faces use the one-sided upwind state
// and inflow boundaries take a zero exterior state.
func (el *Elements1D) AssembleWeakAdvection(v []float64, includeBdr bool) *sparse.CSR {
	var (
		n   = el.NumDOF()
		Np  = el.Np
		dok = sparse.NewDOK(n, n)
	)
	add := func(i, j int, val float64) {
		if val != 0 {
			dok.Set(i, j, dok.At(i, j)+val)
		}
	}
	// Volume: -(Dr' * MassHat * diag(v)); the J*Rx metric factors cancel.
	for k := 0; k < el.K; k++ {
		for i := 0; i < Np; i++ {
			gi := el.GlobalID(k, i)
			for j := 0; j < Np; j++ {
				var sum float64
				for q := 0; q < Np; q++ {
					sum += el.Dr.At(q, i) * el.MassHat.At(q, j)
				}
				add(gi, el.GlobalID(k, j), -sum*v[el.GlobalID(k, j)])
			}
		}
	}
	// Interior faces: F = {v u} + 0.5 |v_f| [u], with n_L = +1.
	for k := 0; k < el.K-1; k++ {
		var (
			fL = el.GlobalID(k, Np-1)
			fR = el.GlobalID(k+1, 0)
			vL = v[fL]
			vR = v[fR]
		)
		absV := math.Abs(0.5 * (vL + vR))
		add(fL, fL, 0.5*vL+0.5*absV)
		add(fL, fR, 0.5*vR-0.5*absV)
		add(fR, fL, -(0.5*vL + 0.5*absV))
		add(fR, fR, -(0.5*vR - 0.5*absV))
	}
	if includeBdr {
		// Left end, outward normal -1
		f := el.GlobalID(0, 0)
		add(f, f, -0.5*v[f]+0.5*math.Abs(v[f]))
		// Right end, outward normal +1
		f = el.GlobalID(el.K-1, Np-1)
		add(f, f, 0.5*v[f]+0.5*math.Abs(v[f]))
	}
	return dok.ToCSR()
}

// AssembleMassGrad builds the mass-weighted derivative operator
// M * d/dx * diag(c), entries A[ki,kj] = J_k * sum_q MassHat[i,q] * Rx_k *
// Dr[q,j] * c[kj]. Used for linearized gradient source terms.
func (el *Elements1D) AssembleMassGrad(c []float64) *sparse.CSR {
	var (
		n   = el.NumDOF()
		Np  = el.Np
		dok = sparse.NewDOK(n, n)
	)
	for k := 0; k < el.K; k++ {
		for i := 0; i < Np; i++ {
			gi := el.GlobalID(k, i)
			for j := 0; j < Np; j++ {
				var sum float64
				for q := 0; q < Np; q++ {
					sum += el.MassHat.At(i, q) * el.Rx[k] * el.Dr.At(q, j)
				}
				gj := el.GlobalID(k, j)
				if val := el.J[k] * sum * c[gj]; val != 0 {
					dok.Set(gi, gj, val)
				}
			}
		}
	}
	return dok.ToCSR()
}

// SourceRHS computes the load vector M*s for a nodal source field:
// b_i = J_k * sum_j MassHat[i,j] * s[kj].
func (el *Elements1D) SourceRHS(s []float64) (b []float64) {
	var (
		Np = el.Np
	)
	b = make([]float64, el.NumDOF())
	for k := 0; k < el.K; k++ {
		for i := 0; i < Np; i++ {
			var sum float64
			for j := 0; j < Np; j++ {
				sum += el.MassHat.At(i, j) * s[el.GlobalID(k, j)]
			}
			b[el.GlobalID(k, i)] = el.J[k] * sum
		}
	}
	return
}
