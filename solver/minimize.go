/*
Copyright © 2019 the thermochem authors.
This file is part of thermochem.

thermochem is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

thermochem is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with thermochem.  If not, see <http://www.gnu.org/licenses/>.
*/

package solver

import (
	"math"

	"github.com/spatialmodel/thermochem"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// maxLnStep is the largest change in the logarithm of any species
	// amount in one iteration.
	maxLnStep = 3.

	// minAmount [mol] bounds species amounts from below.
	minAmount = 1.0e-45

	// aiaAmount [mol] is the starting amount of absent species in an
	// automatic initial approximation.
	aiaAmount = 1.0e-10
)

// Run minimises the Gibbs energy of the system at the current
// temperature, pressure and element amounts, using Newton's method on
// the optimality conditions
//
//	μᵢ/RT - Σₑ Aₑᵢ λₑ = 0
//	Σᵢ Aₑᵢ nᵢ - bₑ = 0
//
// in the unknowns ln n and λ. Species amounts are updated after every
// iteration, so if the run does not converge they hold the last
// iterate.
func (n *Node) Run() Status {
	sia := n.status.OK()
	N := n.NumDC()
	M := len(n.rows)
	T, P := n.t, n.p
	rt := thermochem.R * T

	floor := minAmount
	if !sia {
		floor = aiaAmount
	}
	x := make([]float64, N)
	amounts := make([]float64, N)
	for i, v := range n.n {
		amounts[i] = math.Max(v, floor)
		x[i] = math.Log(amounts[i])
	}
	lambda := make([]float64, M)

	scale := 1.
	for _, e := range n.rows {
		scale = math.Max(scale, math.Abs(n.b[e]))
	}

	r := mat.NewVecDense(N+M, nil)
	J := mat.NewDense(N+M, N+M, nil)
	var d mat.VecDense
	converged := false
	n.iterations = 0
	for it := 1; it <= n.settings.MaxIterations; it++ {
		n.iterations = it
		u := n.model.ChemicalPotentials(T, P, amounts)

		// Residuals.
		var rmax float64
		for i := 0; i < N; i++ {
			v := u.Val[i] / rt
			for k, e := range n.rows {
				v -= n.formula.At(e, i) * lambda[k]
			}
			r.SetVec(i, v)
			rmax = math.Max(rmax, math.Abs(v))
		}
		for k, e := range n.rows {
			v := -n.b[e]
			for i := 0; i < N; i++ {
				v += n.formula.At(e, i) * amounts[i]
			}
			r.SetVec(N+k, v)
			rmax = math.Max(rmax, math.Abs(v)/scale)
		}
		if rmax < n.settings.Tolerance {
			converged = true
			break
		}

		// Jacobian.
		J.Zero()
		for i := 0; i < N; i++ {
			for j := 0; j < N; j++ {
				J.Set(i, j, u.DdN.At(i, j)*amounts[j]/rt)
			}
			for k, e := range n.rows {
				a := n.formula.At(e, i)
				J.Set(i, N+k, -a)
				J.Set(N+k, i, a*amounts[i])
			}
		}
		r.ScaleVec(-1, r)
		if err := d.SolveVec(J, r); err != nil {
			// Ill-conditioned systems still give a usable step.
			if c, ok := err.(mat.Condition); !ok || math.IsInf(float64(c), 1) {
				n.status = Error
				return n.status
			}
		}
		step := d.RawVector().Data
		if !finite(step) {
			n.status = Error
			return n.status
		}
		alpha := 1.
		if m := floats.Max(absAll(step[:N])); m > maxLnStep {
			alpha = maxLnStep / m
		}
		for i := 0; i < N; i++ {
			x[i] = math.Max(x[i]+alpha*step[i], math.Log(minAmount))
			amounts[i] = math.Exp(x[i])
		}
		for k := range lambda {
			lambda[k] += alpha * step[N+k]
		}
		copy(n.n, amounts)
	}
	copy(n.n, amounts)

	switch {
	case converged && sia:
		n.status = OKSIA
	case converged:
		n.status = OKAIA
	case sia:
		n.status = BadSIA
	default:
		n.status = BadAIA
	}
	return n.status
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// absAll returns the absolute values of v.
func absAll(v []float64) []float64 {
	o := make([]float64, len(v))
	for i, x := range v {
		o[i] = math.Abs(x)
	}
	return o
}

// independentRows returns the indices of a maximal set of linearly
// independent rows of a, found by Gram-Schmidt orthogonalisation in
// row order. Rows that are zero or a combination of earlier rows are
// left out.
func independentRows(a mat.Matrix) []int {
	nr, _ := a.Dims()
	var basis [][]float64
	var rows []int
	for i := 0; i < nr; i++ {
		v := mat.Row(nil, i, a)
		norm0 := floats.Norm(v, 2)
		if norm0 == 0 {
			continue
		}
		for _, q := range basis {
			floats.AddScaled(v, -floats.Dot(q, v), q)
		}
		norm := floats.Norm(v, 2)
		if norm <= 1.0e-10*norm0 {
			continue
		}
		floats.Scale(1/norm, v)
		basis = append(basis, v)
		rows = append(rows, i)
	}
	return rows
}
