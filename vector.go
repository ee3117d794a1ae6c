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

package thermochem

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ThermoVector is a vector quantity that depends only on temperature
// and pressure, together with its temperature and pressure derivatives.
type ThermoVector struct {
	Val, DdT, DdP []float64

	// DerivativesUnavailable is true if DdT and DdP were not computed.
	DerivativesUnavailable bool
}

// NewThermoVector returns a zero-valued vector of length n.
func NewThermoVector(n int) ThermoVector {
	return ThermoVector{
		Val: make([]float64, n),
		DdT: make([]float64, n),
		DdP: make([]float64, n),
	}
}

// Len returns the length of v.
func (v ThermoVector) Len() int { return len(v.Val) }

// Row returns element i of v. The composition derivatives of the
// result are nil, since v does not depend on composition.
func (v ThermoVector) Row(i int) ChemicalScalar {
	return ChemicalScalar{
		Val:                    v.Val[i],
		DdT:                    v.DdT[i],
		DdP:                    v.DdP[i],
		DerivativesUnavailable: v.DerivativesUnavailable,
	}
}

// Rows returns the segment of v starting at offset with the given size.
func (v ThermoVector) Rows(offset, size int) ThermoVector {
	return ThermoVector{
		Val:                    v.Val[offset : offset+size],
		DdT:                    v.DdT[offset : offset+size],
		DdP:                    v.DdP[offset : offset+size],
		DerivativesUnavailable: v.DerivativesUnavailable,
	}
}

// ChemicalVector is a vector quantity together with its partial
// derivatives with respect to temperature, pressure and species amounts.
// DdN has one row per element of Val and one column per species in the
// system.
type ChemicalVector struct {
	Val, DdT, DdP []float64
	DdN           *mat.Dense

	// DerivativesUnavailable is true if DdT, DdP and DdN were not
	// computed. Zeros in the derivative channels are then placeholders,
	// not a statement that the quantity is insensitive.
	DerivativesUnavailable bool
}

// NewChemicalVector returns a zero-valued vector with rows elements
// and composition derivatives for numSpecies species.
func NewChemicalVector(rows, numSpecies int) ChemicalVector {
	v := ChemicalVector{
		Val: make([]float64, rows),
		DdT: make([]float64, rows),
		DdP: make([]float64, rows),
	}
	if rows > 0 && numSpecies > 0 {
		v.DdN = mat.NewDense(rows, numSpecies, nil)
	}
	return v
}

// Len returns the length of v.
func (v ChemicalVector) Len() int { return len(v.Val) }

// NumSpecies returns the number of composition derivative columns.
func (v ChemicalVector) NumSpecies() int {
	if v.DdN == nil {
		return 0
	}
	_, c := v.DdN.Dims()
	return c
}

// Row returns element i of v.
func (v ChemicalVector) Row(i int) ChemicalScalar {
	s := ChemicalScalar{
		Val:                    v.Val[i],
		DdT:                    v.DdT[i],
		DdP:                    v.DdP[i],
		DerivativesUnavailable: v.DerivativesUnavailable,
	}
	if v.DdN != nil {
		s.DdN = mat.Row(nil, i, v.DdN)
	}
	return s
}

// SetRow sets element i of v to s. If s has no derivatives, neither
// has v.
func (v *ChemicalVector) SetRow(i int, s ChemicalScalar) {
	if s.DerivativesUnavailable {
		v.DerivativesUnavailable = true
	}
	v.Val[i] = s.Val
	v.DdT[i] = s.DdT
	v.DdP[i] = s.DdP
	if v.DdN == nil {
		return
	}
	_, c := v.DdN.Dims()
	for j := 0; j < c; j++ {
		var d float64
		if len(s.DdN) > 0 {
			d = s.DdN[j]
		}
		v.DdN.Set(i, j, d)
	}
}

// Rows returns the segment of v starting at offset with the given size.
// The segment shares storage with v.
func (v ChemicalVector) Rows(offset, size int) ChemicalVector {
	o := ChemicalVector{
		Val:                    v.Val[offset : offset+size],
		DdT:                    v.DdT[offset : offset+size],
		DdP:                    v.DdP[offset : offset+size],
		DerivativesUnavailable: v.DerivativesUnavailable,
	}
	if v.DdN != nil && size > 0 {
		_, c := v.DdN.Dims()
		o.DdN = v.DdN.Slice(offset, offset+size, 0, c).(*mat.Dense)
	}
	return o
}

// Sum returns the sum of the elements of v.
func (v ChemicalVector) Sum() ChemicalScalar {
	w := make([]float64, v.Len())
	for i := range w {
		w[i] = 1
	}
	return v.Dot(w)
}

// Dot returns Σ w[i]*v[i] for constant weights w.
func (v ChemicalVector) Dot(w []float64) ChemicalScalar {
	s := ChemicalScalar{
		Val:                    floats.Dot(w, v.Val),
		DdT:                    floats.Dot(w, v.DdT),
		DdP:                    floats.Dot(w, v.DdP),
		DerivativesUnavailable: v.DerivativesUnavailable,
	}
	if v.DdN != nil {
		d := mat.NewVecDense(v.NumSpecies(), nil)
		d.MulVec(v.DdN.T(), mat.NewVecDense(len(w), w))
		s.DdN = d.RawVector().Data
	}
	return s
}

// HasDerivatives returns whether all derivative channels of v were
// computed.
func (v ChemicalVector) HasDerivatives() bool { return !v.DerivativesUnavailable }
