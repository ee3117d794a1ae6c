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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// balanceTolerance is the largest element or charge imbalance allowed
// in a half reaction.
const balanceTolerance = 1.0e-6

// AqueousProperties calculates the properties of the aqueous phase of a
// chemical system from a set of ChemicalProperties. If the system has no
// aqueous phase, every property is zero.
type AqueousProperties struct {
	props *ChemicalProperties

	// offset and size locate the aqueous species in the global index.
	// size is zero if there is no aqueous phase.
	offset, size int

	// water is the global index of the solvent, or NumSpecies() if the
	// aqueous phase has none.
	water int
}

// NewAqueousProperties returns the aqueous-phase properties of p.
func NewAqueousProperties(p *ChemicalProperties) *AqueousProperties {
	sys := p.system
	a := &AqueousProperties{props: p, water: sys.NumSpecies()}
	iaq := sys.AqueousPhaseIndex()
	if iaq == sys.NumPhases() {
		return a
	}
	a.offset = sys.PhaseOffset(iaq)
	a.size = sys.NumSpeciesInPhase(iaq)
	for i := a.offset; i < a.offset+a.size; i++ {
		if IsWater(sys.SpeciesAt(i).Name) {
			a.water = i
			break
		}
	}
	return a
}

// HasAqueousPhase returns whether the system has an aqueous phase.
func (a *AqueousProperties) HasAqueousPhase() bool { return a.size > 0 }

func (a *AqueousProperties) zero() ChemicalScalar {
	return NewChemicalScalar(len(a.props.n))
}

// Molalities returns the molalities [mol/kg] of the aqueous species.
func (a *AqueousProperties) Molalities() ChemicalVector {
	return Molalities(a.props.n, a.offset, a.size, a.water)
}

// IonicStrength returns the ionic strength of the aqueous phase [mol/kg].
func (a *AqueousProperties) IonicStrength() ChemicalScalar {
	if !a.HasAqueousPhase() {
		return a.zero()
	}
	z := a.props.system.Charges()[a.offset : a.offset+a.size]
	return IonicStrength(a.Molalities(), z)
}

// PH returns the pH of the aqueous phase, -log10 of the activity of the
// hydron. It is zero if the aqueous phase has no hydron species.
func (a *AqueousProperties) PH() ChemicalScalar {
	sys := a.props.system
	for i := a.offset; i < a.offset+a.size; i++ {
		if IsHydron(sys.SpeciesAt(i).Name) {
			return a.props.LnActivity(i).Scale(-1 / Ln10)
		}
	}
	return a.zero()
}

// PE returns the pE of the aqueous phase, calculated from the dual
// chemical potential of the charge element. The element potentials y
// are the minimum-norm least-squares solution of Aᵀy = μ over the
// aqueous species with positive amounts, where A holds only the
// elements present in those species. Without a redox couple the charge
// potential is not fixed by μ, and the minimum-norm solution picks the
// smallest consistent set of potentials. pE is zero if there is no
// aqueous phase or if none of those species is charged.
func (a *AqueousProperties) PE() ChemicalScalar {
	if !a.HasAqueousPhase() {
		return a.zero()
	}
	sys := a.props.system
	N := len(a.props.n)
	formula := sys.FormulaMatrixWithCharge()
	nrows, _ := formula.Dims()
	charge := nrows - 1

	var species []int
	for i := a.offset; i < a.offset+a.size; i++ {
		if a.props.n[i] > 0 {
			species = append(species, i)
		}
	}
	var elems []int
	iz := -1
	for e := 0; e < nrows; e++ {
		for _, i := range species {
			if formula.At(e, i) != 0 {
				if e == charge {
					iz = len(elems)
				}
				elems = append(elems, e)
				break
			}
		}
	}
	if iz < 0 {
		return a.zero()
	}

	// Columns of rhs: value, d/dT, d/dP, then d/dn for each species.
	A := mat.NewDense(len(species), len(elems), nil)
	rhs := mat.NewDense(len(species), 3+N, nil)
	u := a.props.u
	for r, i := range species {
		for c, e := range elems {
			A.Set(r, c, formula.At(e, i))
		}
		ui := u.Row(i)
		rhs.Set(r, 0, ui.Val)
		rhs.Set(r, 1, ui.DdT)
		rhs.Set(r, 2, ui.DdP)
		for j, d := range ui.DdN {
			rhs.Set(r, 3+j, d)
		}
	}
	y, ok := minNormSolve(A, rhs)
	if !ok {
		return a.zero()
	}
	yz := ChemicalScalar{
		Val:                    y.At(iz, 0),
		DdT:                    y.At(iz, 1),
		DdP:                    y.At(iz, 2),
		DdN:                    make([]float64, N),
		DerivativesUnavailable: u.DerivativesUnavailable,
	}
	for j := range yz.DdN {
		yz.DdN[j] = y.At(iz, 3+j)
	}
	return yz.Div(a.props.rt().Scale(Ln10))
}

// svdTolerance is the smallest singular value, relative to the largest,
// treated as nonzero by minNormSolve.
const svdTolerance = 1.0e-10

// minNormSolve returns the minimum-norm least-squares solution X of
// A X = B, using the pseudo-inverse of A from its singular value
// decomposition. ok is false if the decomposition fails.
func minNormSolve(A, B mat.Matrix) (x *mat.Dense, ok bool) {
	var svd mat.SVD
	if !svd.Factorize(A, mat.SVDThin) {
		return nil, false
	}
	sv := svd.Values(nil)
	if len(sv) == 0 || sv[0] == 0 {
		_, n := A.Dims()
		_, c := B.Dims()
		return mat.NewDense(n, c, nil), true
	}
	u := svd.UTo(nil)
	v := svd.VTo(nil)

	// X = V Σ⁺ Uᵀ B
	var utb mat.Dense
	utb.Mul(u.T(), B)
	_, c := utb.Dims()
	for i, si := range sv {
		f := 0.
		if si > svdTolerance*sv[0] {
			f = 1 / si
		}
		for j := 0; j < c; j++ {
			utb.Set(i, j, utb.At(i, j)*f)
		}
	}
	x = new(mat.Dense)
	x.Mul(v, &utb)
	return x, true
}

// PEReaction returns the pE of the aqueous phase calculated from a half
// reaction such as
//
//	Fe++ = Fe+++ + e-
//
// using pE = Σ νᵢμᵢ / (νₑ RT ln10), where the sum is over the species
// other than the electron and νₑ is the electron coefficient. An error
// is returned if the reaction cannot be parsed, names a species that is
// not in the system, has no electrons, or is not balanced in elements
// and charge.
func (a *AqueousProperties) PEReaction(reaction string) (ChemicalScalar, error) {
	r, err := ParseReaction(reaction)
	if err != nil {
		return a.zero(), err
	}
	sys := a.props.system
	formula := sys.FormulaMatrixWithCharge()
	if formula == nil {
		return a.zero(), fmt.Errorf("thermochem: reaction '%s': the system has no species", reaction)
	}
	nrows, _ := formula.Dims()
	balance := make([]float64, nrows)
	var nue float64
	var idx []int
	var coeffs []float64
	for k, name := range r.Species {
		c := r.Coefficients[k]
		if name == ElectronName {
			nue += c
			balance[nrows-1] -= c
			continue
		}
		i := sys.SpeciesIndex(name)
		if i == sys.NumSpecies() {
			return a.zero(), fmt.Errorf("thermochem: species '%s' in reaction '%s' is not in the system", name, reaction)
		}
		for e := 0; e < nrows; e++ {
			balance[e] += c * formula.At(e, i)
		}
		idx = append(idx, i)
		coeffs = append(coeffs, c)
	}
	if nue == 0 {
		return a.zero(), fmt.Errorf("thermochem: reaction '%s' has no electrons", reaction)
	}
	for e, v := range balance {
		if math.Abs(v) > balanceTolerance {
			what := "charge"
			if e < nrows-1 {
				what = "element " + sys.Element(e).Name
			}
			return a.zero(), fmt.Errorf("thermochem: reaction '%s' is not balanced in %s (residual %g)", reaction, what, v)
		}
	}
	if !a.HasAqueousPhase() {
		return a.zero(), nil
	}
	sum := a.zero()
	sum.DerivativesUnavailable = a.props.u.DerivativesUnavailable
	for k, i := range idx {
		sum = sum.Add(a.props.u.Row(i).Scale(coeffs[k]))
	}
	return sum.Div(a.props.rt().Scale(nue * Ln10)), nil
}

// Eh returns the reduction potential of the aqueous phase [V],
// calculated from PE.
func (a *AqueousProperties) Eh() ChemicalScalar {
	if !a.HasAqueousPhase() {
		return a.zero()
	}
	return a.ehFromPE(a.PE())
}

// EhReaction returns the reduction potential of the aqueous phase [V],
// calculated from PEReaction.
func (a *AqueousProperties) EhReaction(reaction string) (ChemicalScalar, error) {
	pe, err := a.PEReaction(reaction)
	if err != nil || !a.HasAqueousPhase() {
		return pe, err
	}
	return a.ehFromPE(pe), nil
}

// ehFromPE returns Eh = pE·RT·ln10/F.
func (a *AqueousProperties) ehFromPE(pe ChemicalScalar) ChemicalScalar {
	return pe.Mul(a.props.rt()).Scale(Ln10 / F)
}

// Molalities returns the molalities [mol/kg] of the size species
// starting at global index offset, dissolved in the solvent with global
// index water. Derivatives are taken with respect to all len(n) species:
//
//	∂mᵢ/∂nⱼ = δᵢⱼ/(n_w M_w) - δ_wⱼ mᵢ/n_w
//
// All molalities are zero if the solvent index is out of range or the
// solvent amount is not positive.
func Molalities(n []float64, offset, size, water int) ChemicalVector {
	m := NewChemicalVector(size, len(n))
	if water < 0 || water >= len(n) || n[water] <= 0 {
		return m
	}
	kgw := n[water] * WaterMolarMass
	for k := 0; k < size; k++ {
		i := offset + k
		mi := n[i] / kgw
		m.Val[k] = mi
		m.DdN.Set(k, i, m.DdN.At(k, i)+1/kgw)
		m.DdN.Set(k, water, m.DdN.At(k, water)-mi/n[water])
	}
	return m
}

// IonicStrength returns ½ Σ mᵢzᵢ² for molalities m and charges z.
func IonicStrength(m ChemicalVector, z []float64) ChemicalScalar {
	w := make([]float64, len(z))
	for i, zi := range z {
		w[i] = 0.5 * zi * zi
	}
	if len(w) == 0 {
		return NewChemicalScalar(m.NumSpecies())
	}
	return m.Dot(w)
}
