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

package thermochem_test

import (
	"math"
	"testing"

	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/science/chem/idealchem"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

// neutralWater returns the properties of one kilogram of water with
// equal amounts of H+ and OH- in equilibrium with the water, and a
// trace of dissolved oxygen.
func neutralWater(t *testing.T) (*thermochem.ChemicalProperties, float64) {
	sys, err := idealchem.DatabaseSystem([]idealchem.PhaseSpec{{
		Name:    "Aqueous",
		Kind:    thermochem.Aqueous,
		Species: []string{"H2O(l)", "H+", "OH-", "O2(aq)"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	T := thermochem.ReferenceTemperature
	RT := thermochem.R * T
	g := func(name string) float64 { return idealchem.Database[name].GibbsEnergy }
	lnKw := -(g("H+") + g("OH-") - g("H2O(l)")) / RT

	nw := 1 / thermochem.WaterMolarMass
	const nO2 = 1.e-4
	var m, nH float64
	for i := 0; i < 10; i++ {
		xw := nw / (nw + 2*nH + nO2)
		m = math.Sqrt(math.Exp(lnKw) * xw)
		nH = m * nw * thermochem.WaterMolarMass
	}
	s := thermochem.NewChemicalState(sys)
	if err := s.SetSpeciesAmounts([]float64{nw, nH, nH, nO2}); err != nil {
		t.Fatal(err)
	}
	p, err := s.Properties()
	if err != nil {
		t.Fatal(err)
	}
	return p, -math.Log10(m)
}

func TestNeutralWaterPH(t *testing.T) {
	p, want := neutralWater(t)
	pH := p.Aqueous().PH()
	if different(pH.Val, want, 1.e-6) {
		t.Errorf("pH: have %g, want %g", pH.Val, want)
	}
	if math.Abs(pH.Val-6.9975) > 1.e-3 {
		t.Errorf("pH: have %g, want about 6.9975", pH.Val)
	}
	// pH = -log10(n_H / (n_w M_w)), so ∂pH/∂n_H = -1/(n_H ln10).
	nH := p.Composition()[1]
	if want := -1 / (nH * math.Ln10); different(pH.DdN[1], want, 1.e-6) {
		t.Errorf("d pH/d n_H: have %g, want %g", pH.DdN[1], want)
	}
}

// In equilibrium the dual-potential pE and the pE of a consistent
// half reaction agree.
func TestNeutralWaterPE(t *testing.T) {
	p, _ := neutralWater(t)
	a := p.Aqueous()
	pe := a.PE()
	peR, err := a.PEReaction("0.5*O2(aq) + 2*H+ + 2*e- = H2O(l)")
	if err != nil {
		t.Fatal(err)
	}
	if different(pe.Val, peR.Val, 1.e-6) {
		t.Errorf("pE: dual potential %g, half reaction %g", pe.Val, peR.Val)
	}
	eh, err := a.EhReaction("0.5*O2(aq) + 2*H+ + 2*e- = H2O(l)")
	if err != nil {
		t.Fatal(err)
	}
	if different(a.Eh().Val, eh.Val, 1.e-6) {
		t.Errorf("Eh: dual potential %g, half reaction %g", a.Eh().Val, eh.Val)
	}
	if !p.DerivativesAvailable() || pe.DerivativesUnavailable {
		t.Error("the native model computes derivatives")
	}
}
