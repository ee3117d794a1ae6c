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

package idealchem

import (
	"math"
	"testing"

	"github.com/spatialmodel/thermochem"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

// seawater returns a system with a salty aqueous phase, a gas phase
// and two pure minerals.
func seawater(t *testing.T, opts ...Option) *thermochem.ChemicalSystem {
	sys, err := DatabaseSystem([]PhaseSpec{
		{Name: "Aqueous", Kind: thermochem.Aqueous, Species: []string{"H2O(l)", "H+", "OH-", "Na+", "Cl-", "CO2(aq)", "HCO3-"}},
		{Name: "Gaseous", Kind: thermochem.Gaseous, Species: []string{"CO2(g)", "H2O(g)"}},
		{Name: "Calcite", Kind: thermochem.Solid, Species: []string{"Calcite"}},
		{Name: "Halite", Kind: thermochem.Solid, Species: []string{"Halite"}},
	}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

var seawaterAmounts = []float64{55.5, 1.e-8, 1.e-6, 0.5, 0.5, 1.e-5, 2.e-3, 0.01, 0.02, 1, 0}

func TestGibbsEnergies(t *testing.T) {
	sys := seawater(t)
	g := sys.GibbsEnergies(310, 2.e5)
	i := sys.SpeciesIndex("H2O(l)")
	d := Database["H2O(l)"]
	want := d.GibbsEnergy - d.Entropy*(310-298.15) + d.Volume*(2.e5-1.e5)
	if different(g.Val[i], want, 1.e-12) {
		t.Errorf("have %g, want %g", g.Val[i], want)
	}
	if g.DdT[i] != -d.Entropy || g.DdP[i] != d.Volume {
		t.Errorf("derivatives: have %g and %g", g.DdT[i], g.DdP[i])
	}

	// Modifying a result must not change later results from the cache.
	g.Val[i] = 0
	if g2 := sys.GibbsEnergies(310, 2.e5); g2.Val[i] == 0 {
		t.Error("cached results were modified")
	}
}

func TestActivities(t *testing.T) {
	sys := seawater(t)
	const T, P = 298.15, 3.e5
	u := sys.ChemicalPotentials(T, P, seawaterAmounts)
	g := sys.GibbsEnergies(T, P)
	RT := thermochem.R * T
	lna := func(name string) float64 {
		i := sys.SpeciesIndex(name)
		return (u.Val[i] - g.Val[i]) / RT
	}
	n := seawaterAmounts
	kgw := n[0] * thermochem.WaterMolarMass
	var naq float64
	for _, v := range n[:7] {
		naq += v
	}
	tests := []struct {
		name string
		want float64
	}{
		{name: "H2O(l)", want: math.Log(n[0] / naq)},
		{name: "Na+", want: math.Log(n[3] / kgw)},
		{name: "CO2(g)", want: math.Log(n[7]/(n[7]+n[8])) + math.Log(P/1.e5)},
		{name: "Calcite", want: 0},
		{name: "Halite", want: 0},
	}
	for _, test := range tests {
		if have := lna(test.name); math.Abs(have-test.want) > 1.e-9 {
			t.Errorf("%s: have %g, want %g", test.name, have, test.want)
		}
	}
}

// The analytic derivatives should match central finite differences.
func TestChemicalPotentialDerivatives(t *testing.T) {
	sys := seawater(t, Activity("Aqueous", "davies"))
	const T, P = 300., 2.e5
	u := sys.ChemicalPotentials(T, P, seawaterAmounts)

	for _, name := range []string{"H2O(l)", "Na+", "HCO3-", "CO2(g)"} {
		i := sys.SpeciesIndex(name)
		for _, j := range []int{0, 3, 6, 7} {
			h := seawaterAmounts[j] * 1.e-4
			up := append([]float64{}, seawaterAmounts...)
			down := append([]float64{}, seawaterAmounts...)
			up[j] += h
			down[j] -= h
			want := (sys.ChemicalPotentials(T, P, up).Val[i] - sys.ChemicalPotentials(T, P, down).Val[i]) / (2 * h)
			have := u.DdN.At(i, j)
			if math.Abs(have-want) > 1.e-4*math.Max(math.Abs(want), 1) {
				t.Errorf("d μ(%s)/d n%d: have %g, want %g", name, j, have, want)
			}
		}
		const dT, dP = 1.e-3, 1.
		wantT := (sys.ChemicalPotentials(T+dT, P, seawaterAmounts).Val[i] -
			sys.ChemicalPotentials(T-dT, P, seawaterAmounts).Val[i]) / (2 * dT)
		if different(u.DdT[i], wantT, 1.e-6) {
			t.Errorf("d μ(%s)/dT: have %g, want %g", name, u.DdT[i], wantT)
		}
		wantP := (sys.ChemicalPotentials(T, P+dP, seawaterAmounts).Val[i] -
			sys.ChemicalPotentials(T, P-dP, seawaterAmounts).Val[i]) / (2 * dP)
		if math.Abs(u.DdP[i]-wantP) > 1.e-6*math.Max(math.Abs(wantP), 1) {
			t.Errorf("d μ(%s)/dP: have %g, want %g", name, u.DdP[i], wantP)
		}
	}
}

// Davies activity coefficients lower the chemical potential of ions.
func TestActivityOption(t *testing.T) {
	ideal := seawater(t)
	davies := seawater(t, Activity("Aqueous", "davies"))
	i := ideal.SpeciesIndex("Na+")
	ui := ideal.ChemicalPotentials(298.15, 1.e5, seawaterAmounts).Val[i]
	ud := davies.ChemicalPotentials(298.15, 1.e5, seawaterAmounts).Val[i]
	if ud >= ui {
		t.Errorf("have %g >= %g", ud, ui)
	}
	w := ideal.SpeciesIndex("H2O(l)")
	if uw := davies.ChemicalPotentials(298.15, 1.e5, seawaterAmounts).Val[w]; uw != ideal.ChemicalPotentials(298.15, 1.e5, seawaterAmounts).Val[w] {
		t.Error("the solvent has no activity coefficient")
	}
}

func TestOptionErrors(t *testing.T) {
	phases := []PhaseSpec{
		{Name: "Aqueous", Kind: thermochem.Aqueous, Species: []string{"H2O(l)", "H+"}},
		{Name: "Gaseous", Kind: thermochem.Gaseous, Species: []string{"H2(g)"}},
	}
	for _, opt := range []Option{
		Activity("Aqueous", "pitzer"),
		Activity("Gaseous", "davies"),
		Activity("Solid", "davies"),
	} {
		if _, err := DatabaseSystem(phases, opt); err == nil {
			t.Error("expected an error")
		}
	}
	if _, err := DatabaseSystem([]PhaseSpec{{Name: "x", Species: []string{"Unobtainium"}}}); err == nil {
		t.Error("expected an error for an unknown species")
	}
	if _, err := New(nil, []SpeciesData{{}}); err == nil {
		t.Error("expected an error for mismatched data")
	}
}

func TestDatabase(t *testing.T) {
	s, d, err := DatabaseSpecies("HCO3-")
	if err != nil {
		t.Fatal(err)
	}
	if s.Charge != -1 || s.ElementCoefficient("O") != 3 || d.GibbsEnergy != -586940 {
		t.Errorf("have %v, %+v", s, d)
	}
	want := ElementMolarMasses["H"] + ElementMolarMasses["C"] + 3*ElementMolarMasses["O"]
	if different(s.MolarMass, want, 1.e-12) {
		t.Errorf("molar mass: have %g, want %g", s.MolarMass, want)
	}
	names := DatabaseNames()
	if len(names) != len(Database) || names[0] > names[1] {
		t.Errorf("have %v", names)
	}
}
