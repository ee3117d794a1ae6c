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

import "fmt"

// ChemicalProperties holds the thermodynamic properties of a chemical
// system evaluated at one temperature, pressure and composition.
// The model functions of the system are invoked only by Update;
// every other method is a pure query over the cached results.
type ChemicalProperties struct {
	system *ChemicalSystem
	t, p   float64
	n      []float64

	g0 ThermoVector
	u  ChemicalVector
}

// NewChemicalProperties returns an empty property set for sys. Update
// must be called before any property is queried.
func NewChemicalProperties(sys *ChemicalSystem) *ChemicalProperties {
	return &ChemicalProperties{system: sys}
}

// Update evaluates the standard Gibbs energies and chemical potentials
// of the system at temperature T [K], pressure P [Pa] and species
// amounts n [mol]. Each model function is invoked exactly once.
func (p *ChemicalProperties) Update(T, P float64, n []float64) error {
	if err := p.system.checkAmounts(n); err != nil {
		return err
	}
	p.t, p.p = T, P
	p.n = make([]float64, len(n))
	copy(p.n, n)

	N := p.system.NumSpecies()
	p.g0 = p.system.GibbsEnergies(T, P)
	if p.g0.Len() != N {
		return fmt.Errorf("thermochem: model returned %d standard Gibbs energies for %d species", p.g0.Len(), N)
	}
	p.u = p.system.ChemicalPotentials(T, P, p.n)
	if p.u.Len() != N {
		return fmt.Errorf("thermochem: model returned %d chemical potentials for %d species", p.u.Len(), N)
	}
	return nil
}

// System returns the chemical system.
func (p *ChemicalProperties) System() *ChemicalSystem { return p.system }

// Temperature returns the temperature [K] of the last update.
func (p *ChemicalProperties) Temperature() float64 { return p.t }

// Pressure returns the pressure [Pa] of the last update.
func (p *ChemicalProperties) Pressure() float64 { return p.p }

// Composition returns a copy of the species amounts [mol] of the last update.
func (p *ChemicalProperties) Composition() []float64 {
	o := make([]float64, len(p.n))
	copy(o, p.n)
	return o
}

// DerivativesAvailable returns whether the cached model results carry
// computed derivatives.
func (p *ChemicalProperties) DerivativesAvailable() bool {
	return !p.g0.DerivativesUnavailable && !p.u.DerivativesUnavailable
}

// StandardGibbsEnergies returns the standard molar Gibbs energies
// of the species [J/mol].
func (p *ChemicalProperties) StandardGibbsEnergies() ThermoVector { return p.g0 }

// ChemicalPotentials returns the chemical potentials of the species [J/mol].
func (p *ChemicalProperties) ChemicalPotentials() ChemicalVector { return p.u }

// rt returns R*T as a scalar with its temperature derivative.
func (p *ChemicalProperties) rt() ChemicalScalar {
	return TemperatureScalar(p.t).Scale(R)
}

// amount returns the amount of species j as a scalar whose derivative
// with respect to n[j] is one.
func (p *ChemicalProperties) amount(j int) ChemicalScalar {
	s := NewChemicalScalar(len(p.n))
	s.Val = p.n[j]
	s.DdN[j] = 1
	return s
}

// LnActivity returns the natural logarithm of the activity of species i,
// (μ - G°)/RT.
func (p *ChemicalProperties) LnActivity(i int) ChemicalScalar {
	return p.u.Row(i).Sub(p.g0.Row(i)).Div(p.rt())
}

// LnActivities returns the natural logarithm of the activities of all species.
func (p *ChemicalProperties) LnActivities() ChemicalVector {
	N := len(p.n)
	o := NewChemicalVector(N, N)
	o.DerivativesUnavailable = !p.DerivativesAvailable()
	for i := 0; i < N; i++ {
		o.SetRow(i, p.LnActivity(i))
	}
	return o
}

// phaseReduce returns a vector with one element per phase, each being
// the sum of f(i) over the species i in that phase.
func (p *ChemicalProperties) phaseReduce(f func(i int) ChemicalScalar) ChemicalVector {
	sys := p.system
	o := NewChemicalVector(sys.NumPhases(), len(p.n))
	for k := 0; k < sys.NumPhases(); k++ {
		sum := NewChemicalScalar(len(p.n))
		off := sys.PhaseOffset(k)
		for i := off; i < off+sys.NumSpeciesInPhase(k); i++ {
			sum = sum.Add(f(i))
		}
		o.SetRow(k, sum)
	}
	return o
}

// PhaseAmounts returns the total amount of species in each phase [mol].
func (p *ChemicalProperties) PhaseAmounts() ChemicalVector {
	return p.phaseReduce(p.amount)
}

// PhaseMasses returns the mass of each phase [kg].
func (p *ChemicalProperties) PhaseMasses() ChemicalVector {
	return p.phaseReduce(func(i int) ChemicalScalar {
		return p.amount(i).Scale(p.system.SpeciesAt(i).MolarMass)
	})
}

// PhaseGibbsEnergies returns the Gibbs energy of each phase, Σ nᵢμᵢ over
// the species of the phase [J].
func (p *ChemicalProperties) PhaseGibbsEnergies() ChemicalVector {
	return p.phaseReduce(func(i int) ChemicalScalar {
		return p.amount(i).Mul(p.u.Row(i))
	})
}

// TotalGibbsEnergy returns the Gibbs energy of the system [J].
func (p *ChemicalProperties) TotalGibbsEnergy() ChemicalScalar {
	return p.PhaseGibbsEnergies().Sum()
}

// MoleFractions returns the mole fraction of each species in its phase.
// Species in phases with no amount have zero mole fraction.
func (p *ChemicalProperties) MoleFractions() ChemicalVector {
	sys := p.system
	N := len(p.n)
	o := NewChemicalVector(N, N)
	totals := p.PhaseAmounts()
	for i := 0; i < N; i++ {
		tot := totals.Row(sys.PhaseIndexOfSpecies(i))
		if tot.Val == 0 {
			continue
		}
		o.SetRow(i, p.amount(i).Div(tot))
	}
	return o
}

// Aqueous returns the properties of the aqueous phase.
func (p *ChemicalProperties) Aqueous() *AqueousProperties {
	return NewAqueousProperties(p)
}
