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

// Model is an interface for thermodynamic models that supply the
// standard Gibbs energies and chemical potentials of the species in a
// ChemicalSystem. Returned vectors are indexed by the global species
// index of the system.
//
// Implementations are either native models, which are pure functions of
// their arguments and compute analytic derivatives, or adapter models
// (see package backend), which re-enter a mutable solver session and
// cannot compute derivatives.
type Model interface {
	// GibbsEnergies returns the standard molar Gibbs energies [J/mol]
	// of all species at temperature T [K] and pressure P [Pa].
	GibbsEnergies(T, P float64) ThermoVector

	// ChemicalPotentials returns the chemical potentials [J/mol] of all
	// species at temperature T [K], pressure P [Pa] and species
	// amounts n [mol].
	ChemicalPotentials(T, P float64, n []float64) ChemicalVector

	// DerivativesAvailable returns whether the derivative channels of
	// the returned vectors are computed.
	DerivativesAvailable() bool
}

// GibbsEnergyFunc calculates standard molar Gibbs energies.
type GibbsEnergyFunc func(T, P float64) ThermoVector

// ChemicalPotentialFunc calculates chemical potentials.
type ChemicalPotentialFunc func(T, P float64, n []float64) ChemicalVector

// NativeModel is a Model made of two pure functions that compute
// complete derivatives.
type NativeModel struct {
	GibbsEnergyFunc       GibbsEnergyFunc
	ChemicalPotentialFunc ChemicalPotentialFunc
}

// GibbsEnergies fulfils the Model interface.
func (m NativeModel) GibbsEnergies(T, P float64) ThermoVector {
	return m.GibbsEnergyFunc(T, P)
}

// ChemicalPotentials fulfils the Model interface.
func (m NativeModel) ChemicalPotentials(T, P float64, n []float64) ChemicalVector {
	return m.ChemicalPotentialFunc(T, P, n)
}

// DerivativesAvailable fulfils the Model interface.
func (m NativeModel) DerivativesAvailable() bool { return true }
