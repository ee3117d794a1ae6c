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

import "math"

// Version gives the version number of this package.
const Version = "0.3.0"

// Physical constants.
const (
	// R is the universal gas constant [J/(mol K)].
	R = 8.3144621

	// F is the Faraday constant [C/mol].
	F = 96485.3329

	// Ln10 is the natural logarithm of 10.
	Ln10 = math.Ln10

	// WaterMolarMass is the molar mass of water [kg/mol].
	WaterMolarMass = 0.018015268

	// ReferenceTemperature is the temperature of the standard state [K].
	ReferenceTemperature = 298.15

	// ReferencePressure is the pressure of the standard state [Pa].
	ReferencePressure = 1.0e5
)

// ChargeElementName is the name of the implicit element that carries
// electric charge in formula matrices and element amount vectors.
const ChargeElementName = "Z"

// ElectronName is the conventional name of the electron in half reactions.
const ElectronName = "e-"

// hydronNames are the accepted names of the aqueous proton.
var hydronNames = []string{"H+", "H+(aq)", "H[+]"}

// waterNames are the accepted names of the aqueous solvent.
var waterNames = []string{"H2O(l)", "H2O", "H2O@", "H2O(aq)"}

func nameIn(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// IsWater returns whether name is one of the accepted names for the
// aqueous solvent species.
func IsWater(name string) bool { return nameIn(name, waterNames) }

// IsHydron returns whether name is one of the accepted names for the
// aqueous proton species.
func IsHydron(name string) bool { return nameIn(name, hydronNames) }
