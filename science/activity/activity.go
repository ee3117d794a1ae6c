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

// Package activity provides activity-coefficient models for solute
// species in an aqueous phase.
package activity

import (
	"fmt"
	"strings"

	"github.com/spatialmodel/thermochem"
)

// DebyeHuckelA is the Debye-Hückel A parameter for water at 25 °C
// [(kg/mol)^½].
const DebyeHuckelA = 0.5093

// AqueousMixtureState holds the state of an aqueous phase needed by
// activity models.
type AqueousMixtureState struct {
	// T is the temperature [K] and P the pressure [Pa].
	T, P float64

	// Molalities of the aqueous species [mol/kg].
	Molalities thermochem.ChemicalVector

	// IonicStrength of the phase [mol/kg].
	IonicStrength thermochem.ChemicalScalar
}

// NewAqueousMixtureState calculates the mixture state of the size
// aqueous species starting at global index offset, with solvent
// global index water.
func NewAqueousMixtureState(T, P float64, n []float64, offset, size, water int, charges []float64) AqueousMixtureState {
	m := thermochem.Molalities(n, offset, size, water)
	return AqueousMixtureState{
		T:             T,
		P:             P,
		Molalities:    m,
		IonicStrength: thermochem.IonicStrength(m, charges),
	}
}

// ActivityModel returns the natural logarithm of the activity
// coefficient of one solute species.
type ActivityModel func(s AqueousMixtureState) thermochem.ChemicalScalar

// zero returns ln γ = 0 with derivatives sized for s.
func zero(s AqueousMixtureState) thermochem.ChemicalScalar {
	return thermochem.NewChemicalScalar(s.Molalities.NumSpecies())
}

// Ideal returns an activity model where all activity coefficients are one.
func Ideal() ActivityModel {
	return zero
}

// DebyeHuckelLimiting returns the Debye-Hückel limiting law for a
// species with charge z:
//
//	log10 γ = -A z² √I
func DebyeHuckelLimiting(z float64) ActivityModel {
	return func(s AqueousMixtureState) thermochem.ChemicalScalar {
		if z == 0 || s.IonicStrength.Val <= 0 {
			return zero(s)
		}
		return s.IonicStrength.Sqrt().Scale(-DebyeHuckelA * z * z * thermochem.Ln10)
	}
}

// Davies returns the Davies equation for a species with charge z:
//
//	log10 γ = -A z² (√I/(1+√I) - 0.3 I)
func Davies(z float64) ActivityModel {
	return func(s AqueousMixtureState) thermochem.ChemicalScalar {
		if z == 0 || s.IonicStrength.Val <= 0 {
			return zero(s)
		}
		I := s.IonicStrength
		sqrtI := I.Sqrt()
		return sqrtI.Div(sqrtI.AddConst(1)).Sub(I.Scale(0.3)).
			Scale(-DebyeHuckelA * z * z * thermochem.Ln10)
	}
}

// Lookup returns the activity model called name for a species with
// charge z. Valid names are "ideal", "debye-huckel" and "davies";
// an empty name is the same as "ideal".
func Lookup(name string, z float64) (ActivityModel, error) {
	switch strings.ToLower(name) {
	case "", "ideal":
		return Ideal(), nil
	case "debye-huckel", "debyehuckel":
		return DebyeHuckelLimiting(z), nil
	case "davies":
		return Davies(z), nil
	default:
		return nil, fmt.Errorf("activity: invalid activity model '%s'; valid options are ideal, debye-huckel and davies", name)
	}
}
