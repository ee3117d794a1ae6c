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

	"github.com/ctessum/unit"
)

// AmountDim is the dimension representing amount of substance.
// The SI symbol "mol" is reserved by package unit, so "mole" is used
// for printing.
var AmountDim = unit.NewDimension("mole")

// Units used throughout this package. Values are always stored as
// plain float64 in these units; the dimensions below are used when
// values cross a package boundary for reporting or validation.
var (
	// Mole is amount of substance [mol].
	Mole = unit.Dimensions{AmountDim: 1}

	// KilogramPerMole is molar mass [kg/mol].
	KilogramPerMole = unit.Dimensions{
		unit.MassDim: 1,
		AmountDim:    -1,
	}

	// JoulePerMole is molar energy [kg m2 s-2 mol-1].
	JoulePerMole = unit.Dimensions{
		unit.MassDim:   1,
		unit.LengthDim: 2,
		unit.TimeDim:   -2,
		AmountDim:      -1,
	}

	// Volt is electric potential [kg m2 s-3 A-1].
	Volt = unit.Dimensions{
		unit.MassDim:    1,
		unit.LengthDim:  2,
		unit.TimeDim:    -3,
		unit.CurrentDim: -1,
	}

	// MolePerKilogram is molality [mol/kg].
	MolePerKilogram = unit.Dimensions{
		AmountDim:    1,
		unit.MassDim: -1,
	}
)

// MolarMassUnit returns v [kg/mol] as a dimensioned value.
func MolarMassUnit(v float64) *unit.Unit { return unit.New(v, KilogramPerMole) }

// AmountUnit returns v [mol] as a dimensioned value.
func AmountUnit(v float64) *unit.Unit { return unit.New(v, Mole) }

// TemperatureUnit returns v [K] as a dimensioned value.
func TemperatureUnit(v float64) *unit.Unit { return unit.New(v, unit.Kelvin) }

// PressureUnit returns v [Pa] as a dimensioned value.
func PressureUnit(v float64) *unit.Unit { return unit.New(v, unit.Pascal) }

// ChemicalPotentialUnit returns v [J/mol] as a dimensioned value.
func ChemicalPotentialUnit(v float64) *unit.Unit { return unit.New(v, JoulePerMole) }

// PotentialUnit returns v [V] as a dimensioned value.
func PotentialUnit(v float64) *unit.Unit { return unit.New(v, Volt) }

// pressureConversions give the factors that convert the named pressure
// units to Pa.
var pressureConversions = map[string]float64{
	"Pa":  1,
	"kPa": 1.0e3,
	"MPa": 1.0e6,
	"bar": 1.0e5,
	"atm": 101325,
}

// temperatureOffsets give the offsets that convert the named temperature
// units to K.
var temperatureOffsets = map[string]float64{
	"K":  0,
	"C":  273.15,
	"°C": 273.15,
}

// Pressure converts a pressure value in the given units to Pa.
// Valid units are Pa, kPa, MPa, bar and atm.
func Pressure(v float64, units string) (*unit.Unit, error) {
	f, ok := pressureConversions[units]
	if !ok {
		return nil, fmt.Errorf("thermochem: invalid pressure units '%s'; valid options are Pa, kPa, MPa, bar, and atm", units)
	}
	return PressureUnit(v * f), nil
}

// Temperature converts a temperature value in the given units to K.
// Valid units are K and C.
func Temperature(v float64, units string) (*unit.Unit, error) {
	o, ok := temperatureOffsets[units]
	if !ok {
		return nil, fmt.Errorf("thermochem: invalid temperature units '%s'; valid options are K and C", units)
	}
	t := TemperatureUnit(v + o)
	if !(t.Value() > 0) {
		return nil, fmt.Errorf("thermochem: temperature %g %s is not above absolute zero", v, units)
	}
	return t, nil
}
