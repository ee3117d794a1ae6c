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

	"gonum.org/v1/gonum/floats"
)

// ChemicalScalar is a scalar quantity together with its partial
// derivatives with respect to temperature, pressure and the amount of
// each species.
//
// A nil DdN is equivalent to a vector of zeros. If DerivativesUnavailable
// is true the derivative channels were not computed and must not be
// interpreted as zero sensitivity; the flag survives all arithmetic.
type ChemicalScalar struct {
	Val float64

	// DdT is the partial derivative with respect to temperature [1/K].
	DdT float64

	// DdP is the partial derivative with respect to pressure [1/Pa].
	DdP float64

	// DdN holds the partial derivatives with respect to the amount
	// of each species in the system [1/mol].
	DdN []float64

	DerivativesUnavailable bool
}

// NewChemicalScalar returns a zero-valued scalar with derivative
// channels sized for a system with numSpecies species.
func NewChemicalScalar(numSpecies int) ChemicalScalar {
	return ChemicalScalar{DdN: make([]float64, numSpecies)}
}

// Constant returns a scalar with value v and zero derivatives.
func Constant(v float64) ChemicalScalar {
	return ChemicalScalar{Val: v}
}

// TemperatureScalar returns temperature T [K] as a scalar whose
// derivative with respect to temperature is one.
func TemperatureScalar(T float64) ChemicalScalar {
	return ChemicalScalar{Val: T, DdT: 1}
}

// DdSum returns the sum of the composition derivatives.
func (a ChemicalScalar) DdSum() float64 {
	if len(a.DdN) == 0 {
		return 0
	}
	return floats.Sum(a.DdN)
}

// lincomb returns ca*a + cb*b, treating a nil slice as zeros.
func lincomb(ca float64, a []float64, cb float64, b []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return nil
	}
	o := make([]float64, n)
	if len(a) > 0 {
		floats.AddScaled(o, ca, a)
	}
	if len(b) > 0 {
		floats.AddScaled(o, cb, b)
	}
	return o
}

// Add returns a + b.
func (a ChemicalScalar) Add(b ChemicalScalar) ChemicalScalar {
	return ChemicalScalar{
		Val:                    a.Val + b.Val,
		DdT:                    a.DdT + b.DdT,
		DdP:                    a.DdP + b.DdP,
		DdN:                    lincomb(1, a.DdN, 1, b.DdN),
		DerivativesUnavailable: a.DerivativesUnavailable || b.DerivativesUnavailable,
	}
}

// Sub returns a - b.
func (a ChemicalScalar) Sub(b ChemicalScalar) ChemicalScalar {
	return ChemicalScalar{
		Val:                    a.Val - b.Val,
		DdT:                    a.DdT - b.DdT,
		DdP:                    a.DdP - b.DdP,
		DdN:                    lincomb(1, a.DdN, -1, b.DdN),
		DerivativesUnavailable: a.DerivativesUnavailable || b.DerivativesUnavailable,
	}
}

// Mul returns a * b.
func (a ChemicalScalar) Mul(b ChemicalScalar) ChemicalScalar {
	return ChemicalScalar{
		Val:                    a.Val * b.Val,
		DdT:                    a.DdT*b.Val + a.Val*b.DdT,
		DdP:                    a.DdP*b.Val + a.Val*b.DdP,
		DdN:                    lincomb(b.Val, a.DdN, a.Val, b.DdN),
		DerivativesUnavailable: a.DerivativesUnavailable || b.DerivativesUnavailable,
	}
}

// Div returns a / b.
func (a ChemicalScalar) Div(b ChemicalScalar) ChemicalScalar {
	inv := 1 / b.Val
	q := a.Val * inv
	return ChemicalScalar{
		Val:                    q,
		DdT:                    (a.DdT - q*b.DdT) * inv,
		DdP:                    (a.DdP - q*b.DdP) * inv,
		DdN:                    lincomb(inv, a.DdN, -q*inv, b.DdN),
		DerivativesUnavailable: a.DerivativesUnavailable || b.DerivativesUnavailable,
	}
}

// Scale returns c * a.
func (a ChemicalScalar) Scale(c float64) ChemicalScalar {
	return a.chain(c*a.Val, c)
}

// AddConst returns a + c.
func (a ChemicalScalar) AddConst(c float64) ChemicalScalar {
	return a.chain(a.Val+c, 1)
}

// Neg returns -a.
func (a ChemicalScalar) Neg() ChemicalScalar {
	return a.Scale(-1)
}

// Log returns the natural logarithm of a.
func (a ChemicalScalar) Log() ChemicalScalar {
	return a.chain(math.Log(a.Val), 1/a.Val)
}

// Log10 returns the base-10 logarithm of a.
func (a ChemicalScalar) Log10() ChemicalScalar {
	return a.chain(math.Log10(a.Val), 1/(a.Val*Ln10))
}

// Exp returns e raised to the power of a.
func (a ChemicalScalar) Exp() ChemicalScalar {
	e := math.Exp(a.Val)
	return a.chain(e, e)
}

// Sqrt returns the square root of a.
func (a ChemicalScalar) Sqrt() ChemicalScalar {
	s := math.Sqrt(a.Val)
	return a.chain(s, 0.5/s)
}

// Pow returns a raised to the power of p.
func (a ChemicalScalar) Pow(p float64) ChemicalScalar {
	return a.chain(math.Pow(a.Val, p), p*math.Pow(a.Val, p-1))
}

// chain returns a scalar with value v whose derivatives are those of
// a multiplied by dfda.
func (a ChemicalScalar) chain(v, dfda float64) ChemicalScalar {
	return ChemicalScalar{
		Val:                    v,
		DdT:                    dfda * a.DdT,
		DdP:                    dfda * a.DdP,
		DdN:                    lincomb(dfda, a.DdN, 0, nil),
		DerivativesUnavailable: a.DerivativesUnavailable,
	}
}

func (a ChemicalScalar) String() string {
	if a.DerivativesUnavailable {
		return fmt.Sprintf("%g (derivatives unavailable)", a.Val)
	}
	return fmt.Sprintf("%g (d/dT=%g, d/dP=%g, d/dn=%v)", a.Val, a.DdT, a.DdP, a.DdN)
}
