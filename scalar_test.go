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
	"math"
	"testing"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

// variable returns a scalar for a system with two species whose
// derivative channels are all distinct.
func variable(v float64) ChemicalScalar {
	return ChemicalScalar{Val: v, DdT: 0.5, DdP: -2, DdN: []float64{1, 3}}
}

func TestScalarArithmetic(t *testing.T) {
	a := variable(2)
	b := ChemicalScalar{Val: 5, DdT: 1, DdP: 4, DdN: []float64{-1, 2}}

	tests := []struct {
		name string
		have ChemicalScalar
		val  float64
		ddT  float64
		ddN1 float64
	}{
		{name: "add", have: a.Add(b), val: 7, ddT: 1.5, ddN1: 5},
		{name: "sub", have: a.Sub(b), val: -3, ddT: -0.5, ddN1: 1},
		{name: "mul", have: a.Mul(b), val: 10, ddT: 0.5*5 + 2*1, ddN1: 3*5 + 2*2},
		{name: "div", have: a.Div(b), val: 0.4, ddT: (0.5*5 - 2*1) / 25, ddN1: (3*5 - 2*2) / 25.},
		{name: "log", have: a.Log(), val: math.Log(2), ddT: 0.25, ddN1: 1.5},
		{name: "exp", have: a.Exp(), val: math.Exp(2), ddT: 0.5 * math.Exp(2), ddN1: 3 * math.Exp(2)},
		{name: "sqrt", have: a.Sqrt(), val: math.Sqrt(2), ddT: 0.25 / math.Sqrt(2), ddN1: 1.5 / math.Sqrt(2)},
		{name: "pow", have: a.Pow(3), val: 8, ddT: 6, ddN1: 36},
		{name: "scale", have: a.Scale(-3), val: -6, ddT: -1.5, ddN1: -9},
		{name: "addconst", have: a.AddConst(1), val: 3, ddT: 0.5, ddN1: 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if different(test.have.Val, test.val, 1.e-12) {
				t.Errorf("value: have %g, want %g", test.have.Val, test.val)
			}
			if different(test.have.DdT, test.ddT, 1.e-12) {
				t.Errorf("d/dT: have %g, want %g", test.have.DdT, test.ddT)
			}
			if different(test.have.DdN[1], test.ddN1, 1.e-12) {
				t.Errorf("d/dn1: have %g, want %g", test.have.DdN[1], test.ddN1)
			}
		})
	}
}

// Composing operations should give the same derivative as a central
// finite difference of the composed function.
func TestScalarChainRule(t *testing.T) {
	f := func(x ChemicalScalar) ChemicalScalar {
		return x.Mul(x).AddConst(1).Log().Div(x.Sqrt()).Exp()
	}
	const x0, h = 1.7, 1.e-6
	x := ChemicalScalar{Val: x0, DdN: []float64{1}}
	have := f(x).DdN[0]
	want := (f(Constant(x0+h)).Val - f(Constant(x0-h)).Val) / (2 * h)
	if different(have, want, 1.e-6) {
		t.Errorf("have %g, want %g", have, want)
	}
}

func TestScalarNilDdN(t *testing.T) {
	a := Constant(3)
	b := variable(2)
	s := a.Mul(b)
	if len(s.DdN) != 2 || s.DdN[1] != 9 {
		t.Errorf("have %v, want [3 9]", s.DdN)
	}
	if c := Constant(1).Add(Constant(2)); c.DdN != nil {
		t.Errorf("sum of constants should have nil DdN, have %v", c.DdN)
	}
}

func TestDerivativesUnavailablePropagates(t *testing.T) {
	a := variable(2)
	b := Constant(4)
	b.DerivativesUnavailable = true
	for name, s := range map[string]ChemicalScalar{
		"add":   a.Add(b),
		"mul":   b.Mul(a),
		"div":   a.Div(b),
		"log":   b.Log(),
		"scale": b.Scale(2),
	} {
		if !s.DerivativesUnavailable {
			t.Errorf("%s: flag was lost", name)
		}
	}
	if a.Add(a).DerivativesUnavailable {
		t.Error("flag should not be set")
	}
}

func TestDdSum(t *testing.T) {
	if s := variable(1).DdSum(); s != 4 {
		t.Errorf("have %g, want 4", s)
	}
	if s := Constant(1).DdSum(); s != 0 {
		t.Errorf("have %g, want 0", s)
	}
}

func TestChemicalVector(t *testing.T) {
	v := NewChemicalVector(3, 2)
	v.SetRow(0, variable(1))
	v.SetRow(1, variable(2))
	v.SetRow(2, Constant(3))

	r := v.Row(1)
	if r.Val != 2 || r.DdN[1] != 3 {
		t.Errorf("row: have %v", r)
	}
	s := v.Sum()
	if s.Val != 6 || s.DdT != 1 || s.DdN[1] != 6 {
		t.Errorf("sum: have %v", s)
	}
	d := v.Dot([]float64{1, -1, 2})
	if d.Val != 5 || d.DdN[0] != 0 {
		t.Errorf("dot: have %v", d)
	}
	seg := v.Rows(1, 2)
	if seg.Len() != 2 || seg.Row(1).Val != 3 {
		t.Errorf("rows: have %v", seg.Val)
	}
	seg.SetRow(1, Constant(10))
	if v.Val[2] != 10 {
		t.Error("Rows should share storage")
	}
}

func TestSetRowDerivativesUnavailable(t *testing.T) {
	v := NewChemicalVector(2, 2)
	v.SetRow(0, variable(1))
	if v.DerivativesUnavailable {
		t.Fatal("the vector should have derivatives")
	}
	s := Constant(2)
	s.DerivativesUnavailable = true
	v.SetRow(1, s)
	if !v.DerivativesUnavailable {
		t.Error("the flag of the row should carry to the vector")
	}
	if !v.Row(0).DerivativesUnavailable || !v.Sum().DerivativesUnavailable {
		t.Error("rows and reductions should carry the flag")
	}
}
