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
	"testing"

	"github.com/kr/pretty"
)

func TestParseReaction(t *testing.T) {
	tests := []struct {
		equation string
		want     Reaction
	}{
		{
			equation: "0.5*O2(aq) + 2*H+ + 2*e- = H2O(l)",
			want: Reaction{
				Species:      []string{"O2(aq)", "H+", "e-", "H2O(l)"},
				Coefficients: []float64{-0.5, -2, -2, 1},
			},
		},
		{
			equation: "Fe++ = Fe+++ + e-",
			want: Reaction{
				Species:      []string{"Fe++", "Fe+++", "e-"},
				Coefficients: []float64{-1, 1, 1},
			},
		},
		{
			equation: "H2O(l) = H+ + OH- ",
			want: Reaction{
				Species:      []string{"H2O(l)", "H+", "OH-"},
				Coefficients: []float64{-1, 1, 1},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.equation, func(t *testing.T) {
			have, err := ParseReaction(test.equation)
			if err != nil {
				t.Fatal(err)
			}
			if diff := pretty.Diff(have, test.want); len(diff) > 0 {
				t.Errorf("have %v, want %v\n%v", have, test.want, diff)
			}
			// A second call is served from the cache.
			again, err := ParseReaction(test.equation)
			if err != nil {
				t.Fatal(err)
			}
			if again.String() != have.String() {
				t.Errorf("cached: have %s, want %s", again, have)
			}
		})
	}
}

func TestParseReactionErrors(t *testing.T) {
	for _, eq := range []string{
		"",
		"H+ + OH-",
		"a = b = c",
		"x*H+ = H+",
		"2* = H+",
		" = H+",
	} {
		if _, err := ParseReaction(eq); err == nil {
			t.Errorf("'%s': expected an error", eq)
		}
	}
}

func TestReactionString(t *testing.T) {
	r, err := ParseReaction("0.5*O2(aq) + 2*H+ + 2*e- = H2O(l)")
	if err != nil {
		t.Fatal(err)
	}
	if have, want := r.String(), "0.5*O2(aq) + 2*H+ + 2*e- = H2O(l)"; have != want {
		t.Errorf("have %s, want %s", have, want)
	}
	if c := r.Coefficient("H+"); c != -2 {
		t.Errorf("coefficient: have %g, want -2", c)
	}
	if c := r.Coefficient("Na+"); c != 0 {
		t.Errorf("coefficient: have %g, want 0", c)
	}
}

// Changing a parsed reaction does not change later parses of the same
// equation.
func TestParseReactionCopies(t *testing.T) {
	const eq = "Fe++ = Fe+++ + e-"
	for i := 0; i < 2; i++ {
		r, err := ParseReaction(eq)
		if err != nil {
			t.Fatal(err)
		}
		if c := r.Coefficient("Fe++"); c != -1 {
			t.Fatalf("parse %d: Fe++ coefficient: have %g, want -1", i, c)
		}
		if r.Species[0] != "Fe++" {
			t.Fatalf("parse %d: first species: have %s, want Fe++", i, r.Species[0])
		}
		r.Coefficients[0] = 42
		r.Species[0] = "X"
	}
}
