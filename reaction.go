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
	"strconv"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// Reaction is a chemical reaction given by species names and
// stoichiometric coefficients. Reactants have negative coefficients
// and products positive coefficients.
type Reaction struct {
	Species      []string
	Coefficients []float64
}

// Coefficient returns the stoichiometric coefficient of the named
// species, or zero if it does not take part in the reaction.
func (r Reaction) Coefficient(name string) float64 {
	for i, s := range r.Species {
		if s == name {
			return r.Coefficients[i]
		}
	}
	return 0
}

func (r Reaction) String() string {
	var lhs, rhs []string
	for i, s := range r.Species {
		c := r.Coefficients[i]
		term := s
		if c != 1 && c != -1 {
			term = fmt.Sprintf("%g*%s", abs(c), s)
		}
		if c < 0 {
			lhs = append(lhs, term)
		} else {
			rhs = append(rhs, term)
		}
	}
	return strings.Join(lhs, " + ") + " = " + strings.Join(rhs, " + ")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

const maxCachedReactions = 64

var (
	reactionCacheMx sync.Mutex
	reactionCache   = lru.New(maxCachedReactions)
)

// ParseReaction parses a reaction equation such as
//
//	0.5*O2(aq) + 2*H+ + 2*e- = H2O(l)
//
// Terms are separated by whitespace-delimited "+" signs and the two
// sides by "="; each term is an optional coefficient joined to a species
// name by "*". Results are cached; each call returns its own copy.
func ParseReaction(equation string) (Reaction, error) {
	reactionCacheMx.Lock()
	if r, ok := reactionCache.Get(equation); ok {
		reactionCacheMx.Unlock()
		return r.(Reaction).clone(), nil
	}
	reactionCacheMx.Unlock()

	r, err := parseReaction(equation)
	if err != nil {
		return r, err
	}
	reactionCacheMx.Lock()
	reactionCache.Add(equation, r.clone())
	reactionCacheMx.Unlock()
	return r, nil
}

// clone returns a copy of r that shares no memory with it.
func (r Reaction) clone() Reaction {
	return Reaction{
		Species:      append([]string(nil), r.Species...),
		Coefficients: append([]float64(nil), r.Coefficients...),
	}
}

func parseReaction(equation string) (Reaction, error) {
	sides := strings.Split(equation, "=")
	if len(sides) != 2 {
		return Reaction{}, fmt.Errorf("thermochem: reaction '%s' must have exactly one '='", equation)
	}
	var r Reaction
	for i, side := range sides {
		sign := -1.
		if i == 1 {
			sign = 1
		}
		var nterms int
		for _, tok := range strings.Fields(side) {
			if tok == "+" {
				continue
			}
			c, name, err := parseTerm(tok)
			if err != nil {
				return Reaction{}, fmt.Errorf("thermochem: parsing reaction '%s': %v", equation, err)
			}
			r.add(name, sign*c)
			nterms++
		}
		if nterms == 0 {
			return Reaction{}, fmt.Errorf("thermochem: reaction '%s' has an empty side", equation)
		}
	}
	return r, nil
}

// parseTerm splits a term such as "2*H+" into its coefficient and name.
func parseTerm(tok string) (float64, string, error) {
	i := strings.Index(tok, "*")
	if i < 0 {
		return 1, tok, nil
	}
	c, err := strconv.ParseFloat(tok[:i], 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid coefficient in term '%s'", tok)
	}
	name := tok[i+1:]
	if name == "" {
		return 0, "", fmt.Errorf("missing species name in term '%s'", tok)
	}
	return c, name, nil
}

func (r *Reaction) add(name string, c float64) {
	for i, s := range r.Species {
		if s == name {
			r.Coefficients[i] += c
			return
		}
	}
	r.Species = append(r.Species, name)
	r.Coefficients = append(r.Coefficients, c)
}
