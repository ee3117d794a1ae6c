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

// Package solver is a Gibbs energy minimisation engine. A Node reads a
// chemical system from a specification file and holds a mutable state
// (temperature, pressure, element amounts and species amounts) that Run
// moves to chemical equilibrium.
//
// Elements are the independent components of the system and species the
// dependent components. The last independent component is always the
// electric charge, named ChargeName.
package solver

import (
	"fmt"
	"os"

	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/science/chem/idealchem"
	"gonum.org/v1/gonum/mat"
)

// ChargeName is the name of the independent component for charge.
const ChargeName = "Zz"

// Status is the result of the last run of a Node.
type Status int

// Status codes. An AIA run starts from an automatic initial
// approximation; an SIA run starts from the result of the previous
// successful run.
const (
	NeedAIA Status = iota // not run yet
	OKAIA                 // converged from an automatic initial approximation
	BadAIA                // did not converge from an automatic initial approximation
	OKSIA                 // converged from the previous equilibrium state
	BadSIA                // did not converge from the previous equilibrium state
	Error                 // the Newton system could not be solved
)

func (s Status) String() string {
	switch s {
	case NeedAIA:
		return "NeedAIA"
	case OKAIA:
		return "OKAIA"
	case BadAIA:
		return "BadAIA"
	case OKSIA:
		return "OKSIA"
	case BadSIA:
		return "BadSIA"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// OK returns whether s is a converged status.
func (s Status) OK() bool { return s == OKAIA || s == OKSIA }

// Node is a chemical system together with its current state.
type Node struct {
	*system

	t, p float64
	b, n []float64

	// g0 holds the standard Gibbs energies [J/mol] and mu the normalized
	// chemical potentials μ/RT from the last update.
	g0, mu []float64

	status     Status
	iterations int
}

// system holds the parts of a Node that do not change after Init.
// Clones share it.
type system struct {
	settings Settings

	elements    []string
	molarMasses []float64 // of elements
	phases      []thermochem.Phase
	classes     []byte
	species     []thermochem.Species

	// formula is the (elements+1)×species stoichiometry matrix whose
	// last row holds the charges.
	formula *mat.Dense

	// rows holds the linearly independent rows of formula.
	rows []int

	model *idealchem.Model
}

// Init reads the specification file at path and sets the state of the
// node to the initial state in the file.
func (n *Node) Init(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("solver: %v", err)
	}
	defer f.Close()
	spec, err := ReadFile(f)
	if err != nil {
		return err
	}
	return n.InitFromSpec(spec)
}

// InitFromSpec sets up the node from a decoded specification.
func (n *Node) InitFromSpec(spec *File) error {
	if err := spec.validate(); err != nil {
		return err
	}
	sys := &system{settings: spec.Solver}
	elements := make(map[string]thermochem.Element)
	for _, e := range spec.Elements {
		sys.elements = append(sys.elements, e.Name)
		sys.molarMasses = append(sys.molarMasses, e.MolarMass)
		elements[e.Name] = thermochem.Element{Name: e.Name, MolarMass: e.MolarMass}
	}

	var data []idealchem.SpeciesData
	var amounts []float64
	var opts []idealchem.Option
	for _, ps := range spec.Phases {
		kind, err := phaseKind(ps.Class)
		if err != nil {
			return err
		}
		phase := thermochem.Phase{Name: ps.Name, Kind: kind}
		for _, ss := range ps.Species {
			comp := make(map[thermochem.Element]float64)
			for e, a := range ss.Composition {
				comp[elements[e]] = a
			}
			s := thermochem.NewSpecies(ss.Name, ss.Charge, comp)
			phase.Species = append(phase.Species, s)
			sys.species = append(sys.species, s)
			data = append(data, idealchem.SpeciesData{
				GibbsEnergy: ss.GibbsEnergy,
				Entropy:     ss.Entropy,
				Volume:      ss.Volume,
			})
			amounts = append(amounts, ss.Amount)
		}
		sys.phases = append(sys.phases, phase)
		sys.classes = append(sys.classes, ps.Class[0])
		if kind == thermochem.Aqueous && ps.Activity != "" {
			opts = append(opts, idealchem.Activity(ps.Name, ps.Activity))
		}
	}
	model, err := idealchem.New(sys.phases, data, opts...)
	if err != nil {
		return fmt.Errorf("solver: %v", err)
	}
	sys.model = model

	nIC := len(sys.elements) + 1
	sys.formula = mat.NewDense(nIC, len(sys.species), nil)
	for j, s := range sys.species {
		for i, e := range sys.elements {
			sys.formula.Set(i, j, s.ElementCoefficient(e))
		}
		sys.formula.Set(nIC-1, j, s.Charge)
	}
	sys.rows = independentRows(sys.formula)

	n.system = sys
	n.t, n.p = spec.Temperature, spec.Pressure
	n.n = amounts
	n.b = n.bulk(amounts)
	n.g0 = make([]float64, len(amounts))
	n.mu = make([]float64, len(amounts))
	n.status = NeedAIA
	n.iterations = 0
	return nil
}

// bulk returns the element amounts of species amounts x.
func (n *Node) bulk(x []float64) []float64 {
	b := mat.NewVecDense(n.NumIC(), nil)
	b.MulVec(n.formula, mat.NewVecDense(len(x), x))
	return b.RawVector().Data
}

// NumIC returns the number of independent components, including charge.
func (n *Node) NumIC() int { return len(n.elements) + 1 }

// NumDC returns the number of dependent components.
func (n *Node) NumDC() int { return len(n.species) }

// NumPH returns the number of phases.
func (n *Node) NumPH() int { return len(n.phases) }

// NumDCinPH returns the number of dependent components in phase k.
func (n *Node) NumDCinPH(k int) int { return len(n.phases[k].Species) }

// ICName returns the name of independent component i.
func (n *Node) ICName(i int) string {
	if i == len(n.elements) {
		return ChargeName
	}
	return n.elements[i]
}

// DCName returns the name of dependent component j.
func (n *Node) DCName(j int) string { return n.species[j].Name }

// PHName returns the name of phase k.
func (n *Node) PHName(k int) string { return n.phases[k].Name }

// PHClass returns the class code of phase k.
func (n *Node) PHClass(k int) byte { return n.classes[k] }

// ICMolarMass returns the molar mass [kg/mol] of independent component i.
// The molar mass of charge is zero.
func (n *Node) ICMolarMass(i int) float64 {
	if i == len(n.elements) {
		return 0
	}
	return n.molarMasses[i]
}

// DCMolarMass returns the molar mass [kg/mol] of dependent component j.
func (n *Node) DCMolarMass(j int) float64 { return n.species[j].MolarMass }

// DCaJI returns the stoichiometric coefficient of independent
// component i in dependent component j.
func (n *Node) DCaJI(j, i int) float64 { return n.formula.At(i, j) }

// SetTemperature sets the temperature [K].
func (n *Node) SetTemperature(T float64) { n.t = T }

// SetPressure sets the pressure [Pa].
func (n *Node) SetPressure(P float64) { n.p = P }

// Temperature returns the temperature [K].
func (n *Node) Temperature() float64 { return n.t }

// Pressure returns the pressure [Pa].
func (n *Node) Pressure() float64 { return n.p }

// SetElementAmounts sets the amounts [mol] of the independent
// components, including charge.
func (n *Node) SetElementAmounts(b []float64) error {
	if len(b) != n.NumIC() {
		return fmt.Errorf("solver: have %d element amounts, want %d", len(b), n.NumIC())
	}
	copy(n.b, b)
	return nil
}

// SetSpeciesAmounts sets the amounts [mol] of the dependent components.
// The element amounts are updated to match.
func (n *Node) SetSpeciesAmounts(x []float64) error {
	if len(x) != n.NumDC() {
		return fmt.Errorf("solver: have %d species amounts, want %d", len(x), n.NumDC())
	}
	copy(n.n, x)
	n.b = n.bulk(n.n)
	return nil
}

// ElementAmounts returns a copy of the amounts [mol] of the
// independent components.
func (n *Node) ElementAmounts() []float64 { return append([]float64{}, n.b...) }

// SpeciesAmounts returns a copy of the amounts [mol] of the dependent
// components.
func (n *Node) SpeciesAmounts() []float64 { return append([]float64{}, n.n...) }

// UpdateStandardGibbsEnergies calculates the standard Gibbs energies at
// the current temperature and pressure.
func (n *Node) UpdateStandardGibbsEnergies() {
	g := n.model.GibbsEnergies(n.t, n.p)
	copy(n.g0, g.Val)
}

// StandardGibbsEnergy returns the standard molar Gibbs energy [J/mol] of
// dependent component j from the last call to
// UpdateStandardGibbsEnergies.
func (n *Node) StandardGibbsEnergy(j int) float64 { return n.g0[j] }

// UpdateChemicalPotentials calculates the chemical potentials at the
// current temperature, pressure and species amounts.
func (n *Node) UpdateChemicalPotentials() {
	u := n.model.ChemicalPotentials(n.t, n.p, n.n)
	rt := thermochem.R * n.t
	for j, v := range u.Val {
		n.mu[j] = v / rt
	}
}

// NormalizedChemicalPotential returns μ/RT of dependent component j from
// the last call to UpdateChemicalPotentials.
func (n *Node) NormalizedChemicalPotential(j int) float64 { return n.mu[j] }

// Status returns the status of the last run.
func (n *Node) Status() Status { return n.status }

// Iterations returns the number of iterations of the last run.
func (n *Node) Iterations() int { return n.iterations }

// Clone returns a copy of n with its own state.
func (n *Node) Clone() *Node {
	return &Node{
		system:     n.system,
		t:          n.t,
		p:          n.p,
		b:          append([]float64{}, n.b...),
		n:          append([]float64{}, n.n...),
		g0:         append([]float64{}, n.g0...),
		mu:         append([]float64{}, n.mu...),
		status:     n.status,
		iterations: n.iterations,
	}
}
