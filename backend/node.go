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

// Package backend adapts an equilibrium solver session to the chemical
// system and state types of package thermochem.
//
// A Session is a single mutable object. Chemical systems created from a
// session by ToChemicalSystem evaluate their properties through an
// AdapterModel, which owns a separate clone of the session and serializes
// access to it. The solver computes no derivatives, so every vector
// returned by an AdapterModel has zero derivative channels and carries
// the DerivativesUnavailable flag.
package backend

import "github.com/spatialmodel/thermochem/solver"

// Node is the interface to an equilibrium solver node. Independent
// components are elements followed by charge; dependent components are
// species.
type Node interface {
	// Init reads the backend specification file at path.
	Init(path string) error

	NumIC() int
	NumDC() int
	NumPH() int
	NumDCinPH(k int) int
	ICName(i int) string
	DCName(j int) string
	PHName(k int) string
	PHClass(k int) byte
	ICMolarMass(i int) float64
	DCMolarMass(j int) float64

	// DCaJI returns the stoichiometric coefficient of independent
	// component i in dependent component j.
	DCaJI(j, i int) float64

	SetTemperature(T float64)
	SetPressure(P float64)
	Temperature() float64
	Pressure() float64
	SetElementAmounts(b []float64) error
	SetSpeciesAmounts(n []float64) error
	ElementAmounts() []float64
	SpeciesAmounts() []float64

	UpdateStandardGibbsEnergies()
	StandardGibbsEnergy(j int) float64
	UpdateChemicalPotentials()

	// NormalizedChemicalPotential returns μ/RT of dependent component j.
	NormalizedChemicalPotential(j int) float64

	// Run minimizes the Gibbs energy of the node.
	Run() solver.Status
	Iterations() int

	// Clone returns an independent copy of the node.
	Clone() Node
}

// solverNode adapts *solver.Node to the Node interface.
type solverNode struct {
	*solver.Node
}

// NewSolverNode returns an uninitialized node of package solver.
func NewSolverNode() Node { return solverNode{new(solver.Node)} }

func (n solverNode) Clone() Node { return solverNode{n.Node.Clone()} }
