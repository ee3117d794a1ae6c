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

package backend

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/thermochem"
	"gonum.org/v1/gonum/mat"
)

// ErrFileFormat is returned when the backend cannot read a
// specification file.
var ErrFileFormat = errors.New("backend: error reading the chemical system specification file")

// Status is the state of the last equilibration of a Session.
type Status int

// Equilibration states. A session starts in NotRun and moves to
// Converged or NotConverged only by calling Equilibrate.
const (
	NotRun Status = iota
	Converged
	NotConverged
)

func (s Status) String() string {
	switch s {
	case NotRun:
		return "not run"
	case Converged:
		return "converged"
	case NotConverged:
		return "not converged"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Session is a solver session: a chemical system with its current
// temperature, pressure, element amounts and species amounts.
// A Session is not safe for concurrent use.
type Session struct {
	// Log receives a message for every equilibration.
	Log logrus.FieldLogger

	node Node
	path string

	status     Status
	iterations int
	elapsed    time.Duration
}

// NewSession creates a session of the built-in solver from the
// specification file at path.
func NewSession(path string) (*Session, error) {
	return NewSessionFromNode(NewSolverNode(), path)
}

// NewSessionFromNode creates a session by initializing node from the
// specification file at path. The returned error wraps ErrFileFormat
// if node cannot read the file.
func NewSessionFromNode(node Node, path string) (*Session, error) {
	if err := node.Init(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileFormat, path, err)
	}
	return &Session{
		Log:  logrus.StandardLogger(),
		node: node,
		path: path,
	}, nil
}

// Path returns the specification file the session was created from.
func (s *Session) Path() string { return s.path }

// SetTemperature sets the temperature [K].
func (s *Session) SetTemperature(T float64) { s.node.SetTemperature(T) }

// SetPressure sets the pressure [Pa].
func (s *Session) SetPressure(P float64) { s.node.SetPressure(P) }

// SetSpeciesAmounts sets the amounts of all species [mol].
func (s *Session) SetSpeciesAmounts(n []float64) error {
	return s.node.SetSpeciesAmounts(n)
}

// SetElementAmounts sets the amounts of the elements [mol]. The charge
// of the bulk composition is set to zero.
func (s *Session) SetElementAmounts(b []float64) error {
	if len(b) != s.NumElements() {
		return fmt.Errorf("backend: have %d element amounts, want %d", len(b), s.NumElements())
	}
	return s.node.SetElementAmounts(append(append([]float64{}, b...), 0))
}

// NumElements returns the number of elements, not counting charge.
func (s *Session) NumElements() int { return s.node.NumIC() - 1 }

// NumSpecies returns the number of species.
func (s *Session) NumSpecies() int { return s.node.NumDC() }

// NumPhases returns the number of phases.
func (s *Session) NumPhases() int { return s.node.NumPH() }

// NumSpeciesInPhase returns the number of species in phase k.
func (s *Session) NumSpeciesInPhase(k int) int { return s.node.NumDCinPH(k) }

// ElementName returns the name of element i.
func (s *Session) ElementName(i int) string { return s.node.ICName(i) }

// SpeciesName returns the name of species j.
func (s *Session) SpeciesName(j int) string { return s.node.DCName(j) }

// PhaseName returns the name of phase k.
func (s *Session) PhaseName(k int) string { return s.node.PHName(k) }

// PhaseClass returns the solver class code of phase k.
func (s *Session) PhaseClass(k int) byte { return s.node.PHClass(k) }

// ElementIndex returns the index of the named element, or
// NumElements() if there is none.
func (s *Session) ElementIndex(name string) int {
	return index(name, s.NumElements(), s.ElementName)
}

// SpeciesIndex returns the index of the named species, or
// NumSpecies() if there is none.
func (s *Session) SpeciesIndex(name string) int {
	return index(name, s.NumSpecies(), s.SpeciesName)
}

// PhaseIndex returns the index of the named phase, or
// NumPhases() if there is none.
func (s *Session) PhaseIndex(name string) int {
	return index(name, s.NumPhases(), s.PhaseName)
}

func index(name string, size int, nameOf func(int) string) int {
	for i := 0; i < size; i++ {
		if nameOf(i) == name {
			return i
		}
	}
	return size
}

// ElementAtomsInSpecies returns the number of atoms of element i in
// species j.
func (s *Session) ElementAtomsInSpecies(i, j int) float64 { return s.node.DCaJI(j, i) }

// SpeciesCharge returns the charge of species j.
func (s *Session) SpeciesCharge(j int) float64 { return s.node.DCaJI(j, s.NumElements()) }

// ElementsInSpecies returns the number of atoms of each element in
// species j, keyed by element index. Absent elements are left out.
func (s *Session) ElementsInSpecies(j int) map[int]float64 {
	o := make(map[int]float64)
	for i := 0; i < s.NumElements(); i++ {
		if a := s.ElementAtomsInSpecies(i, j); a != 0 {
			o[i] = a
		}
	}
	return o
}

// ElementMolarMass returns the molar mass of element i [kg/mol].
func (s *Session) ElementMolarMass(i int) float64 { return s.node.ICMolarMass(i) }

// SpeciesMolarMass returns the molar mass of species j [kg/mol].
func (s *Session) SpeciesMolarMass(j int) float64 { return s.node.DCMolarMass(j) }

// Temperature returns the temperature [K].
func (s *Session) Temperature() float64 { return s.node.Temperature() }

// Pressure returns the pressure [Pa].
func (s *Session) Pressure() float64 { return s.node.Pressure() }

// ElementAmounts returns the amounts of the elements [mol].
func (s *Session) ElementAmounts() []float64 {
	return s.node.ElementAmounts()[:s.NumElements()]
}

// SpeciesAmounts returns the amounts of all species [mol].
func (s *Session) SpeciesAmounts() []float64 { return s.node.SpeciesAmounts() }

// SpeciesAmount returns the amount of species j [mol].
func (s *Session) SpeciesAmount(j int) float64 { return s.node.SpeciesAmounts()[j] }

// SpeciesAmountsInPhase returns the amounts of the species in phase k [mol].
func (s *Session) SpeciesAmountsInPhase(k int) []float64 {
	var offset int
	for i := 0; i < k; i++ {
		offset += s.NumSpeciesInPhase(i)
	}
	return s.SpeciesAmounts()[offset : offset+s.NumSpeciesInPhase(k)]
}

// FormulaMatrix returns the elements×species formula matrix. Charge is
// not included.
func (s *Session) FormulaMatrix() *mat.Dense {
	E, N := s.NumElements(), s.NumSpecies()
	if E == 0 || N == 0 {
		return nil
	}
	a := mat.NewDense(E, N, nil)
	for j := 0; j < N; j++ {
		for i := 0; i < E; i++ {
			a.Set(i, j, s.ElementAtomsInSpecies(i, j))
		}
	}
	return a
}

// GibbsEnergies returns the standard molar Gibbs energies of the
// species [J/mol] at the current temperature and pressure.
func (s *Session) GibbsEnergies() []float64 {
	s.node.UpdateStandardGibbsEnergies()
	o := make([]float64, s.NumSpecies())
	for j := range o {
		o[j] = s.node.StandardGibbsEnergy(j)
	}
	return o
}

// ChemicalPotentials returns the chemical potentials of the species
// [J/mol] at the current temperature, pressure and species amounts.
func (s *Session) ChemicalPotentials() []float64 {
	s.node.UpdateStandardGibbsEnergies()
	s.node.UpdateChemicalPotentials()
	rt := thermochem.R * s.Temperature()
	o := make([]float64, s.NumSpecies())
	for j := range o {
		o[j] = rt * s.node.NormalizedChemicalPotential(j)
	}
	return o
}

// Equilibrate runs the solver from the current state and returns the
// resulting status. A run that does not converge is not retried; the
// species amounts hold the last iterate of the solver.
func (s *Session) Equilibrate() Status {
	start := time.Now()
	st := s.node.Run()
	s.elapsed = time.Since(start)
	if s.elapsed <= 0 {
		// The clock can be coarser than a fast run.
		s.elapsed = time.Nanosecond
	}
	s.iterations = s.node.Iterations()
	if st.OK() {
		s.status = Converged
	} else {
		s.status = NotConverged
	}
	s.Log.WithFields(logrus.Fields{
		"file":       s.path,
		"status":     st.String(),
		"iterations": s.iterations,
		"elapsed":    s.elapsed,
	}).Debug("backend equilibrate")
	return s.status
}

// Status returns the status of the last equilibration.
func (s *Session) Status() Status { return s.status }

// Converged returns whether the last equilibration converged.
func (s *Session) Converged() bool { return s.status == Converged }

// NumIterations returns the number of iterations of the last
// equilibration.
func (s *Session) NumIterations() int { return s.iterations }

// ElapsedTime returns the wall-clock duration of the last equilibration.
func (s *Session) ElapsedTime() time.Duration { return s.elapsed }

// Clone returns an independent copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.node = s.node.Clone()
	return &c
}
