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

package chemutil

import (
	"fmt"
	"io"
	"math"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/unit"
	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/backend"
)

// newSession creates a session from the backend specification file at
// path. Nonzero T and P, in the given units, replace the temperature and
// pressure in the file.
func newSession(path string, T float64, tUnits string, P float64, pUnits string) (*backend.Session, error) {
	if path == "" {
		return nil, fmt.Errorf("thermochem: the Backend configuration variable must be set")
	}
	s, err := backend.NewSession(path)
	if err != nil {
		return nil, err
	}
	s.Log = Log
	if T != 0 {
		t, err := thermochem.Temperature(T, tUnits)
		if err != nil {
			return nil, err
		}
		s.SetTemperature(t.Value())
	}
	if P != 0 {
		p, err := thermochem.Pressure(P, pUnits)
		if err != nil {
			return nil, err
		}
		s.SetPressure(p.Value())
	}
	return s, nil
}

type speciesDescription struct {
	Name      string
	Charge    float64
	MolarMass string
	Elements  map[string]float64
}

type phaseDescription struct {
	Name    string
	Kind    string
	Species []speciesDescription
}

// Describe writes the topology of the chemical system of s to w.
func Describe(w io.Writer, s *backend.Session) error {
	sys := backend.ToChemicalSystem(s)
	var d []phaseDescription
	for _, p := range sys.Phases() {
		pd := phaseDescription{Name: p.Name, Kind: p.Kind.String()}
		for _, sp := range p.Species {
			sd := speciesDescription{
				Name:      sp.Name,
				Charge:    sp.Charge,
				MolarMass: fmt.Sprint(thermochem.MolarMassUnit(sp.MolarMass)),
				Elements:  make(map[string]float64),
			}
			for i, e := range sp.Elements {
				sd.Elements[e.Name] = sp.Atoms[i]
			}
			pd.Species = append(pd.Species, sd)
		}
		d = append(d, pd)
	}
	if _, err := fmt.Fprintf(w, "%s\nelements: %d, species: %d, phases: %d\n",
		s.Path(), sys.NumElements(), sys.NumSpecies(), sys.NumPhases()); err != nil {
		return err
	}
	for _, e := range sys.Elements() {
		if _, err := fmt.Fprintf(w, "element %s: %v\n", e.Name, e.MolarMassUnit()); err != nil {
			return err
		}
	}
	_, err := pretty.Fprintf(w, "%# v\n", d)
	return err
}

// Result holds the properties of one state of a chemical system.
type Result struct {
	// Temperature [K] and Pressure [Pa].
	Temperature, Pressure float64

	// Status is the status of the session when the properties were
	// calculated, and Iterations the number of solver iterations
	// of the last equilibration.
	Status     backend.Status
	Iterations int

	PH, PE float64

	// Eh [V], IonicStrength [mol/kg] and GibbsEnergy [J].
	Eh, IonicStrength, GibbsEnergy float64

	// ReactionPE holds the pE calculated from each half reaction.
	// It is NaN for reactions that are invalid for the system.
	ReactionPE []float64

	// Amounts of the species [mol].
	Amounts []float64
}

// Properties calculates the properties of the current state of s.
// Invalid half reactions are logged and give NaN.
func Properties(s *backend.Session, reactions []string) (*Result, error) {
	state := backend.ToChemicalState(s)
	props, err := state.Properties()
	if err != nil {
		return nil, err
	}
	aq := props.Aqueous()
	r := &Result{
		Temperature:   state.Temperature(),
		Pressure:      state.Pressure(),
		Status:        s.Status(),
		Iterations:    s.NumIterations(),
		PH:            aq.PH().Val,
		PE:            aq.PE().Val,
		Eh:            aq.Eh().Val,
		IonicStrength: aq.IonicStrength().Val,
		GibbsEnergy:   props.TotalGibbsEnergy().Val,
		Amounts:       state.SpeciesAmounts(),
	}
	for _, rxn := range reactions {
		pe, err := aq.PEReaction(rxn)
		if err != nil {
			Log.WithFields(logrus.Fields{
				"reaction": rxn,
				"error":    err.Error(),
			}).Warn("thermochem invalid half reaction")
			r.ReactionPE = append(r.ReactionPE, math.NaN())
			continue
		}
		r.ReactionPE = append(r.ReactionPE, pe.Val)
	}
	return r, nil
}

// Equilibrate equilibrates s and calculates the properties of the
// result. Not converging is not an error; it is recorded in the
// status of the result.
func Equilibrate(s *backend.Session, reactions []string) (*Result, error) {
	st := s.Equilibrate()
	Log.WithFields(logrus.Fields{
		"file":        s.Path(),
		"temperature": s.Temperature(),
		"pressure":    s.Pressure(),
		"status":      st.String(),
		"iterations":  s.NumIterations(),
		"elapsed":     s.ElapsedTime(),
	}).Info("thermochem equilibrate")
	return Properties(s, reactions)
}

// Print writes r to w, using s for species names and half reactions
// in the order they were given to Properties.
func (r *Result) Print(w io.Writer, s *backend.Session, reactions ...string) error {
	fmt.Fprintf(w, "Temperature:      %v\n", thermochem.TemperatureUnit(r.Temperature))
	fmt.Fprintf(w, "Pressure:         %v\n", thermochem.PressureUnit(r.Pressure))
	fmt.Fprintf(w, "Status:           %v (%d iterations)\n", r.Status, r.Iterations)
	fmt.Fprintf(w, "pH:               %.6g\n", r.PH)
	fmt.Fprintf(w, "pE:               %.6g\n", r.PE)
	fmt.Fprintf(w, "Eh:               %v\n", thermochem.PotentialUnit(r.Eh))
	fmt.Fprintf(w, "Ionic strength:   %v\n", unit.New(r.IonicStrength, thermochem.MolePerKilogram))
	fmt.Fprintf(w, "Gibbs energy:     %.8g J\n", r.GibbsEnergy)
	for i, pe := range r.ReactionPE {
		name := fmt.Sprintf("reaction %d", i)
		if i < len(reactions) {
			name = reactions[i]
		}
		fmt.Fprintf(w, "pE (%s): %.6g\n", name, pe)
	}
	fmt.Fprintln(w, "Species amounts:")
	for j, n := range r.Amounts {
		if _, err := fmt.Fprintf(w, "  %-16s %v\n", s.SpeciesName(j), thermochem.AmountUnit(n)); err != nil {
			return err
		}
	}
	return nil
}

// Sweep is a series of equilibrations over evenly spaced values of
// temperature or pressure.
type Sweep struct {
	// Variable is "temperature" or "pressure".
	Variable string

	// Units are the units of Start and End.
	Units string

	Start, End float64
	Steps      int

	// Species and Reactions are set by Run and name the columns of
	// the results.
	Species   []string
	Reactions []string
}

// Values returns the swept values in the units of the sweep.
func (sw *Sweep) Values() []float64 {
	if sw.Steps == 1 {
		return []float64{sw.Start}
	}
	v := make([]float64, sw.Steps)
	for i := range v {
		v[i] = sw.Start + (sw.End-sw.Start)*float64(i)/float64(sw.Steps-1)
	}
	return v
}

// set converts v to SI units and applies it to s.
func (sw *Sweep) set(s *backend.Session, v float64) error {
	switch sw.Variable {
	case "temperature":
		t, err := thermochem.Temperature(v, sw.Units)
		if err != nil {
			return err
		}
		s.SetTemperature(t.Value())
	case "pressure":
		p, err := thermochem.Pressure(v, sw.Units)
		if err != nil {
			return err
		}
		s.SetPressure(p.Value())
	default:
		return fmt.Errorf("thermochem: invalid sweep variable '%s'; valid options are temperature and pressure", sw.Variable)
	}
	return nil
}

// Run equilibrates a copy of s at each value of the sweep. The
// configuration of the sweep is checked before any equilibration;
// after that, points that do not converge or whose properties cannot
// be calculated are logged and kept, and the sweep continues.
func (sw *Sweep) Run(s *backend.Session, reactions []string) ([]*Result, error) {
	if sw.Steps < 1 {
		return nil, fmt.Errorf("thermochem: the sweep needs at least one step, not %d", sw.Steps)
	}
	for _, v := range []float64{sw.Start, sw.End} {
		if err := sw.set(s.Clone(), v); err != nil {
			return nil, err
		}
	}
	sw.Reactions = reactions
	sw.Species = make([]string, s.NumSpecies())
	for j := range sw.Species {
		sw.Species[j] = s.SpeciesName(j)
	}

	values := sw.Values()
	results := make([]*Result, len(values))
	for i, v := range values {
		c := s.Clone()
		c.Log = Log
		sw.set(c, v) // Checked above.
		r, err := Equilibrate(c, reactions)
		if err != nil {
			Log.WithFields(logrus.Fields{
				sw.Variable: v,
				"error":     err.Error(),
			}).Warn("thermochem sweep point failed")
			r = &Result{
				Temperature: c.Temperature(),
				Pressure:    c.Pressure(),
				Status:      c.Status(),
				PH:          math.NaN(),
				PE:          math.NaN(),
				Eh:          math.NaN(),
			}
		}
		results[i] = r
	}
	return results, nil
}

// Summarize writes summary statistics of the converged points of a
// sweep to w.
func Summarize(w io.Writer, sw *Sweep, results []*Result) {
	values := sw.Values()
	var x, pH []float64
	for i, r := range results {
		if r.Status == backend.Converged && !math.IsNaN(r.PH) {
			x = append(x, values[i])
			pH = append(pH, r.PH)
		}
	}
	fmt.Fprintf(w, "%d of %d points converged\n", len(x), len(results))
	if len(x) == 0 {
		return
	}
	fmt.Fprintf(w, "pH: min %.6g, max %.6g, mean %.6g\n",
		stats.StatsMin(pH), stats.StatsMax(pH), stats.StatsMean(pH))
	if len(x) > 1 {
		slope, _, _, _, _, _ := stats.LinearRegression(x, pH)
		fmt.Fprintf(w, "pH trend: %.6g per %s\n", slope, sw.Units)
	}
}
