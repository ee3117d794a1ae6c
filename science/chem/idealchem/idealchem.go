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

// Package idealchem is a native thermodynamic model with analytic
// derivatives. Standard Gibbs energies are extrapolated linearly from
// reference data, and activities follow ideal mixing within each phase,
// optionally corrected for aqueous solutes by an activity model from
// package activity.
package idealchem

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/ctessum/requestcache"
	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/science/activity"
)

// tinyAmount is the smallest species amount [mol] used when taking
// logarithms, so that absent species have finite chemical potentials.
const tinyAmount = 1.0e-50

// SpeciesData holds the standard-state reference properties of a species
// at the reference temperature and pressure.
type SpeciesData struct {
	// GibbsEnergy is the standard molar Gibbs energy of formation [J/mol].
	GibbsEnergy float64

	// Entropy is the standard molar entropy [J/(mol K)].
	Entropy float64

	// Volume is the standard molar volume [m³/mol].
	Volume float64
}

// Model is an ideal-mixing thermodynamic model. It fulfils the
// thermochem.Model interface.
type Model struct {
	phases []thermochem.Phase
	data   []SpeciesData

	offsets []int
	charges []float64

	// gamma holds the activity model of each aqueous solute, keyed by
	// global species index.
	gamma map[int]activity.ActivityModel

	cache     *requestcache.Cache
	cacheSize int
}

// Option configures a Model.
type Option func(*Model) error

// Activity sets the activity model of the solutes in the named aqueous
// phase. See activity.Lookup for valid model names.
func Activity(phase, model string) Option {
	return func(m *Model) error {
		for k, p := range m.phases {
			if p.Name != phase {
				continue
			}
			if p.Kind != thermochem.Aqueous {
				return fmt.Errorf("idealchem: phase '%s' is not aqueous", phase)
			}
			for i, s := range p.Species {
				if thermochem.IsWater(s.Name) {
					continue
				}
				g, err := activity.Lookup(model, s.Charge)
				if err != nil {
					return err
				}
				m.gamma[m.offsets[k]+i] = g
			}
			return nil
		}
		return fmt.Errorf("idealchem: there is no phase named '%s'", phase)
	}
}

// CacheSize sets the number of (temperature, pressure) pairs whose
// standard Gibbs energies are kept in memory. The default is 100.
func CacheSize(n int) Option {
	return func(m *Model) error {
		m.cacheSize = n
		return nil
	}
}

// New creates a model for the given phases, where data holds the
// reference properties of each species in global index order.
func New(phases []thermochem.Phase, data []SpeciesData, opts ...Option) (*Model, error) {
	m := &Model{
		phases:    phases,
		data:      data,
		offsets:   make([]int, len(phases)),
		gamma:     make(map[int]activity.ActivityModel),
		cacheSize: 100,
	}
	for k, p := range phases {
		m.offsets[k] = len(m.charges)
		for _, s := range p.Species {
			m.charges = append(m.charges, s.Charge)
		}
	}
	if len(data) != len(m.charges) {
		return nil, fmt.Errorf("idealchem: have reference data for %d species but the phases contain %d species",
			len(data), len(m.charges))
	}
	for _, o := range opts {
		if err := o(m); err != nil {
			return nil, err
		}
	}
	m.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
		r := request.(tp)
		return m.gibbsEnergies(r.T, r.P), nil
	}, runtime.GOMAXPROCS(-1), requestcache.Deduplicate(), requestcache.Memory(m.cacheSize))
	return m, nil
}

// NewSystem creates a chemical system whose species properties are
// calculated by a new Model.
func NewSystem(phases []thermochem.Phase, data []SpeciesData, opts ...Option) (*thermochem.ChemicalSystem, error) {
	m, err := New(phases, data, opts...)
	if err != nil {
		return nil, err
	}
	return thermochem.NewChemicalSystem(phases, m), nil
}

type tp struct{ T, P float64 }

// DerivativesAvailable fulfils the thermochem.Model interface.
func (m *Model) DerivativesAvailable() bool { return true }

// GibbsEnergies returns the standard molar Gibbs energies [J/mol]
// at temperature T [K] and pressure P [Pa]:
//
//	G° = G°ref - S°ref (T - Tref) + V° (P - Pref)
func (m *Model) GibbsEnergies(T, P float64) thermochem.ThermoVector {
	req := m.cache.NewRequest(context.TODO(), tp{T: T, P: P}, fmt.Sprintf("%g_%g", T, P))
	result, err := req.Result()
	if err != nil {
		// gibbsEnergies cannot fail.
		panic(err)
	}
	// Copy so callers cannot modify the cached result.
	g := result.(thermochem.ThermoVector)
	o := thermochem.NewThermoVector(g.Len())
	copy(o.Val, g.Val)
	copy(o.DdT, g.DdT)
	copy(o.DdP, g.DdP)
	return o
}

func (m *Model) gibbsEnergies(T, P float64) thermochem.ThermoVector {
	g := thermochem.NewThermoVector(len(m.data))
	for i, d := range m.data {
		g.Val[i] = d.GibbsEnergy - d.Entropy*(T-thermochem.ReferenceTemperature) +
			d.Volume*(P-thermochem.ReferencePressure)
		g.DdT[i] = -d.Entropy
		g.DdP[i] = d.Volume
	}
	return g
}

// ChemicalPotentials returns the chemical potentials [J/mol] at
// temperature T [K], pressure P [Pa] and species amounts n [mol]:
//
//	μ = G° + RT ln a
func (m *Model) ChemicalPotentials(T, P float64, n []float64) thermochem.ChemicalVector {
	N := len(m.data)
	u := thermochem.NewChemicalVector(N, N)
	if len(n) != N {
		panic(fmt.Errorf("idealchem: species amount vector has length %d but the model has %d species", len(n), N))
	}
	g0 := m.GibbsEnergies(T, P)
	rt := thermochem.TemperatureScalar(T).Scale(thermochem.R)
	for k, p := range m.phases {
		lna := m.lnActivities(k, p, T, P, n)
		for i := range p.Species {
			j := m.offsets[k] + i
			u.SetRow(j, g0.Row(j).Add(rt.Mul(lna[i])))
		}
	}
	return u
}

// amount returns the amount of species i as a scalar, bounded below
// by tinyAmount.
func amount(n []float64, i int) thermochem.ChemicalScalar {
	s := thermochem.NewChemicalScalar(len(n))
	s.Val = math.Max(n[i], tinyAmount)
	s.DdN[i] = 1
	return s
}

// lnActivities returns the natural logarithms of the activities of the
// species in phase k.
func (m *Model) lnActivities(k int, p thermochem.Phase, T, P float64, n []float64) []thermochem.ChemicalScalar {
	off, size := m.offsets[k], len(p.Species)
	o := make([]thermochem.ChemicalScalar, size)
	if size == 1 && (p.Kind == thermochem.Solid || p.Kind == thermochem.Liquid) {
		o[0] = thermochem.NewChemicalScalar(len(n))
		return o
	}
	total := thermochem.NewChemicalScalar(len(n))
	for i := 0; i < size; i++ {
		total = total.Add(amount(n, off+i))
	}
	lnTotal := total.Log()
	lnx := func(i int) thermochem.ChemicalScalar {
		return amount(n, off+i).Log().Sub(lnTotal)
	}

	switch p.Kind {
	case thermochem.Aqueous:
		water := len(n)
		for i, s := range p.Species {
			if thermochem.IsWater(s.Name) {
				water = off + i
			}
		}
		if water == len(n) || n[water] <= 0 {
			for i := range o {
				o[i] = lnx(i)
			}
			return o
		}
		state := activity.NewAqueousMixtureState(T, P, n, off, size, water, m.charges[off:off+size])
		lnkgw := amount(n, water).Scale(thermochem.WaterMolarMass).Log()
		for i := range o {
			j := off + i
			if j == water {
				o[i] = lnx(i)
				continue
			}
			// ln m = ln n - ln(n_w M_w)
			lna := amount(n, j).Log().Sub(lnkgw)
			if g, ok := m.gamma[j]; ok {
				lna = lna.Add(g(state))
			}
			o[i] = lna
		}
	case thermochem.Gaseous:
		lnp := thermochem.ChemicalScalar{
			Val: math.Log(P / thermochem.ReferencePressure),
			DdP: 1 / P,
		}
		for i := range o {
			o[i] = lnx(i).Add(lnp)
		}
	default:
		for i := range o {
			o[i] = lnx(i)
		}
	}
	return o
}
