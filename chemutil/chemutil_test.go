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
	"bytes"
	"database/sql"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/thermochem/backend"
	"github.com/tealeg/xlsx"
)

func init() {
	Log.SetOutput(ioutil.Discard)
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "thermochem v") {
		t.Errorf("have %q", buf.String())
	}
}

func TestDescribeCommand(t *testing.T) {
	var buf bytes.Buffer
	Cfg.Set("Backend", "testdata/water.toml")
	Root.SetOutput(&buf)
	Root.SetArgs([]string{"describe"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"elements: 2, species: 4, phases: 1", "element H:", "element O:", "H2O(l)", "OH-", "aqueous"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestEquilibrateCommand(t *testing.T) {
	var buf bytes.Buffer
	Cfg.Set("Backend", "testdata/water.toml")
	Cfg.Set("Temperature", 25.0)
	Cfg.Set("TemperatureUnits", "C")
	defer Cfg.Set("Temperature", 0.0)
	defer Cfg.Set("TemperatureUnits", "K")
	Root.SetOutput(&buf)
	Root.SetArgs([]string{"equilibrate"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"converged", "pH:", "Species amounts:", "H+"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, buf.String())
		}
	}
}

func TestMissingBackend(t *testing.T) {
	if _, err := newSession("", 0, "K", 0, "Pa"); err == nil {
		t.Error("expected an error for an empty backend path")
	}
	if _, err := newSession("testdata/water.toml", 10, "F", 0, "Pa"); err == nil {
		t.Error("expected an error for invalid temperature units")
	}
	s, err := newSession("testdata/water.toml", 2, "bar", 0, "Pa")
	if err == nil {
		t.Errorf("expected an error for temperature units of bar, have session at %g K", s.Temperature())
	}
	s, err = newSession("testdata/water.toml", 0, "K", 2, "bar")
	if err != nil {
		t.Fatal(err)
	}
	if s.Pressure() != 2.e5 {
		t.Errorf("pressure: have %g, want 2e5", s.Pressure())
	}
}

func TestPropertiesInvalidReaction(t *testing.T) {
	s, err := newSession("testdata/water.toml", 0, "K", 0, "Pa")
	if err != nil {
		t.Fatal(err)
	}
	r, err := Properties(s, []string{"Fe++ = Fe+++ + e-", "O2(aq) + 4*H+ + 4*e- = 2*H2O(l)"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != backend.NotRun {
		t.Errorf("status: have %v, want %v", r.Status, backend.NotRun)
	}
	if len(r.ReactionPE) != 2 {
		t.Fatalf("have %d reaction pE values, want 2", len(r.ReactionPE))
	}
	if !math.IsNaN(r.ReactionPE[0]) {
		t.Errorf("unknown species: have pE %g, want NaN", r.ReactionPE[0])
	}
	if math.IsNaN(r.ReactionPE[1]) {
		t.Error("valid reaction should give a pE")
	}
	var buf bytes.Buffer
	if err := r.Print(&buf, s, "Fe++ = Fe+++ + e-"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "pE (Fe++ = Fe+++ + e-): NaN") {
		t.Errorf("have output:\n%s", buf.String())
	}
}

func TestSweepValues(t *testing.T) {
	sw := &Sweep{Start: 280, End: 320, Steps: 5}
	want := []float64{280, 290, 300, 310, 320}
	have := sw.Values()
	for i := range want {
		if math.Abs(have[i]-want[i]) > 1.e-12 {
			t.Errorf("value %d: have %g, want %g", i, have[i], want[i])
		}
	}
	sw.Steps = 1
	if have := sw.Values(); len(have) != 1 || have[0] != 280 {
		t.Errorf("one step: have %v", have)
	}
}

func TestSweepErrors(t *testing.T) {
	s, err := newSession("testdata/water.toml", 0, "K", 0, "Pa")
	if err != nil {
		t.Fatal(err)
	}
	for _, sw := range []*Sweep{
		{Variable: "volume", Units: "K", Start: 1, End: 2, Steps: 2},
		{Variable: "temperature", Units: "K", Start: 1, End: 2, Steps: 0},
		{Variable: "temperature", Units: "K", Start: -1, End: 2, Steps: 2},
		{Variable: "pressure", Units: "psi", Start: 1, End: 2, Steps: 2},
	} {
		if _, err := sw.Run(s, nil); err == nil {
			t.Errorf("%+v: expected an error", sw)
		}
	}
}

func TestSweep(t *testing.T) {
	s, err := newSession("testdata/water.toml", 0, "K", 0, "Pa")
	if err != nil {
		t.Fatal(err)
	}
	sw := &Sweep{Variable: "temperature", Units: "C", Start: 10, End: 50, Steps: 5}
	results, err := sw.Run(s, []string{"O2(aq) + 4*H+ + 4*e- = 2*H2O(l)"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("have %d results, want 5", len(results))
	}
	for i, r := range results {
		if r.Status != backend.Converged {
			t.Errorf("point %d: have %v, want %v", i, r.Status, backend.Converged)
		}
	}
	if want := 323.15; math.Abs(results[4].Temperature-want) > 1.e-9 {
		t.Errorf("last temperature: have %g, want %g", results[4].Temperature, want)
	}
	if s.Status() != backend.NotRun || s.Temperature() != 298.15 {
		t.Error("the sweep should not change the session")
	}
	// Water dissociates more at higher temperature.
	if !(results[4].PH < results[0].PH) {
		t.Errorf("pH should decrease with temperature: have %g at 10 C and %g at 50 C", results[0].PH, results[4].PH)
	}

	var buf bytes.Buffer
	Summarize(&buf, sw, results)
	if !strings.Contains(buf.String(), "5 of 5 points converged") || !strings.Contains(buf.String(), "pH trend") {
		t.Errorf("summary: have\n%s", buf.String())
	}

	dir, err := ioutil.TempDir("", "thermochem")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(dir, "sweep.xlsx")
		if err := WriteResults(path, sw, results); err != nil {
			t.Fatal(err)
		}
		f, err := xlsx.OpenFile(path)
		if err != nil {
			t.Fatal(err)
		}
		rows := f.Sheets[0].Rows
		if len(rows) != 6 {
			t.Fatalf("have %d rows, want 6", len(rows))
		}
		if have := rows[0].Cells[0].Value; have != "temperature [C]" {
			t.Errorf("first column: have %q", have)
		}
		if have, want := len(rows[0].Cells), 8+1+4; have != want {
			t.Errorf("columns: have %d, want %d", have, want)
		}
	})
	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(dir, "sweep.sqlite")
		if err := WriteResults(path, sw, results); err != nil {
			t.Fatal(err)
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()
		for table, want := range map[string]int{"points": 5, "reactions": 5, "amounts": 20} {
			var n int
			if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
				t.Fatal(err)
			}
			if n != want {
				t.Errorf("%s: have %d rows, want %d", table, n, want)
			}
		}
		var converged int
		if err := db.QueryRow("SELECT SUM(converged) FROM points").Scan(&converged); err != nil {
			t.Fatal(err)
		}
		if converged != 5 {
			t.Errorf("converged: have %d, want 5", converged)
		}
	})
	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "sweep.png")
		if err := WriteResults(path, sw, results); err != nil {
			t.Fatal(err)
		}
		b, err := ioutil.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(b, []byte("\x89PNG")) {
			t.Error("output is not a png file")
		}
	})
	t.Run("invalid", func(t *testing.T) {
		if err := WriteResults(filepath.Join(dir, "sweep.csv"), sw, results); err == nil {
			t.Error("expected an error for an unsupported extension")
		}
	})
}

func TestSweepDoesNotAbort(t *testing.T) {
	s, err := newSession("testdata/oneiteration.toml", 0, "K", 0, "Pa")
	if err != nil {
		t.Fatal(err)
	}
	sw := &Sweep{Variable: "pressure", Units: "bar", Start: 1, End: 10, Steps: 3}
	results, err := sw.Run(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("have %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Status != backend.NotConverged {
			t.Errorf("point %d: have %v, want %v", i, r.Status, backend.NotConverged)
		}
	}
	var buf bytes.Buffer
	Summarize(&buf, sw, results)
	if !strings.HasPrefix(buf.String(), "0 of 3 points converged") {
		t.Errorf("summary: have\n%s", buf.String())
	}
	if err := writePNG(filepath.Join(os.TempDir(), "thermochem_none.png"), sw, results); err == nil {
		t.Error("expected an error when no points converged")
	}
}
