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
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/thermochem/backend"
	"github.com/tealeg/xlsx"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	_ "modernc.org/sqlite" // Register the sqlite database driver.
)

// WriteResults writes the results of sw to path. The format is chosen
// by the file extension: .xlsx, .sqlite or .db, or .png.
func WriteResults(path string, sw *Sweep, results []*Result) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(path, sw, results)
	case ".sqlite", ".db":
		return writeSQLite(path, sw, results)
	case ".png":
		return writePNG(path, sw, results)
	default:
		return fmt.Errorf("thermochem: invalid output file extension '%s'; valid options are .xlsx, .sqlite, .db and .png",
			filepath.Ext(path))
	}
}

// columns returns the names of the columns of a tabular sweep output.
func columns(sw *Sweep) []string {
	o := []string{
		fmt.Sprintf("%s [%s]", sw.Variable, sw.Units),
		"converged", "iterations", "pH", "pE", "Eh [V]", "ionic strength [mol/kg]", "Gibbs energy [J]",
	}
	for _, r := range sw.Reactions {
		o = append(o, "pE ("+r+")")
	}
	for _, s := range sw.Species {
		o = append(o, s+" [mol]")
	}
	return o
}

// row returns the values of point i of a sweep, in the order of columns.
func row(sw *Sweep, i int, r *Result) []float64 {
	var converged float64
	if r.Status == backend.Converged {
		converged = 1
	}
	o := []float64{sw.Values()[i], converged, float64(r.Iterations), r.PH, r.PE, r.Eh, r.IonicStrength, r.GibbsEnergy}
	o = append(o, pad(r.ReactionPE, len(sw.Reactions))...)
	return append(o, pad(r.Amounts, len(sw.Species))...)
}

// pad returns v extended with NaN to length n.
func pad(v []float64, n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = math.NaN()
		if i < len(v) {
			o[i] = v[i]
		}
	}
	return o
}

func writeXLSX(path string, sw *Sweep, results []*Result) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("sweep")
	if err != nil {
		return fmt.Errorf("thermochem: writing %s: %v", path, err)
	}
	header := sheet.AddRow()
	for _, c := range columns(sw) {
		header.AddCell().SetString(c)
	}
	for i, r := range results {
		xr := sheet.AddRow()
		for _, v := range row(sw, i, r) {
			cell := xr.AddCell()
			if math.IsNaN(v) {
				continue
			}
			cell.SetFloat(v)
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("thermochem: writing %s: %v", path, err)
	}
	return nil
}

// writeSQLite writes a points table with one row per sweep point, and
// reactions and amounts tables keyed by point.
func writeSQLite(path string, sw *Sweep, results []*Result) error {
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("thermochem: opening %s: %w", path, err)
	}
	defer db.Close()
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("thermochem: writing %s: %w", path, err)
	}
	if err := insertResults(ctx, tx, sw, results); err != nil {
		tx.Rollback()
		return fmt.Errorf("thermochem: writing %s: %w", path, err)
	}
	return tx.Commit()
}

func insertResults(ctx context.Context, tx *sql.Tx, sw *Sweep, results []*Result) error {
	for _, q := range []string{
		`DROP TABLE IF EXISTS points`,
		`DROP TABLE IF EXISTS reactions`,
		`DROP TABLE IF EXISTS amounts`,
		`CREATE TABLE points (point INTEGER PRIMARY KEY, variable TEXT, units TEXT, value REAL,
			temperature REAL, pressure REAL, converged INTEGER, iterations INTEGER,
			ph REAL, pe REAL, eh REAL, ionic_strength REAL, gibbs_energy REAL)`,
		`CREATE TABLE reactions (point INTEGER, reaction TEXT, pe REAL)`,
		`CREATE TABLE amounts (point INTEGER, species TEXT, amount REAL)`,
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	values := sw.Values()
	for i, r := range results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO points VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, sw.Variable, sw.Units, values[i], r.Temperature, r.Pressure,
			r.Status == backend.Converged, r.Iterations,
			nullable(r.PH), nullable(r.PE), nullable(r.Eh), r.IonicStrength, r.GibbsEnergy,
		); err != nil {
			return err
		}
		for k, pe := range r.ReactionPE {
			if _, err := tx.ExecContext(ctx, `INSERT INTO reactions VALUES (?, ?, ?)`,
				i, sw.Reactions[k], nullable(pe)); err != nil {
				return err
			}
		}
		for j, n := range r.Amounts {
			if _, err := tx.ExecContext(ctx, `INSERT INTO amounts VALUES (?, ?, ?)`,
				i, sw.Species[j], n); err != nil {
				return err
			}
		}
	}
	return nil
}

// nullable returns v, or nil if v is NaN.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// writePNG plots pH and pE of the converged points against the swept
// variable.
func writePNG(path string, sw *Sweep, results []*Result) error {
	values := sw.Values()
	var pH, pE plotter.XYs
	for i, r := range results {
		if r.Status != backend.Converged {
			continue
		}
		if !math.IsNaN(r.PH) {
			pH = append(pH, struct{ X, Y float64 }{values[i], r.PH})
		}
		if !math.IsNaN(r.PE) {
			pE = append(pE, struct{ X, Y float64 }{values[i], r.PE})
		}
	}
	if len(pH) == 0 {
		return fmt.Errorf("thermochem: writing %s: no converged points to plot", path)
	}
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = filepath.Base(path)
	p.X.Label.Text = fmt.Sprintf("%s (%s)", sw.Variable, sw.Units)
	p.Y.Label.Text = "pH, pE"
	lines := []interface{}{"pH", pH}
	if len(pE) > 0 {
		lines = append(lines, "pE", pE)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("thermochem: writing %s: %v", path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("thermochem: writing %s: %v", path, err)
	}
	return f.Close()
}
