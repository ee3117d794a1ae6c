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

// Package chemutil contains the command-line interface to thermochem.
package chemutil

import (
	"fmt"
	"io"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/backend"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands.
var Log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// The flag sets of the commands that evaluate a backend session.
	sessionFlags := []*pflag.FlagSet{describeCmd.Flags(), propsCmd.Flags(), equilibrateCmd.Flags(), sweepCmd.Flags()}
	stateFlags := []*pflag.FlagSet{propsCmd.Flags(), equilibrateCmd.Flags(), sweepCmd.Flags()}

	// Options are the configuration options available to thermochem.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Backend",
			usage: `
              Backend specifies the path to the backend specification file
              describing the chemical system and its initial state.`,
			shorthand:  "b",
			defaultVal: "",
			flagsets:   sessionFlags,
		},
		{
			name: "Temperature",
			usage: `
              Temperature overrides the temperature in the backend
              specification file. Zero means use the value in the file.`,
			shorthand:  "t",
			defaultVal: 0.0,
			flagsets:   stateFlags,
		},
		{
			name: "TemperatureUnits",
			usage: `
              TemperatureUnits are the units of Temperature and of the sweep
              range when sweeping temperature. Valid options are K and C.`,
			defaultVal: "K",
			flagsets:   stateFlags,
		},
		{
			name: "Pressure",
			usage: `
              Pressure overrides the pressure in the backend specification
              file. Zero means use the value in the file.`,
			shorthand:  "p",
			defaultVal: 0.0,
			flagsets:   stateFlags,
		},
		{
			name: "PressureUnits",
			usage: `
              PressureUnits are the units of Pressure and of the sweep range
              when sweeping pressure. Valid options are Pa, kPa, MPa, bar and atm.`,
			defaultVal: "Pa",
			flagsets:   stateFlags,
		},
		{
			name: "Reactions",
			usage: `
              Reactions is a list of half reactions, for example
              "Fe++ = Fe+++ + e-", from which to additionally calculate pE
              and Eh.`,
			defaultVal: []string{},
			flagsets:   stateFlags,
		},
		{
			name: "LogFile",
			usage: `
              LogFile specifies the path to a file where log messages are
              written in addition to standard output. Empty means no file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Sweep.Variable",
			usage: `
              Sweep.Variable is the variable to sweep: temperature or pressure.`,
			defaultVal: "temperature",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.Start",
			usage: `
              Sweep.Start is the first value of the swept variable.`,
			defaultVal: 273.15,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.End",
			usage: `
              Sweep.End is the last value of the swept variable.`,
			defaultVal: 373.15,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.Steps",
			usage: `
              Sweep.Steps is the number of evenly spaced points in the sweep.`,
			defaultVal: 11,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where sweep results are written. The
              format is chosen by the extension: .xlsx for a workbook,
              .sqlite or .db for a database, and .png for a plot of pH and pE.`,
			shorthand:  "o",
			defaultVal: "sweep.xlsx",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("THERMOCHEM")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
			case int:
				set.Int(option.name, option.defaultVal.(int), option.usage)
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("thermochem: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// setLog directs log messages to w and, if LogFile is set, to that file.
func setLog(w io.Writer) error {
	Log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	logFile := os.ExpandEnv(Cfg.GetString("LogFile"))
	if logFile == "" {
		Log.SetOutput(w)
		return nil
	}
	f, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("thermochem: problem creating log file: %v", err)
	}
	Log.SetOutput(io.MultiWriter(w, f))
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "thermochem",
	Short: "Evaluate thermodynamic properties of chemical systems.",
	Long: `thermochem evaluates the thermodynamic and chemical properties of
multi-phase chemical systems, such as chemical potentials, pH, pE and Eh,
and equilibrates them with a Gibbs energy minimization solver.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'THERMOCHEM_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLog(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of thermochem.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("thermochem v%s\n", thermochem.Version)
	},
	DisableAutoGenTag: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe a chemical system.",
	Long: `describe prints the elements, phases and species of the chemical
system in the backend specification file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := backendSession()
		if err != nil {
			return err
		}
		return Describe(cmd.OutOrStdout(), s)
	},
	DisableAutoGenTag: true,
}

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Calculate properties of the initial state.",
	Long: `props calculates the properties of the initial state in the backend
specification file, without equilibrating it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := backendSession()
		if err != nil {
			return err
		}
		r, err := Properties(s, reactions())
		if err != nil {
			return err
		}
		return r.Print(cmd.OutOrStdout(), s, reactions()...)
	},
	DisableAutoGenTag: true,
}

var equilibrateCmd = &cobra.Command{
	Use:   "equilibrate",
	Short: "Equilibrate a chemical system.",
	Long: `equilibrate runs the solver on the initial state in the backend
specification file and calculates the properties of the result.
A run that does not converge is reported but is not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := backendSession()
		if err != nil {
			return err
		}
		r, err := Equilibrate(s, reactions())
		if err != nil {
			return err
		}
		return r.Print(cmd.OutOrStdout(), s, reactions()...)
	},
	DisableAutoGenTag: true,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Equilibrate a chemical system over a range of conditions.",
	Long: `sweep equilibrates the chemical system in the backend specification
file at evenly spaced values of temperature or pressure and writes the
results to OutputFile. Points that do not converge are kept in the output
and do not stop the sweep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := backendSession()
		if err != nil {
			return err
		}
		sw := &Sweep{
			Variable: Cfg.GetString("Sweep.Variable"),
			Start:    Cfg.GetFloat64("Sweep.Start"),
			End:      Cfg.GetFloat64("Sweep.End"),
			Steps:    Cfg.GetInt("Sweep.Steps"),
		}
		switch sw.Variable {
		case "temperature":
			sw.Units = Cfg.GetString("TemperatureUnits")
		case "pressure":
			sw.Units = Cfg.GetString("PressureUnits")
		}
		results, err := sw.Run(s, reactions())
		if err != nil {
			return err
		}
		Summarize(cmd.OutOrStdout(), sw, results)
		return WriteResults(os.ExpandEnv(Cfg.GetString("OutputFile")), sw, results)
	},
	DisableAutoGenTag: true,
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(describeCmd)
	Root.AddCommand(propsCmd)
	Root.AddCommand(equilibrateCmd)
	Root.AddCommand(sweepCmd)
}

// reactions returns the configured half reactions.
func reactions() []string {
	r, err := cast.ToStringSliceE(Cfg.Get("Reactions"))
	if err != nil {
		return nil
	}
	return r
}

// backendSession creates a session from the configured backend file and
// applies any configured temperature and pressure.
func backendSession() (*backend.Session, error) {
	return newSession(
		os.ExpandEnv(Cfg.GetString("Backend")),
		Cfg.GetFloat64("Temperature"), Cfg.GetString("TemperatureUnits"),
		Cfg.GetFloat64("Pressure"), Cfg.GetString("PressureUnits"),
	)
}
