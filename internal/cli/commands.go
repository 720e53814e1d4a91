package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/saju-api/internal/buildinfo"
	"github.com/zapponejosh/saju-api/internal/calendar"
	"github.com/zapponejosh/saju-api/internal/mcptools"
)

func chartCmd(a *app) *cobra.Command {
	var in calendar.BirthInput
	var (
		inputFile string
		longitude float64
		tzOffset  float64
		from, to  int
		format    string
	)

	c := &cobra.Command{
		Use:   "chart",
		Short: "Calculate a full four pillars chart",
		Example: `  saju chart --date 1990-01-15 --time 23:00 --gender male
  saju chart --date 1989-12-19 --calendar lunar --time 23:00 --gender male --format yaml
  saju chart --input birth.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inputFile != "" {
				fromFile, err := readBirthInput(inputFile)
				if err != nil {
					return err
				}
				in = mergeInput(fromFile, in)
			}

			f := cmd.Flags()
			if f.Changed("birth-longitude") {
				in.Longitude = &longitude
			}
			if f.Changed("tz-offset") {
				in.TzOffsetHours = &tzOffset
			}
			if f.Changed("from") {
				in.YearlyLuckFrom = &from
			}
			if f.Changed("to") {
				in.YearlyLuckTo = &to
			}

			chart, err := a.svc.Chart(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), chart, format, func(w io.Writer) error {
				return calendar.FormatChart(w, chart)
			})
		},
	}

	f := c.Flags()
	f.StringVarP(&inputFile, "input", "i", "", "YAML or JSON file with the birth data; flags override it")
	f.StringVarP(&in.Date, "date", "d", "", "Birth date YYYY-MM-DD")
	f.StringVarP(&in.Time, "time", "t", "", "Birth time HH:MM")
	f.StringVarP(&in.Gender, "gender", "g", "", "male|female")
	f.StringVar(&in.Timezone, "zone", "", "Birth time zone (default: --timezone)")
	f.Float64Var(&longitude, "birth-longitude", 0, "Birthplace longitude (default: --longitude)")
	f.StringVar(&in.Calendar, "calendar", "", "Calendar of --date: solar|lunar")
	f.BoolVar(&in.LeapMonth, "leap", false, "Lunar date is in a leap month")
	f.StringVar(&in.Preset, "chart-preset", "", "Preset for this chart (default: --preset)")
	f.Float64Var(&tzOffset, "tz-offset", 0, "Override the zone offset in hours")
	f.IntVar(&in.CurrentYear, "current-year", 0, "Year used for current luck (default: this year)")
	f.IntVar(&from, "from", 0, "First year of yearly luck")
	f.IntVar(&to, "to", 0, "Last year of yearly luck")
	f.StringVar(&format, "format", "text", "Output format: text|json|yaml")
	return c
}

// readBirthInput loads a birth description. JSON is valid YAML, so one
// decoder serves both.
func readBirthInput(path string) (calendar.BirthInput, error) {
	var in calendar.BirthInput
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read input: %w", err)
	}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse input %s: %w", path, err)
	}
	return in, nil
}

// mergeInput overlays the flags the user set onto file.
func mergeInput(file, flags calendar.BirthInput) calendar.BirthInput {
	out := file
	if flags.Date != "" {
		out.Date = flags.Date
	}
	if flags.Time != "" {
		out.Time = flags.Time
	}
	if flags.Gender != "" {
		out.Gender = flags.Gender
	}
	if flags.Timezone != "" {
		out.Timezone = flags.Timezone
	}
	if flags.Calendar != "" {
		out.Calendar = flags.Calendar
	}
	if flags.LeapMonth {
		out.LeapMonth = true
	}
	if flags.Preset != "" {
		out.Preset = flags.Preset
	}
	if flags.CurrentYear != 0 {
		out.CurrentYear = flags.CurrentYear
	}
	return out
}

func lunarCmd(a *app) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "lunar <YYYY-MM-DD>",
		Short: "Convert a Gregorian date to the lunar calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := a.svc.SolarToLunar(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), conv, format, func(w io.Writer) error {
				return calendar.FormatConversion(w, conv)
			})
		},
	}

	c.Flags().StringVar(&format, "format", "text", "Output format: text|json|yaml")
	return c
}

func solarCmd(a *app) *cobra.Command {
	var (
		leap   bool
		format string
	)

	c := &cobra.Command{
		Use:   "solar <YYYY-MM-DD>",
		Short: "Convert a lunar date to the Gregorian calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := a.svc.LunarToSolar(cmd.Context(), args[0], leap)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), conv, format, func(w io.Writer) error {
				return calendar.FormatConversion(w, conv)
			})
		},
	}

	c.Flags().BoolVar(&leap, "leap", false, "The lunar month is a leap month")
	c.Flags().StringVar(&format, "format", "text", "Output format: text|json|yaml")
	return c
}

func termsCmd(a *app) *cobra.Command {
	var (
		zone   string
		format string
	)

	c := &cobra.Command{
		Use:   "terms <year>",
		Short: "List the 24 solar terms of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: year %q", calendar.ErrInvalidInput, args[0])
			}
			table, err := a.svc.SolarTerms(cmd.Context(), year, zone)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), table, format, func(w io.Writer) error {
				return calendar.FormatTerms(w, table)
			})
		},
	}

	c.Flags().StringVar(&zone, "zone", "", "Time zone for start times (default: --timezone)")
	c.Flags().StringVar(&format, "format", "text", "Output format: text|json|yaml")
	return c
}

func mcpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the calculator as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcptools.NewServer(a.svc, buildinfo.Version)
			return mcptools.ServeStdio(cmd.Context(), server)
		},
	}
}
