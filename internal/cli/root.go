// Package cli implements the saju command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/saju-api/internal/buildinfo"
	"github.com/zapponejosh/saju-api/internal/calendar"
	"github.com/zapponejosh/saju-api/internal/config"
	"github.com/zapponejosh/saju-api/internal/dateadapter"
	"github.com/zapponejosh/saju-api/internal/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags override the environment configuration for one run.
type globalFlags struct {
	backend   string
	timezone  string
	longitude float64
	preset    string
	logLevel  string
}

// app is built once per invocation by the root command.
type app struct {
	cfg *config.Config
	svc *calendar.Service
}

func newRootCmd() *cobra.Command {
	var (
		flags globalFlags
		a     app
	)

	cmd := &cobra.Command{
		Use:          "saju",
		Short:        "Korean four pillars (사주) calculator",
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c, flags)
			if err != nil {
				return err
			}
			logger.SetupWriter(cfg, c.ErrOrStderr())

			backend, err := dateadapter.ParseBackend(cfg.DateBackend)
			if err != nil {
				return err
			}
			svc, err := calendar.NewService(backend, calendar.Defaults{
				Timezone:  cfg.DefaultTimezone,
				Longitude: cfg.DefaultLongitude,
				Preset:    cfg.DefaultPreset,
			})
			if err != nil {
				return err
			}

			a.cfg, a.svc = cfg, svc
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.backend, "backend", "", "Date backend: std|carbon (default from DATE_BACKEND)")
	pf.StringVar(&flags.timezone, "timezone", "", "Default IANA time zone (default from DEFAULT_TIMEZONE)")
	pf.Float64Var(&flags.longitude, "longitude", 0, "Default longitude in degrees east (default from DEFAULT_LONGITUDE)")
	pf.StringVar(&flags.preset, "preset", "", "Pillar preset: standard|traditional (default from DEFAULT_PRESET)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug|info|warn|error (logs go to stderr)")

	cmd.AddCommand(
		chartCmd(&a),
		lunarCmd(&a),
		solarCmd(&a),
		termsCmd(&a),
		mcpCmd(&a),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads the environment and applies flags the user set.
func loadConfig(c *cobra.Command, flags globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	pf := c.Flags()
	if pf.Changed("backend") {
		cfg.DateBackend = flags.backend
	}
	if pf.Changed("timezone") {
		cfg.DefaultTimezone = flags.timezone
	}
	if pf.Changed("longitude") {
		cfg.DefaultLongitude = flags.longitude
	}
	if pf.Changed("preset") {
		cfg.DefaultPreset = flags.preset
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(c *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(c.OutOrStdout(), buildinfo.String())
			return err
		},
	}
}
