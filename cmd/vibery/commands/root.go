// Package commands implements the CLI commands for vibery.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/vibery/cmd/vibery/commands/flags"
	"github.com/thoreinstein/vibery/cmd/vibery/commands/kit"
	"github.com/thoreinstein/vibery/internal/config"
	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds an explicit config file path.
var configFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringP("project", "C", "", "project root to install into (default: current directory)")
	pf.String("kits-dir", "", "directory containing kits (default: $XDG_DATA_HOME/vibery/stacks)")
	pf.StringVar(&configFile, "config", "", "config file (default: ./config.yaml or $XDG_CONFIG_HOME/vibery/config.yaml)")
	pf.CountVarP(&verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text, json")
	pf.StringVar(&logFile, "log-file", "", "write logs to file in JSON format")

	_ = viper.BindPFlag(config.KeyProjectRoot, pf.Lookup("project"))
	_ = viper.BindPFlag(config.KeyKitsDir, pf.Lookup("kits-dir"))

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("vibery version {{.Version}}\n")

	// Errors are printed by main with their suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(kit.Cmd)
}

func initConfig() {
	config.Init()
	var cfg *config.Config
	cfg, configLoadErr = config.Load(configFile)
	if configLoadErr == nil {
		flags.SetConfig(cfg)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vibery",
	Short: "Install and remove kits of agents, commands, and skills",
	Long: `vibery installs kits into a project's .claude directory and removes
them again.

A kit bundles agents, slash commands, skills, hook configuration, MCP
server definitions, and a CLAUDE.md section. Every installed file is
recorded in .claude/metadata.json so the kit can be cleanly uninstalled
later, and configuration shared with other kits or with your own settings
is merged rather than overwritten.`,
	Example: `  # See which kits are available
  vibery kit list

  # Preview an install, then install
  vibery kit install go-backend --dry-run
  vibery kit install go-backend

  # Remove it again
  vibery kit uninstall go-backend

  See Also: vibery kit installed`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if configLoadErr != nil {
			return errors.NewConfigError(configLoadErr)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(
			errors.New("cannot use --quiet and --verbose together"),
			"Use either -q or -v, not both")
	}

	flags.SetQuiet(quiet)

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("VIBERY_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	primary := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}).Handler()

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "Check that the --log-file directory exists and is writable")
		}
		// File output uses JSON format
		handler = logging.NewMultiHandler(primary, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command. An interrupt cancels the command context
// so an install in progress stops between files.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
