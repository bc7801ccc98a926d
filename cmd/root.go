package cmd

import (
	"context"
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/humanmotion/internal/config"
	"github.com/xkilldash9x/humanmotion/internal/observability"
)

var (
	cfgFile string
	// appConfig is populated by the root PersistentPreRunE before any
	// subcommand runs.
	appConfig *config.Config
)

// NewRootCommand builds the base command with a fresh flag set, so repeated
// executions (and tests) never leak flag state into each other.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "humanmotion",
		Short: "Generate human-like cursor trajectories and timing profiles.",
		Long: `humanmotion plans synthetic mouse trajectories: curved paths through
randomized control knots, velocity-scaled tremor, overshoot corrections,
and Fitts'-law timing. The output is JSON for downstream drivers or for
inspecting and tuning the motion model; this tool never moves a cursor.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "humanmotion"})
				return err
			}
			appConfig = cfg
			observability.InitializeLogger(cfg.Logger)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./humanmotion.yaml or ~/.humanmotion.yaml)")
	root.AddCommand(newGenerateCommand())
	return root
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		return err
	}
	return nil
}

// loadConfig reads the config file (explicit flag, working directory, or
// home directory) and environment variables into a validated Config.
func loadConfig() (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName("humanmotion")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("HUMANMOTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars apply.
	}

	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
