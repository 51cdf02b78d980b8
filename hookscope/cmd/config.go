package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds the settings of a command. Values come from HOOKSCOPE_*
// environment variables, optionally loaded from an env file, and flags set
// on the command line override them.
type Config struct {
	Class     string `env:"HOOKSCOPE_CLASS"`
	Legacy    bool   `env:"HOOKSCOPE_LEGACY"`
	Export    string `env:"HOOKSCOPE_EXPORT"`
	Out       string `env:"HOOKSCOPE_OUT"`
	DumpState bool   `env:"HOOKSCOPE_DUMP_STATE"`
	Verbose   bool   `env:"HOOKSCOPE_VERBOSE"`
	Step      int    `env:"HOOKSCOPE_STEP" envDefault:"1"`
}

// LoadConfig reads the env file, if it exists, and parses the environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	var cfg Config

	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// configFor loads the configuration and applies the flags the user set.
func configFor(cmd *cobra.Command) (Config, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return Config{}, err
	}

	cfg, err := LoadConfig(envFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()

	if flags.Changed("class") {
		cfg.Class, _ = flags.GetString("class")
	}

	if flags.Changed("legacy") {
		cfg.Legacy, _ = flags.GetBool("legacy")
	}

	if flags.Changed("export") {
		cfg.Export, _ = flags.GetString("export")
	}

	if flags.Changed("out") {
		cfg.Out, _ = flags.GetString("out")
	}

	if flags.Changed("dump-state") {
		cfg.DumpState, _ = flags.GetBool("dump-state")
	}

	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	if flags.Changed("step") {
		cfg.Step, _ = flags.GetInt("step")
	}

	return cfg, nil
}
