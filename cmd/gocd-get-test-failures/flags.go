package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/counsyl/gocd-get-test-failures/internal/config"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return config.Config{}, err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, nil
}

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("stage") {
		v, err := flags.GetString("stage")
		if err != nil {
			return values, fmt.Errorf("parse --stage: %w", err)
		}
		values.Stage = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("job") {
		v, err := flags.GetString("job")
		if err != nil {
			return values, fmt.Errorf("parse --job: %w", err)
		}
		values.Job = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("test") {
		v, err := flags.GetString("test")
		if err != nil {
			return values, fmt.Errorf("parse --test: %w", err)
		}
		values.Test = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
