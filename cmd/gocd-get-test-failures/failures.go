package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/counsyl/gocd-get-test-failures/internal/config"
	"github.com/counsyl/gocd-get-test-failures/internal/discovery"
	"github.com/counsyl/gocd-get-test-failures/internal/filter"
	"github.com/counsyl/gocd-get-test-failures/internal/gocd"
	"github.com/counsyl/gocd-get-test-failures/internal/logging"
	"github.com/counsyl/gocd-get-test-failures/internal/output"
)

func runFailures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logging.Init(cfg.Verbose, cmd.ErrOrStderr())

	show, err := cmd.Flags().GetBool("show-pipelines")
	if err != nil {
		return fmt.Errorf("parse --show-pipelines: %w", err)
	}
	if show {
		return runShowPipelines(cmd, cfg, args)
	}

	format, err := config.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	if len(args) != 1 {
		return fmt.Errorf("expected exactly one BUILD argument (pipeline-name/counter)")
	}

	pipeline, counter, err := gocd.ParseBuild(args[0])
	if err != nil {
		return err
	}

	registry := discovery.Defaults().Merge(cfg.Pipelines)
	stage, job, err := registry.Resolve(pipeline, cfg.Stage, cfg.Job)
	if err != nil {
		return err
	}

	pattern, err := filter.Compile(cfg.Test)
	if err != nil {
		return err
	}

	user, password, err := cfg.Credentials()
	if err != nil {
		return err
	}

	client := gocd.NewClient(cfg.Host, user, password,
		gocd.WithLogger(logging.New("gocd")),
		gocd.WithInsecureSkipVerify(cfg.SkipSSLVerify),
	)

	ref := gocd.Ref{Pipeline: pipeline, Counter: counter, Stage: stage, Job: job}
	failures, err := client.TestFailures(cmd.Context(), ref)
	if err != nil {
		return err
	}

	failures = pattern.Apply(failures)

	switch format {
	case config.FormatJSON:
		return output.NewJSON(cmd.OutOrStdout()).Render(failures)
	case config.FormatOrg:
		return output.NewOrg(cmd.OutOrStdout()).Render(failures)
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}
