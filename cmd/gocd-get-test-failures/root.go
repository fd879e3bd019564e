package main

import (
	"github.com/spf13/cobra"

	"github.com/counsyl/gocd-get-test-failures/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gocd-get-test-failures BUILD",
		Short: "Fetch failing test output from a GoCD pipeline run",
		Example: `  gocd-get-test-failures dev-website-ci-5/2275
  gocd-get-test-failures dev-website-ci-5/2275 --format=org --test=billing
  gocd-get-test-failures --show-pipelines`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runFailures,
	}

	flags := cmd.Flags()
	flags.String("format", config.FormatJSON, "output format (json|org)")
	flags.String("stage", "", "stage that ran the tests")
	flags.String("job", "", "job whose test report is fetched")
	flags.String("test", "", "only include failures whose suite or test name matches")
	flags.Bool("show-pipelines", false, "list known pipelines with their stage and job")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	return cmd
}
