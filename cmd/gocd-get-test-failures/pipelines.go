package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/counsyl/gocd-get-test-failures/internal/config"
	"github.com/counsyl/gocd-get-test-failures/internal/discovery"
)

// runShowPipelines lists the pipelines whose stage and job the tool can
// work out on its own. It never talks to the server, so no credentials
// are needed.
func runShowPipelines(cmd *cobra.Command, cfg config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("--show-pipelines takes no BUILD argument")
	}

	registry := discovery.Defaults().Merge(cfg.Pipelines)
	return registry.Render(cmd.OutOrStdout())
}
