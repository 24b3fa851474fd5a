package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/labybel/labybel/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the DLS host reports a connection",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

type statusOutput struct {
	Connected bool `json:"connected" yaml:"connected"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	connected, err := app.client.Connected(ctx)
	if err != nil {
		return explain(err)
	}

	out := cmd.OutOrStdout()
	result := statusOutput{Connected: connected}
	switch app.cfg.OutputFormat {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(result)
	default:
		_, err := fmt.Fprintf(out, "connected: %t\n", connected)
		return err
	}
}
