package main

import (
	"github.com/spf13/cobra"
)

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "List the printers known to the DLS host",
	Args:  cobra.NoArgs,
	RunE:  runPrinters,
}

func runPrinters(cmd *cobra.Command, _ []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	printers, err := app.client.Printers(ctx)
	if err != nil {
		return explain(err)
	}
	app.log.DebugObj("printers listed", "printers_meta", map[string]any{
		"count": len(printers),
	})

	return writePrinters(cmd.OutOrStdout(), app.cfg.OutputFormat, printers)
}
