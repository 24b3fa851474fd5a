package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/labybel/labybel/internal/config"
	"github.com/labybel/labybel/pkg/dls"
)

func writePrinters(w io.Writer, format string, printers []dls.Printer) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(printers)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(printers)
	case config.OutputText, "":
		if len(printers) == 0 {
			_, err := fmt.Fprintln(w, "No printers found.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tMODEL\tCONNECTED\tLOCAL\tTWIN TURBO")
		for _, p := range printers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.ModelName, yesNo(p.IsConnected), yesNo(p.IsLocal), yesNo(p.IsTwinTurbo))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
