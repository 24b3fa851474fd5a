// labybel queries a DYMO Label Software host from the command line.
//
// Usage:
//
//	labybel status   [--host=http://127.0.0.1] [--port=41951]
//	labybel printers [--output=text|json|yaml]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
