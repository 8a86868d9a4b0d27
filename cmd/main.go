// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// noColor holds the --no-color flag, which disables fatih/color output.
// Color is also disabled when stdout isn't a terminal, so escape codes
// don't leak into output piped into jq or a file.
var noColor bool

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	var rootCmd = &cobra.Command{
		Use:   "ifclite",
		Short: "A queryable reader for buildingSMART IFC/STEP files",
		Long: `ifclite reads ISO-10303-21 IFC files and exposes their entities,
properties, quantities, relationships and spatial hierarchy as columnar
tables, with an optional triangulated mesh per product.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the ifclite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("ifclite version 0.1.0")
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newInspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
