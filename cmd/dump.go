// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ifc-lite/ifclite"
)

func newDumpCmd() *cobra.Command {
	var wantWarnings bool
	var wantRelations bool

	cmd := &cobra.Command{
		Use:   "dump <file|dir>...",
		Short: "Parse IFC files and print a columnar summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectFiles(args)
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			if len(files) > 1 {
				bar = progressbar.Default(int64(len(files)), "dumping")
			}

			for _, path := range files {
				if err := dumpOne(path, wantWarnings, wantRelations); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %s\n", path, color.RedString(err.Error()))
				}
				if bar != nil {
					bar.Add(1)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wantWarnings, "warnings", false, "print recorded non-fatal warnings")
	cmd.Flags().BoolVar(&wantRelations, "relations", false, "print relationship edge counts")
	return cmd
}

func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, a)
			continue
		}
		err = filepath.Walk(a, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && filepath.Ext(path) == ".ifc" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func dumpOne(path string, wantWarnings, wantRelations bool) error {
	m, err := ifclite.Open(path, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	fmt.Println(color.CyanString(path))

	hdr := table.NewWriter()
	hdr.SetOutputMirror(os.Stdout)
	hdr.AppendHeader(table.Row{"Schema", "Entities", "Properties", "Quantities", "Storeys"})
	hdr.AppendRow(table.Row{
		m.Header.Schema.String(),
		m.Entities().Len(),
		len(m.Properties().Rows),
		len(m.Quantities().Rows),
		countStoreys(m),
	})
	hdr.Render()

	if wantRelations {
		printRelationCounts(m)
	}
	if wantWarnings {
		printWarnings(m)
	}
	return nil
}

func countStoreys(m *ifclite.Model) int {
	n := 0
	for _, et := range m.Entities().TypeEnum {
		if et == ifclite.EntityTypeStorey {
			n++
		}
	}
	return n
}

func printRelationCounts(m *ifclite.Model) {
	g := m.Relationships()
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Relation", "Edges"})
	for _, k := range []ifclite.RelationKind{
		ifclite.RelContainedIn, ifclite.RelAggregates, ifclite.RelDefinesByType,
		ifclite.RelDefinesByProperties, ifclite.RelAssociatesMaterial,
		ifclite.RelAssociatesClassification, ifclite.RelAssociatesDocument,
		ifclite.RelVoidsElement, ifclite.RelFillsElement, ifclite.RelConnectsPathElements,
	} {
		t.AppendRow(table.Row{k.String(), len(g.Edges(k))})
	}
	t.Render()
}

func printWarnings(m *ifclite.Model) {
	warnings := m.Warnings()
	if len(warnings) == 0 {
		fmt.Println(color.GreenString("no warnings"))
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ExpressID", "Kind", "Message"})
	for _, w := range warnings {
		t.AppendRow(table.Row{w.ExpressID, w.Kind.String(), w.Message})
	}
	t.Render()
}
