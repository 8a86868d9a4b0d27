// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ifc-lite/ifclite"
)

func newInspectCmd() *cobra.Command {
	var expressID uint32

	cmd := &cobra.Command{
		Use:   "inspect <file> --id <expressID>",
		Short: "Decode and print one entity's attributes by express id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ifclite.Open(args[0], nil)
			if err != nil {
				return err
			}
			defer m.Close()

			entity, err := m.Decode(expressID)
			if err != nil {
				return fmt.Errorf("decoding #%d: %w", expressID, err)
			}

			fmt.Printf("#%d = %s\n", entity.ExpressID, entity.TypeUpper)
			if entity.Proxy {
				fmt.Println("(proxy decode: type unknown to schema registry)")
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"#", "Name", "Value"})
			for i, v := range entity.Attributes {
				name := ""
				if i < len(entity.AttrNames) {
					name = entity.AttrNames[i]
				}
				t.AppendRow(table.Row{i, name, renderAttr(v)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().Uint32Var(&expressID, "id", 0, "express id of the entity to decode")
	cmd.MarkFlagRequired("id")
	return cmd
}

func renderAttr(v ifclite.AttributeValue) string {
	switch v.Kind {
	case ifclite.AVInteger:
		return strconv.FormatInt(v.Int, 10)
	case ifclite.AVReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case ifclite.AVBoolean:
		return strconv.FormatBool(v.Bool)
	case ifclite.AVLogical:
		return [...]string{"F", "T", "U"}[v.Logical]
	case ifclite.AVString:
		return v.Str
	case ifclite.AVEnum:
		return "." + v.Enum + "."
	case ifclite.AVEntityRef:
		return "#" + strconv.FormatUint(uint64(v.Ref), 10)
	case ifclite.AVTypedValue:
		inner := ""
		if v.Inner != nil {
			inner = renderAttr(*v.Inner)
		}
		return v.Wrapper + "(" + inner + ")"
	case ifclite.AVList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = renderAttr(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ifclite.AVNull:
		return "$"
	case ifclite.AVDerived:
		return "*"
	default:
		return "?"
	}
}
