package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gramgen/gramgen/spec"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <metadata file path>",
		Short:   "Print the validated grammar model in a readable format",
		Example: `  gramgen show arith.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) (retErr error) {
	metaPath := args[0]
	defer func() {
		annotateSpecErrors(retErr, metaPath)
	}()

	cgram, err := buildGrammar(metaPath)
	if err != nil {
		return err
	}

	writeModel(cgram)
	return nil
}

func writeModel(cgram *spec.CompiledGrammar) {
	header := color.New(color.FgCyan, color.Bold)

	header.Fprintf(os.Stdout, "# Token kinds\n\n")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Value type", "Pattern", "Skip"})
	for _, k := range cgram.Tokens {
		skip := ""
		if k.Skip {
			skip = "yes"
		}
		t.AppendRow(table.Row{k.ID, k.Name, k.ValueType, k.Pattern, skip})
	}
	t.Render()

	header.Fprintf(os.Stdout, "\n# Rule classes\n\n")
	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Root", "Needs", "Patterns"})
	for i, c := range cgram.Classes {
		root := ""
		if i == cgram.Root {
			root = "yes"
		}
		needs := make([]string, len(c.Needs))
		for j, n := range c.Needs {
			needs[j] = n.Field
		}
		pats := make([]string, len(c.Patterns))
		for j, p := range c.Patterns {
			pats[j] = patternString(cgram, p)
		}
		t.AppendRow(table.Row{c.Name, root, strings.Join(needs, ", "), strings.Join(pats, "\n")})
	}
	t.Render()

	if len(cgram.Interfaces) > 0 {
		header.Fprintf(os.Stdout, "\n# Interfaces\n\n")
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Name", "Implementors (try-order)"})
		for _, f := range cgram.Interfaces {
			impls := make([]string, len(f.Implementors))
			for j, ci := range f.Implementors {
				impls[j] = cgram.Classes[ci].Name
			}
			t.AppendRow(table.Row{f.Name, strings.Join(impls, ", ")})
		}
		t.Render()
	}
}

func patternString(cgram *spec.CompiledGrammar, p *spec.CompiledPattern) string {
	elems := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		switch e.Kind {
		case spec.ElementKindToken:
			elems[i] = cgram.Tokens[e.Index].Name
		case spec.ElementKindClass:
			elems[i] = cgram.Classes[e.Index].Name
		default:
			elems[i] = cgram.Interfaces[e.Index].Name
		}
	}
	return strings.Join(elems, " ")
}
