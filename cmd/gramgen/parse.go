package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gramgen/gramgen/driver"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <metadata file path>",
		Short:   "Parse a text stream and print the instance tree",
		Long:    `parse builds the grammar model in-process and runs the parser directly. This is primarily aimed at debugging the grammar.`,
		Example: `  cat src | gramgen parse arith.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	metaPath := args[0]
	defer func() {
		annotateSpecErrors(retErr, metaPath)
	}()

	cgram, err := buildGrammar(metaPath)
	if err != nil {
		return err
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}

	inst, err := driver.ParseText(cgram, src)
	if err != nil {
		return err
	}

	driver.PrintTree(os.Stdout, inst)
	return nil
}
