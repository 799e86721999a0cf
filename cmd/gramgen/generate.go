package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gramgen/gramgen/codegen"
	verr "github.com/gramgen/gramgen/error"
	"github.com/gramgen/gramgen/grammar"
	"github.com/gramgen/gramgen/internal/config"
	"github.com/gramgen/gramgen/spec"
)

var generateFlags = struct {
	output  *string
	pkgName *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "generate <metadata file path>",
		Short:   "Generate a parser from grammar metadata",
		Example: `  gramgen generate arith.json -o arith_parser.go`,
		Args:    cobra.ExactArgs(1),
		RunE:    runGenerate,
	}
	generateFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default <grammar-name>_parser.go)")
	generateFlags.pkgName = cmd.Flags().StringP("package", "p", "", "package name of the generated source (default main)")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) (retErr error) {
	metaPath := args[0]
	defer func() {
		annotateSpecErrors(retErr, metaPath)
	}()

	cfg, err := config.Load(*rootFlags.config, cmd.Flags())
	if err != nil {
		return err
	}

	cgram, err := buildGrammar(metaPath)
	if err != nil {
		return err
	}

	src, err := codegen.GenParser(cgram, cfg.Package)
	if err != nil {
		return err
	}

	outPath := cfg.Output
	if outPath == "" {
		outPath = fmt.Sprintf("%v_parser.go", cgram.Name)
	}
	err = os.WriteFile(outPath, src, 0644)
	if err != nil {
		return fmt.Errorf("cannot write the generated parser: %w", err)
	}

	return nil
}

func buildGrammar(metaPath string) (*spec.CompiledGrammar, error) {
	gspec, err := spec.LoadGrammarSpec(metaPath)
	if err != nil {
		return nil, err
	}

	b := &grammar.GrammarBuilder{
		Spec: gspec,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, err
	}

	return grammar.Compile(gram)
}

// annotateSpecErrors stamps the metadata file path onto collected build
// diagnostics so they print with their source.
func annotateSpecErrors(err error, metaPath string) {
	specErrs, ok := err.(verr.SpecErrors)
	if !ok {
		return
	}
	name := filepath.Base(metaPath)
	for _, e := range specErrs {
		e.FilePath = metaPath
		e.SourceName = name
	}
}
