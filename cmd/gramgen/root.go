package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	verr "github.com/gramgen/gramgen/error"
)

var rootFlags = struct {
	config *string
}{}

var rootCmd = &cobra.Command{
	Use:   "gramgen",
	Short: "Generate a parser from declarative grammar metadata",
	Long: `gramgen builds a validated grammar model from declarative metadata
(token kinds and rule classes with field dependencies) and generates a
memoized recursive-descent parser for it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "config file path (default gramgen.yaml)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
		return err
	}
	return nil
}

func printError(err error) {
	if specErrs, ok := err.(verr.SpecErrors); ok {
		red := color.New(color.FgRed)
		for _, e := range specErrs {
			red.Fprintln(os.Stderr, e.Error())
		}
		return
	}
	color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
}
