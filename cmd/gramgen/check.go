package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check <metadata file path>",
		Short:   "Validate grammar metadata without generating code",
		Example: `  gramgen check arith.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) (retErr error) {
	metaPath := args[0]
	defer func() {
		annotateSpecErrors(retErr, metaPath)
	}()

	cgram, err := buildGrammar(metaPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%v: %v token kinds, %v rule classes, %v interfaces\n",
		cgram.Name, len(cgram.Tokens), len(cgram.Classes), len(cgram.Interfaces))
	return nil
}
