package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/ontology"
)

var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Inspect and validate skills ontology files",
}

var ontologyValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an ontology file",
	Long: `Checks that an ontology file parses and that every alias resolves to
exactly one skill. With no argument, validates the built-in catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOntologyValidate,
}

func init() {
	ontologyCmd.AddCommand(ontologyValidateCmd)
	rootCmd.AddCommand(ontologyCmd)
}

func runOntologyValidate(_ *cobra.Command, args []string) error {
	var ont *ontology.Ontology
	var err error

	if len(args) == 0 {
		ont = ontology.Default()
		fmt.Fprintln(os.Stdout, "Validating built-in catalog")
	} else {
		ont, err = ontology.LoadFile(args[0])
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "OK: %d skills, %d aliases\n", ont.Len(), len(ont.Aliases()))
	return nil
}
