package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-engine/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <resume.json>",
	Short: "Validate a resume document against the canonical schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	problems, err := schemas.ValidateFile(args[0])
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		fmt.Println("Valid resume document.")
		return nil
	}

	fmt.Printf("%d problem(s) found:\n", len(problems))
	for _, problem := range problems {
		fmt.Printf("  - %s\n", problem)
	}
	return fmt.Errorf("document does not conform to the resume schema")
}
