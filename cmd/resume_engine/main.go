// Package main provides the entry point for the resume engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_engine",
	Short: "Resume document understanding pipeline",
	Long:  "Resume Engine turns a natural-language self-description into a structured, validated resume document via a staged extraction and enhancement pipeline.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
