package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-engine/internal/config"
	"github.com/jonathan/resume-engine/internal/db"
	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/llm"
	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a resume document from a self-description",
	Long: `Runs the full pipeline on one self-description: understanding -> clarification -> generation -> enhancement -> qa -> formatting.

The description comes from --input (a text file) or --prompt (inline text). If the pipeline pauses with clarification questions, answer them in a JSON file and re-run with --answers.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath  string
	genInput       string
	genPrompt      string
	genAnswers     string
	genTestMode    bool
	genVerbose     bool
	genAPIKey      string
	genDatabaseURL string
)

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCmd.Flags().StringVarP(&genInput, "input", "i", "", "Path to a self-description text file (mutually exclusive with --prompt)")
	generateCmd.Flags().StringVarP(&genPrompt, "prompt", "p", "", "Self-description text (mutually exclusive with --input)")
	generateCmd.Flags().StringVarP(&genAnswers, "answers", "a", "", "Path to a clarification answers JSON file")
	generateCmd.Flags().BoolVar(&genTestMode, "test-mode", false, "Skip the clarification pause (for automated runs)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed stage output")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run persistence
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	if genPrompt == "" && cfg.Input == "" {
		return fmt.Errorf("either --input or --prompt must be provided (via flag or config)")
	}
	if genPrompt != "" && cfg.Input != "" {
		return fmt.Errorf("--input and --prompt are mutually exclusive; provide only one")
	}

	rawText := genPrompt
	if cfg.Input != "" {
		text, _, err := ingestion.FromFile(cfg.Input)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		rawText = text
	}

	answers, err := loadAnswers(cfg.Answers)
	if err != nil {
		return err
	}

	opts := pipeline.Options{Verbose: cfg.Verbose}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: run persistence disabled: %v\n", err)
		} else {
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: run persistence disabled: %v\n", err)
			} else {
				opts.DB = database
			}
		}
	}

	if cfg.APIKey != "" {
		rewriter, err := llm.NewRewriter(ctx, cfg.APIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: polish step disabled: %v\n", err)
		} else {
			defer rewriter.Close() //nolint:errcheck
			opts.Rewriter = rewriter
		}
	}

	pipe := pipeline.New(opts)
	st := pipe.Run(ctx, pipeline.NewState(types.GenerateRequest{
		Prompt:   rawText,
		Answers:  answers,
		TestMode: cfg.TestMode,
	}))

	return printOutcome(st)
}

func loadGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if genVerbose {
			fmt.Printf("Loaded config from: %s\n", genConfigPath)
		}
	}

	// Command-line args take priority; only override when the flag was set.
	if cmd.Flags().Changed("input") {
		cfg.Input = genInput
	}
	if cmd.Flags().Changed("answers") {
		cfg.Answers = genAnswers
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}
	if cmd.Flags().Changed("test-mode") {
		cfg.TestMode = genTestMode
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return cfg, nil
}

// loadAnswers reads a {"field": value} JSON object.
func loadAnswers(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	var answers map[string]any
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers JSON: %w", err)
	}
	return answers, nil
}

// printOutcome writes the terminal state to stdout: the document on success,
// questions or issues otherwise. A failed run is the only non-zero exit.
func printOutcome(st *pipeline.State) error {
	switch st.Status {
	case pipeline.StatusAwaitingClarification:
		fmt.Println("More information is needed. Answer these and re-run with --answers:")
		for i, q := range st.Questions {
			fmt.Printf("  %d. [%s] %s\n", i+1, q.Field, q.Question)
		}
		return nil
	case pipeline.StatusRejected:
		fmt.Println("The generated document did not pass QA:")
		for _, issue := range st.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		return nil
	case pipeline.StatusFailed:
		return fmt.Errorf("pipeline failed at %s: %s", st.FailedStage, st.Error)
	}

	out, err := json.MarshalIndent(st.Resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resume document: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
