package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/pipeline"
	"github.com/jonathan/resume-engine/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Generate resume documents for multiple self-descriptions",
	Long: `Runs the pipeline over each input file concurrently. Every file gets its own independent state; one bad input never affects the others.

Batch runs always use test mode: nothing pauses for clarification, incomplete inputs are rejected by QA instead. Results are written next to each input as <name>.resume.json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchConcurrency int
	batchOutputDir   string
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Maximum inputs processed in parallel")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "", "Directory for result files (defaults to each input's directory)")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print per-file stage output")
	rootCmd.AddCommand(batchCmd)
}

type batchResult struct {
	Input  string `json:"input"`
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func runBatch(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	if batchConcurrency < 1 {
		batchConcurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	var mu sync.Mutex
	results := make([]batchResult, len(args))

	for i, path := range args {
		g.Go(func() error {
			res := processOne(ctx, path)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}

	// Worker errors are recorded per file, so this never fails.
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		switch res.Status {
		case string(pipeline.StatusCompleted):
			fmt.Printf("ok       %s -> %s\n", res.Input, res.Output)
		case string(pipeline.StatusRejected):
			fmt.Printf("rejected %s: %s\n", res.Input, res.Detail)
		default:
			failed++
			fmt.Printf("failed   %s: %s\n", res.Input, res.Detail)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(args))
	}
	return nil
}

func processOne(ctx context.Context, path string) batchResult {
	res := batchResult{Input: path}

	text, _, err := ingestion.FromFile(path)
	if err != nil {
		res.Status = "failed"
		res.Detail = err.Error()
		return res
	}

	var out io.Writer = os.Stdout
	if !batchVerbose {
		// Interleaved stage logs from concurrent runs are noise.
		out = io.Discard
	}
	pipe := pipeline.New(pipeline.Options{Verbose: batchVerbose, Output: out})

	st := pipe.Run(ctx, pipeline.NewState(types.GenerateRequest{
		Prompt:   text,
		TestMode: true,
	}))
	res.Status = string(st.Status)

	switch st.Status {
	case pipeline.StatusCompleted:
		outPath, err := writeBatchOutput(path, st)
		if err != nil {
			res.Status = "failed"
			res.Detail = err.Error()
			return res
		}
		res.Output = outPath
	case pipeline.StatusRejected:
		res.Detail = strings.Join(st.Issues, "; ")
	case pipeline.StatusFailed:
		res.Detail = fmt.Sprintf("%s: %s", st.FailedStage, st.Error)
	}
	return res
}

func writeBatchOutput(inputPath string, st *pipeline.State) (string, error) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	dir := batchOutputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	outPath := filepath.Join(dir, base+".resume.json")

	data, err := json.MarshalIndent(st.Resume, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode resume document: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return outPath, nil
}
