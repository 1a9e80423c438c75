package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/himynameismarvin/budget-bop/internal/mapper"
	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/ofx"
	"github.com/himynameismarvin/budget-bop/internal/pipeline"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from CSV, TSV, HTML or OFX files",
		Long: `Import bank statement files through the full pipeline: parse, map,
deduplicate, normalize vendors and suggest categories.

Use "-" to read from stdin (e.g. pasted clipboard data).

Examples:
  bop import ~/Downloads/checking_jan.csv
  bop import ~/Downloads/*.qfx
  pbpaste | bop import -`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().Bool("json", false, "Emit review records as JSON")
	cmd.Flags().StringArray("map", nil, "Override field mapping (e.g. --map date=Posted)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	asJSON, _ := cmd.Flags().GetBool("json")
	mapFlags, _ := cmd.Flags().GetStringArray("map")

	mapping, err := parseMappingFlags(mapFlags)
	if err != nil {
		return err
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	pipe, err := buildPipeline(ctx, store)
	if err != nil {
		return err
	}

	known, err := store.GetKnownHashes(ctx)
	if err != nil {
		return err
	}

	files := expandArgs(args)
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	var bar *progressbar.ProgressBar
	if len(files) > 1 && !asJSON {
		bar = progressbar.Default(int64(len(files)), "importing")
	}

	var allRecords []model.ReviewRecord
	total := model.ReviewSummary{}

	for _, file := range files {
		result, err := processFile(ctx, pipe, file, mapping, known)
		if err != nil {
			slog.Error("Failed to process file", "file", file, "error", err)
			if bar != nil {
				_ = bar.Add(1)
			}
			continue
		}

		allRecords = append(allRecords, result.Records...)
		total.Total += result.Summary.Total
		total.Ready += result.Summary.Ready
		total.Flagged += result.Summary.Flagged
		total.Duplicates += result.Summary.Duplicates

		// Hashes from this file count as known for the next one, so
		// cross-file duplicates within one invocation are flagged too.
		for _, record := range result.Records {
			known[record.Transaction.Hash] = true
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(allRecords); err != nil {
			return err
		}
	}

	printSummary(total)

	if dryRun {
		fmt.Println("Dry run, nothing saved.")
		return nil
	}

	committed := pipe.Commit(allRecords)
	if err := store.SaveTransactions(ctx, committed); err != nil {
		return err
	}
	if err := store.SaveRules(ctx, pipe.ExportRules()); err != nil {
		return err
	}

	fmt.Printf("Committed %d transactions.\n", len(committed))
	return nil
}

// processFile routes a file to the right adapter: OFX/QFX files go through
// the OFX parser's pre-parsed candidate path, everything else (including
// stdin) through the tabular text path.
func processFile(ctx context.Context, pipe *pipeline.Pipeline, file string, mapping mapper.Mapping, known map[string]bool) (*pipeline.Result, error) {
	opts := pipeline.Options{Mapping: mapping, KnownHashes: known}

	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return pipe.ProcessText(string(data), opts)
	}

	ext := strings.ToLower(filepath.Ext(file))
	if ext == ".ofx" || ext == ".qfx" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()

		transactions, err := ofx.NewParser().ParseFile(ctx, f)
		if err != nil {
			return nil, err
		}
		return pipe.ProcessTransactions(transactions, opts), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return pipe.ProcessText(string(data), opts)
}

// expandArgs resolves glob patterns and keeps direct file paths and "-".
func expandArgs(args []string) []string {
	var files []string
	for _, pattern := range args {
		if pattern == "-" {
			files = append(files, pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files
}
