package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/himynameismarvin/budget-bop/internal/extract"
	"github.com/himynameismarvin/budget-bop/internal/pipeline"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract transactions from unstructured text via AI",
		Long: `Send free-form statement text (no recognizable table structure) to the
configured AI model, then run the extracted candidate rows through the same
dedup, normalization and categorization pipeline as structured imports.

Reads from stdin when no file is given. Requires Gemini API credentials in
the environment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview without saving")
	cmd.Flags().Bool("json", false, "Emit review records as JSON")
	cmd.Flags().String("model", "", "Override the extraction model")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	asJSON, _ := cmd.Flags().GetBool("json")
	modelName, _ := cmd.Flags().GetString("model")
	if modelName == "" {
		modelName = viper.GetString("extract.model")
	}

	var text string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		text = string(data)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
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

	extractor, err := extract.NewGeminiExtractor(ctx, modelName)
	if err != nil {
		return err
	}

	table, err := extractor.Extract(ctx, text)
	if err != nil {
		return err
	}

	result, err := pipe.ProcessTable(table, pipeline.Options{KnownHashes: known})
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result.Records); err != nil {
			return err
		}
	}

	printSummary(result.Summary)

	if dryRun {
		fmt.Println("Dry run, nothing saved.")
		return nil
	}

	committed := pipe.Commit(result.Records)
	if err := store.SaveTransactions(ctx, committed); err != nil {
		return err
	}
	if err := store.SaveRules(ctx, pipe.ExportRules()); err != nil {
		return err
	}

	fmt.Printf("Committed %d transactions.\n", len(committed))
	return nil
}
