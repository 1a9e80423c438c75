package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/himynameismarvin/budget-bop/internal/model"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Export and import learned rules",
	}

	cmd.AddCommand(rulesExportCmd())
	cmd.AddCommand(rulesImportCmd())

	return cmd
}

func rulesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export all rules as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			pipe, err := buildPipeline(ctx, store)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(pipe.ExportRules(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}

			if len(args) == 1 {
				if err := os.WriteFile(args[0], data, 0600); err != nil {
					return fmt.Errorf("failed to write rules file: %w", err)
				}
				fmt.Printf("Exported rules to %s\n", args[0])
				return nil
			}

			fmt.Println(string(data))
			return nil
		},
	}
}

func rulesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a previously exported rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read rules file: %w", err)
			}

			var rules model.RuleSet
			if err := json.Unmarshal(data, &rules); err != nil {
				return fmt.Errorf("failed to decode rules: %w", err)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveRules(ctx, rules); err != nil {
				return err
			}

			fmt.Printf("Imported %d normalization and %d categorization rules.\n",
				len(rules.Normalization), len(rules.Categorization))
			return nil
		},
	}
}
