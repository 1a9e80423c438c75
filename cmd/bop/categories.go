package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the known category set",
		Long: `List or add spending categories. The categorizer only ever suggests
categories from this set once it is non-empty.`,
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println("No categories defined; suggestions are unrestricted.")
				return nil
			}

			for _, cat := range categories {
				if cat.Description != "" {
					fmt.Printf("%s\t%s\n", cat.Name, cat.Description)
				} else {
					fmt.Println(cat.Name)
				}
			}
			return nil
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			description, _ := cmd.Flags().GetString("description")

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.CreateCategory(ctx, args[0], description)
			if err != nil {
				return err
			}

			fmt.Printf("Added category %q.\n", cat.Name)
			return nil
		},
	}

	cmd.Flags().String("description", "", "Optional category description")

	return cmd
}
