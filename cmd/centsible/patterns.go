package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reeselc/centsible/internal/cli"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Manage learned merchant patterns",
	}

	cmd.AddCommand(listPatternsCmd())

	return cmd
}

func listPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learned patterns",
		Long:  `Display the merchant-to-category mappings learned from your corrections.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			patterns, err := store.ListPatterns(ctx)
			if err != nil {
				return fmt.Errorf("failed to list patterns: %w", err)
			}

			if len(patterns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No learned patterns yet. Use 'centsible learn' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Merchant key"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Last used"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 25),
				strings.Repeat("-", 25),
				strings.Repeat("-", 19))

			for _, p := range patterns {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					p.MerchantKey, p.Category, p.LastUsed.Format("2006-01-02 15:04:05"))
			}

			return nil
		},
	}
}
