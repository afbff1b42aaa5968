package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/reeselc/centsible/internal/cli"
	"github.com/reeselc/centsible/internal/common"
	"github.com/reeselc/centsible/internal/engine"
	"github.com/reeselc/centsible/internal/statement"
)

func processCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "process <statement.txt>",
		Short: "Categorize a statement and summarize spending",
		Long: `Extract transactions from statement text, categorize each one using
learned patterns and the built-in rules, and split the results into
auto-accepted and needs-review buckets.

Examples:
  # Categorize a statement and print the summary
  centsible process ~/Downloads/chase_jan.txt

  # Emit machine-readable output
  centsible process --json ~/Downloads/chase_jan.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open statement: %w", err)
			}
			defer func() { _ = f.Close() }()

			transactions, err := statement.NewParser().Extract(ctx, f)
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				return common.NewUserError("no transactions found in statement", common.ErrExtractionFailed)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var progress func()
			if !asJSON {
				bar := progressbar.Default(int64(len(transactions)), "Categorizing")
				progress = func() { _ = bar.Add(1) }
			}

			categorized, err := engine.New(store).CategorizeAll(ctx, transactions, progress)
			if err != nil {
				return err
			}

			result := engine.Route(categorized)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			renderResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a formatted report")

	return cmd
}

// renderResult prints the routed result as styled tables.
func renderResult(result engine.Result) {
	fmt.Println(cli.FormatTitle("Spending summary"))

	if len(result.Summary) > 0 {
		categories := make([]string, 0, len(result.Summary))
		for category := range result.Summary {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\n",
			cli.TableHeaderStyle.Render("Category"),
			cli.TableHeaderStyle.Render("Total"))
		fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 30), strings.Repeat("-", 10))
		for _, category := range categories {
			fmt.Fprintf(w, "%s\t%.2f\n", category, result.Summary[category])
		}
		_ = w.Flush()
		fmt.Println()
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d transactions auto-accepted", len(result.HighConfidence))))

	if len(result.NeedsReview) == 0 {
		return
	}

	fmt.Println(cli.FormatWarning(fmt.Sprintf("%d transactions need review:", len(result.NeedsReview))))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Description"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("Guess"))
	for _, txn := range result.NeedsReview {
		guess := cli.SubtleStyle.Render("(none)")
		if txn.Categorized() {
			guess = fmt.Sprintf("%s (%.0f%%)", *txn.Category, txn.Confidence*100)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", txn.Date, txn.Description, txn.Amount, guess)
	}
	_ = w.Flush()
}
