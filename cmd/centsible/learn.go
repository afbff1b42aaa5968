package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reeselc/centsible/internal/cli"
)

func learnCmd() *cobra.Command {
	var batchFile string

	cmd := &cobra.Command{
		Use:   "learn [<description> <category>]",
		Short: "Teach the categorizer a merchant's category",
		Long: `Save a confirmed (description, category) pair. Future transactions whose
merchant key matches will use the learned category instead of the rules.

Examples:
  # Learn a single correction
  centsible learn "TST* MAMALEH'S DELI CAMBRIDGE" "Dining - Restaurants"

  # Learn many corrections from a JSON file
  centsible learn --batch corrections.json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if batchFile != "" {
				if len(args) != 0 {
					return fmt.Errorf("cannot combine --batch with positional arguments")
				}
				return learnBatch(cmd, batchFile)
			}

			if len(args) != 2 {
				return fmt.Errorf("expected <description> <category>")
			}
			description, category := args[0], args[1]
			if strings.TrimSpace(description) == "" || strings.TrimSpace(category) == "" {
				return fmt.Errorf("description and category must not be empty")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SavePattern(ctx, description, category); err != nil {
				return fmt.Errorf("failed to save pattern: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Learned: %q → %s", description, category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&batchFile, "batch", "", "JSON file with an array of {description, category} pairs")

	return cmd
}

// learnBatch saves every pair from a JSON file. The file is fully
// validated before the first save so a malformed entry never leaves the
// store partially updated.
func learnBatch(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	var pairs []struct {
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}

	for i, pair := range pairs {
		if strings.TrimSpace(pair.Description) == "" || strings.TrimSpace(pair.Category) == "" {
			return fmt.Errorf("entry %d: description and category must not be empty", i)
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for _, pair := range pairs {
		if err := store.SavePattern(ctx, pair.Description, pair.Category); err != nil {
			return fmt.Errorf("failed to save pattern for %q: %w", pair.Description, err)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Learned %d patterns", len(pairs))))
	return nil
}
