package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"club-backend/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a roster file into the local store",
	Long: `Import reads a JSON file of {name, jersey} rows and upserts them into
the local player collection by jersey number. Every row is classified as
added, updated, or skipped with a reason.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading roster file: %w", err)
		}

		var rows []importer.Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return fmt.Errorf("parsing roster file: %w", err)
		}

		s, err := openStore()
		if err != nil {
			return err
		}

		result, err := importer.New(s).Import(cmd.Context(), rows)
		if err != nil {
			return err
		}

		fmt.Printf("Added:   %d\n", result.Added)
		fmt.Printf("Updated: %d\n", result.Updated)
		fmt.Printf("Skipped: %d\n", len(result.Skipped))
		for _, skip := range result.Skipped {
			fmt.Printf("  %s (jersey %q): %s\n", skip.Row.Name, skip.Row.Jersey.Raw, skip.Reason)
		}
		return nil
	},
}
