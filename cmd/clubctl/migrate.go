package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"club-backend/internal/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the whole local document into a relational store",
	Long: `Migrate reads the local document once and writes players, matches,
lineup assignments, substitutions and team settings into separate tables.
Each insert is independent: failures are counted and listed, but the run
always continues to completion and nothing is rolled back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sqlitePath, _ := cmd.Flags().GetString("sqlite")
		pgURL, _ := cmd.Flags().GetString("postgrest-url")
		pgKey, _ := cmd.Flags().GetString("postgrest-key")

		var target migration.Target
		switch {
		case sqlitePath != "":
			t, err := migration.OpenSQLiteTarget(sqlitePath)
			if err != nil {
				return err
			}
			defer t.Close()
			target = t
			fmt.Printf("Migrating %s -> sqlite %s\n\n", dataDir, sqlitePath)
		case pgURL != "":
			if pgKey == "" {
				return fmt.Errorf("--postgrest-key is required with --postgrest-url")
			}
			target = migration.NewPostgRESTTarget(pgURL, pgKey)
			fmt.Printf("Migrating %s -> %s\n\n", dataDir, pgURL)
		default:
			return fmt.Errorf("a target is required: --sqlite <path> or --postgrest-url <url>")
		}

		s, err := openStore()
		if err != nil {
			return err
		}

		res := migration.NewBridge(s, target).Migrate(cmd.Context())
		if !res.Success {
			return fmt.Errorf("migration did not run: %s", res.Message)
		}

		fmt.Printf("Players: %d ok, %d failed\n", res.Results.Players.Success, res.Results.Players.Failed)
		fmt.Printf("Matches: %d ok, %d failed\n", res.Results.Matches.Success, res.Results.Matches.Failed)
		if len(res.Results.Errors) > 0 {
			fmt.Printf("\nErrors:\n")
			for _, e := range res.Results.Errors {
				fmt.Printf("  %s\n", e)
			}
		}
		fmt.Printf("\n%s\n", res.Message)
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("sqlite", "", "path of the SQLite database to migrate into")
	migrateCmd.Flags().String("postgrest-url", "", "base URL of the hosted Postgres (PostgREST)")
	migrateCmd.Flags().String("postgrest-key", "", "API key for the hosted Postgres")
}
