package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"club-backend/internal/cloudsync"
	"club-backend/internal/store"
)

var (
	dataDir   string
	remoteURL string
)

var rootCmd = &cobra.Command{
	Use:   "clubctl",
	Short: "Manage the club's local data store and cloud sync",
	Long: `clubctl operates on the club's local JSON document: importing roster
files, syncing players with the hosted collection, and migrating the whole
document into a relational store.`,
	SilenceUsage: true,
}

func init() {
	defaultDir := os.Getenv("CLUB_DATA_DIR")
	if defaultDir == "" {
		defaultDir = "./data"
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDir, "directory holding the local club document")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote-url", os.Getenv("CLUB_REMOTE_URL"), "base URL of the player collection API")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(autosyncCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(showCmd)
}

func openStore() (store.Store, error) {
	fs, err := store.NewFileStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	return fs, nil
}

func newEngine() (*cloudsync.Engine, error) {
	if remoteURL == "" {
		return nil, fmt.Errorf("remote URL required (--remote-url or CLUB_REMOTE_URL)")
	}
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	return cloudsync.NewEngine(s, cloudsync.NewHTTPRemote(remoteURL)), nil
}
