package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"club-backend/internal/cloudsync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the remote player collection into the local store",
	Long: `Sync fetches the hosted player collection and upserts it into the local
document, matching by id or jersey number. The actual outcome is always
reported, including an empty remote.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		return printSyncResult(engine.SyncFromCloudUpsert(cmd.Context()))
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the full local player list to the remote collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		credential, _ := cmd.Flags().GetString("credential")
		if credential == "" {
			credential = os.Getenv("CLUB_SYNC_PASSWORD")
		}
		if credential == "" {
			return fmt.Errorf("credential required (--credential or CLUB_SYNC_PASSWORD)")
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		return printSyncResult(engine.SavePlayersToCloud(cmd.Context(), credential))
	},
}

var autosyncCmd = &cobra.Command{
	Use:   "autosync",
	Short: "Periodically pull remote players until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")

		engine, err := newEngine()
		if err != nil {
			return err
		}

		// Immediate pass first, then the scheduler takes over.
		if err := printSyncResult(engine.SyncWithCloud(cmd.Context())); err != nil {
			return err
		}

		autoSync, err := cloudsync.NewAutoSync(engine, interval)
		if err != nil {
			return err
		}
		if err := autoSync.Start(); err != nil {
			return err
		}
		defer autoSync.Stop()

		fmt.Printf("Auto-sync running every %s, press Ctrl+C to stop\n", interval)
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		return nil
	},
}

func init() {
	pushCmd.Flags().String("credential", "", "sync password for the remote write endpoint")
	autosyncCmd.Flags().Duration("interval", 15*time.Minute, "time between sync passes")
}

func printSyncResult(res cloudsync.SyncResult) error {
	if !res.Success {
		return fmt.Errorf("sync failed: %s", res.Error)
	}

	switch res.Action {
	case cloudsync.ActionImported:
		fmt.Printf("Imported: %d added, %d updated", res.Added, res.Updated)
		if res.Version > 0 {
			fmt.Printf(" (remote version %d)", res.Version)
		}
		fmt.Println()
	case cloudsync.ActionNoChange:
		fmt.Println("Already up to date")
	case cloudsync.ActionNoData:
		fmt.Println("Remote has no players")
	case cloudsync.ActionSaved:
		fmt.Printf("%s (remote version %d)\n", res.Message, res.Version)
	default:
		fmt.Println(res.Message)
	}
	return nil
}
