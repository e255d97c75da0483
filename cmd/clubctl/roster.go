package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"club-backend/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Inspect the local player roster",
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players by jersey number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		doc, err := s.Load(cmd.Context())
		if err != nil {
			return err
		}

		players := doc.Players
		sort.Slice(players, func(i, j int) bool { return players[i].Number < players[j].Number })
		for _, p := range players {
			pos := p.Position
			if pos == "" {
				pos = "-"
			}
			fmt.Printf("#%-3d %-24s %s\n", p.Number, p.Name, pos)
		}
		return nil
	},
}

var rosterSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search players by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		doc, err := s.Load(cmd.Context())
		if err != nil {
			return err
		}

		results := roster.Search(doc.Players, args[0])
		if len(results) == 0 {
			fmt.Println("No players match")
			return nil
		}
		for _, r := range results {
			fmt.Printf("#%-3d %s\n", r.Player.Number, r.Player.Name)
		}
		return nil
	},
}

var rosterCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify jersey numbers are unique",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		doc, err := s.Load(cmd.Context())
		if err != nil {
			return err
		}

		if err := roster.CheckUniqueNumbers(doc.Players); err != nil {
			return err
		}
		fmt.Printf("%d players, all jersey numbers unique\n", len(doc.Players))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the local document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore()
		if err != nil {
			return err
		}
		doc, err := s.Load(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(doc)
		}

		fmt.Printf("Team:     %s\n", doc.TeamSettings.TeamName)
		fmt.Printf("Players:  %d\n", len(doc.Players))
		fmt.Printf("Matches:  %d\n", len(doc.Matches))
		fmt.Printf("Photos:   %d\n", len(doc.Photos))
		fmt.Printf("Comments: %d\n", len(doc.Comments))
		return nil
	},
}

func init() {
	rosterCmd.AddCommand(rosterListCmd)
	rosterCmd.AddCommand(rosterSearchCmd)
	rosterCmd.AddCommand(rosterCheckCmd)
	showCmd.Flags().Bool("json", false, "dump the full document as JSON")
}
