package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect and verify stored replays",
	Long: `Work with the replays recorded at the end of each session.

Every finished game is persisted with its sealed replay payload and the
verification verdict computed at game over. These subcommands let you
audit that data after the fact.

Examples:
  blockfall replay list
  blockfall replay list blockfall_fixed
  blockfall replay verify 3
  blockfall replay export 3 session.json`,
}

var replayListCmd = &cobra.Command{
	Use:   "list [mode]",
	Short: "List recent replays for a mode",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplayList,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <id|file>",
	Short: "Re-run the offline checks on a stored or exported replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayVerify,
}

var replayExportCmd = &cobra.Command{
	Use:   "export <id> [file]",
	Short: "Write a replay payload to a JSON file",
	Args:  cobra.RangeArgs(1, 2),
	Run:   runReplayExport,
}

func init() {
	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayExportCmd)
}

func openReplayStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func loadReplay(store *storage.Store, arg string) *storage.ReplayRecord {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: replay id must be a number, got %q\n", arg)
		os.Exit(1)
	}

	rec, err := store.ReplayByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replay: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		os.Exit(1)
	}
	return rec
}

func runReplayList(cmd *cobra.Command, args []string) {
	gameID := "blockfall"
	if len(args) > 0 {
		gameID = args[0]
	}

	store := openReplayStore()
	defer store.Close()

	records, err := store.RecentReplays(gameID, 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Printf("No replays recorded for %q yet.\n", gameID)
		return
	}

	fmt.Printf("Recent replays - %s\n", gameID)
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-8s  %-10s  %-8s  %s\n",
		"ID", "Score", "Frames", "Duration", "Verified", "Date")

	for _, rec := range records {
		verified := "no"
		if rec.Verified {
			verified = "yes"
		}
		fmt.Printf("  %-4d  %-10d  %-8d  %-10s  %-8s  %s\n",
			rec.ID,
			rec.Score,
			rec.Frames,
			fmt.Sprintf("%.1fs", float64(rec.DurationMs)/1000),
			verified,
			rec.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

func runReplayVerify(cmd *cobra.Command, args []string) {
	var (
		payload []byte
		rec     *storage.ReplayRecord
	)

	// A numeric argument is a database id; anything else is a file path
	// produced by 'replay export'.
	if _, err := strconv.ParseInt(args[0], 10, 64); err == nil {
		store := openReplayStore()
		defer store.Close()
		rec = loadReplay(store, args[0])
		payload = rec.Payload
	} else {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading replay file: %v\n", err)
			os.Exit(1)
		}
		payload = data
	}

	exp, err := bfcore.ParseExport(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing replay payload: %v\n", err)
		os.Exit(1)
	}

	if rec != nil {
		fmt.Printf("Replay %d  mode=%s  seed=%d  score=%d\n", rec.ID, rec.Mode, rec.Seed, rec.Score)
	} else {
		fmt.Printf("Replay %s  mode=%s  seed=%d  score=%d\n", args[0], exp.Mode, exp.Seed, exp.FinalScore)
	}
	fmt.Println()

	checkMark := func(ok bool) string {
		if ok {
			return "pass"
		}
		return "FAIL"
	}

	hashOK := exp.VerifyHash != ""
	if rec != nil {
		hashOK = hashOK && exp.VerifyHash == rec.VerifyHash
		fmt.Printf("  seal hash matches record   %s\n", checkMark(hashOK))
	} else {
		fmt.Printf("  seal hash present          %s\n", checkMark(hashOK))
	}

	verdict := bfcore.ValidateExport(exp, bfcore.DefaultValidationThresholds())
	fmt.Printf("  session duration           %s\n", checkMark(verdict.DurationOK))
	fmt.Printf("  piece rate                 %s\n", checkMark(verdict.PieceRateOK))
	fmt.Printf("  snapshots monotonic        %s\n", checkMark(verdict.SnapshotsOK))
	fmt.Printf("  final score consistent     %s\n", checkMark(verdict.ScoreOK))
	fmt.Println()

	if hashOK && verdict.Eligible() {
		fmt.Println("Result: verified")
		return
	}

	fmt.Println("Result: NOT verified")
	os.Exit(1)
}

func runReplayExport(cmd *cobra.Command, args []string) {
	store := openReplayStore()
	defer store.Close()

	rec := loadReplay(store, args[0])

	outPath := fmt.Sprintf("replay_%d.json", rec.ID)
	if len(args) > 1 {
		outPath = args[1]
	}

	if err := os.WriteFile(outPath, rec.Payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing replay file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote replay %d to %s (%d bytes)\n", rec.ID, outPath, len(rec.Payload))
}
