// blockfall is a terminal falling-block puzzle with a deterministic,
// replay-verifiable simulation core.
//
// Usage:
//
//	blockfall list              - List available modes
//	blockfall play [mode]       - Play a mode
//	blockfall serve             - Start SSH server for remote play
//	blockfall scores [mode]     - Show high scores for a mode
//	blockfall replay            - Inspect and verify stored replays
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.blockfall/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - A falling-block puzzle in your terminal",
	Long: `Blockfall is a terminal falling-block puzzle. The simulation is fully
deterministic: every session is reproducible from its seed and input
log, and finished sessions carry a hash-chained score ledger that can
be verified offline.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Inspect and verify stored replays

Examples:
  blockfall play
  blockfall play blockfall_fixed
  blockfall play --seed 42
  blockfall serve --ssh :2222
  blockfall scores
  blockfall replay verify 3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}
