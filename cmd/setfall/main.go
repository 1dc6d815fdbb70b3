// setfall is a terminal game: icons of card sets fall down the screen and
// you type each set's name before its icon lands.
//
// Usage:
//
//	setfall play [mode]      - Play (menu when no mode is given)
//	setfall modes            - List game modes
//	setfall sets             - List the loaded sets
//	setfall scores <mode>    - Show high scores for a mode
//	setfall stats            - Show per-set accuracy
//	setfall serve            - Start SSH server for remote play
//	setfall config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.setfall/setfall.db)
//	--config <path>       - Game config YAML
//	--sets <path>         - Set list YAML (default: built-in list)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register game modes
	_ "github.com/vovakirdan/setfall/internal/game/modes"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagSets       string
	flagDifficulty string
	flagLogPath    string
	flagLogLevel   string
	flagNoImages   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "setfall",
	Short: "Setfall - name the falling sets before they land",
	Long: `Setfall is a terminal typing game. Set icons fall from the top of the
screen; type a set's name to clear its icon before it reaches the ground.
Letting an icon land costs a life.

Available commands:
  play     - Play a mode, or pick one from the menu
  modes    - Show all game modes
  sets     - Show the loaded set list
  scores   - View high scores
  stats    - View per-set accuracy
  serve    - Start SSH server for remote play
  config   - Print the default configuration

Examples:
  setfall play
  setfall play waves --resume
  setfall play classic --difficulty hard
  setfall serve --ssh :2222
  setfall scores classic`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.setfall/setfall.db", "Path to database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagSets, "sets", "", "Path to a set list YAML (default: built-in list)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogPath, "log", "", "Write logs to this file (default: discard)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagNoImages, "no-images", false, "Do not download set icons")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
