package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/setfall/internal/platform/tui"
	"github.com/vovakirdan/setfall/internal/registry"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play setfall",
	Long: `Start playing. Without a mode the mode menu opens.

Controls:
  Type         - Enter a set name
  Enter        - Submit the name (starts a game on the title screen)
  Click        - Start, pause or resume
  Tab          - Give up on the oldest falling icon
  Esc          - Pause/resume (back to menu when the game is over)
  F2/Ctrl+H    - Toggle name hints
  Ctrl+S       - Statistics
  F12          - Save a text screenshot
  Ctrl+Q       - Back to menu
  Ctrl+C       - Quit

Difficulty options:
  easy   - Slower icons, 5 lives
  normal - Starts at 30% difficulty, progresses to max
  hard   - Starts at 70% difficulty, 2 lives, two icons at a time
  fixed  - No progression, stays at config's initial level

Examples:
  setfall play
  setfall play classic
  setfall play waves --resume
  setfall play classic --difficulty easy
  setfall play classic --sets ./my-sets.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue from the latest checkpoint (resumable modes)")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := ""
	if flagResume && len(args) == 0 {
		return fmt.Errorf("--resume needs a mode, e.g. 'setfall play waves --resume'")
	}
	if len(args) == 1 {
		mode = args[0]
		info, ok := registry.Lookup(mode)
		if !ok {
			return fmt.Errorf("unknown mode %q; run 'setfall modes' to see available modes", mode)
		}
		if flagResume && !info.Resumable {
			return fmt.Errorf("mode %q cannot be resumed", mode)
		}
	}

	host, cleanup, err := buildHost(io.Discard)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(host, mode, flagResume)
}
