package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var (
	flagMode       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game directly, skipping the menu.

Controls:
  Arrows/WASD/HJKL  - Steer
  Enter             - Start / play again
  Space/P           - Pause
  M                 - Switch mode (before a game)
  R                 - Reset
  Esc/Q             - Quit

Difficulty options:
  easy   - 200ms start interval
  normal - 150ms start interval
  hard   - 100ms start interval
  fixed  - no speed-up while eating

Examples:
  snake play
  snake play --mode passthrough
  snake play --difficulty hard`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runTUI(tui.AppOptions{Start: tui.ScreenGame})
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start in the menu: play, watch active players, browse the
leaderboard and manage your account.

Controls:
  Up/Down/j/k  - Navigate
  Enter        - Select
  Q            - Quit`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runTUI(tui.AppOptions{Start: tui.ScreenMenu})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [player-id]",
	Short: "Watch an active player",
	Long: `List active players and watch an autopilot replay in their mode.
With a player id, that player is opened directly.

Examples:
  snake watch
  snake watch demo-1`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		opts := tui.AppOptions{Start: tui.ScreenWatch}
		if len(args) == 1 {
			opts.WatchID = args[0]
		}
		runTUI(opts)
	},
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagMode, "mode", "", "Game mode: walls or passthrough (default from config)")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// runTUI opens the services and runs the app until the user quits.
func runTUI(opts tui.AppOptions) {
	logger, closeLog := newFileLogger()
	defer closeLog()

	e, err := openEnv(logger)
	if err != nil {
		fatalf("%v", err)
	}
	defer e.store.Close()

	if flagMode != "" {
		mode, err := snake.ParseMode(flagMode)
		if err != nil {
			fatalf("%v", err)
		}
		opts.Mode = mode
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fatalf("%v", err)
		}
		config.ApplyPreset(&e.cfg, preset)
	}

	logger.Debug("starting", "screen", opts.Start, "mode", opts.Mode, "seed", flagSeed)
	if err := tui.Run(e.services(), runtimeConfig(e.cfg), opts); err != nil {
		fatalf("running game: %v", err)
	}
}
