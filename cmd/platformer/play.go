package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/logging"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagContinue   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start playing the level campaign.

Controls:
  Left/A, Right/D  - Run
  Space/Up/W       - Jump (press again in the air to double jump)
  P                - Pause
  R                - Restart level
  Esc              - Save and return to menu
  L                - Load saved game (from the menu)
  Q/Ctrl+C         - Save and quit

Difficulty options:
  easy   - More health, longer invulnerability, lowest enemy speed
  normal - Start at 30% difficulty, progresses every level
  hard   - Less health, start at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  platformer play
  platformer play --difficulty easy
  platformer play --level level3
  platformer play --continue
  platformer play --config ./my-platformer.yaml --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID to start from")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume the autosaved game")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, levels.ErrLevelNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'platformer levels' to see available levels.")
		}
		os.Exit(1)
	}
}

func play() error {
	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{
		File:   flagLogFile,
		Level:  flagLogLevel,
		Prefix: "platformer",
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	opts := game.Options{
		Config:   cfg,
		Levels:   levelLoader(),
		Logger:   logger,
		TickRate: flagFPS,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		logger.Warn("storage disabled", "err", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	session, err := game.NewSession(opts)
	if err != nil {
		return err
	}
	if err := openCampaign(session); err != nil {
		return err
	}

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}

	if err := tui.Run(session, rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// openCampaign loads the saved game when --continue is set, falling back to
// the requested level in the menu.
func openCampaign(session *game.Session) error {
	if flagContinue {
		err := session.Load()
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrNoSave) && !errors.Is(err, game.ErrNoStore) {
			return err
		}
		fmt.Fprintln(os.Stderr, "No saved game, starting a new one.")
	}
	return session.Open(flagLevel)
}
