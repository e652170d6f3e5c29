package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagPlain bool
	flagAll   bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a level. Without a level, opens the
interactive scoreboard for the whole campaign.

Examples:
  platformer scores
  platformer scores level1
  platformer scores level1 --all
  platformer scores level1 --clear
  platformer scores --plain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores instead of opening the scoreboard")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Print every recorded score, not just the top 10")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded scores of a level")
}

func runScores(cmd *cobra.Command, args []string) {
	if err := scores(cmd.OutOrStdout(), args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, levels.ErrLevelNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'platformer levels' to see available levels.")
		}
		os.Exit(1)
	}
}

func scores(out io.Writer, args []string) error {
	if flagClear && len(args) != 1 {
		return errors.New("--clear needs a level")
	}

	loader := levelLoader()
	var selected []levels.Level
	if len(args) == 1 {
		l, err := loader.LoadByID(args[0])
		if err != nil {
			return err
		}
		selected = []levels.Level{l}
	} else {
		all, err := loader.LoadAll()
		if err != nil {
			return fmt.Errorf("loading levels: %w", err)
		}
		selected = all
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(selected[0].ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s (%s)\n", selected[0].Name, selected[0].ID)
		return nil
	}

	interactive := len(args) == 0 && !flagPlain && !flagAll && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, selected, width, height); err != nil {
			return fmt.Errorf("running scoreboard: %w", err)
		}
		return nil
	}

	for i, l := range selected {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := printScores(out, store, l, flagAll); err != nil {
			return fmt.Errorf("retrieving scores: %w", err)
		}
	}
	return nil
}

func printScores(out io.Writer, store *storage.Store, l levels.Level, all bool) error {
	var entries []storage.ScoreEntry
	var err error
	title := "High Scores"
	if all {
		entries, err = store.AllScores(l.ID)
		title = "All Scores"
	} else {
		entries, err = store.TopScores(l.ID, 10)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s - %s (%s)\n", title, l.Name, l.ID)
	fmt.Fprintln(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Coins", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range entries {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(out, "  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Coins, dateStr)
	}

	fmt.Fprintln(out)
	if best, err := store.HighScore(l.ID); err == nil {
		fmt.Fprintf(out, "Best: %d\n", best)
	}
	return nil
}
