package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files",
	Long: `Parse each level file, build its geometry and spawn its entities.
Reports every file that fails and exits non-zero if any did.

Examples:
  platformer validate ./my-levels/level1.yaml
  platformer validate ./my-levels/*.txt --config ./my-platformer.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(flagConfig, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, path := range args {
		if err := validateLevel(path, cfg); err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok    %s\n", path)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d level files failed\n", failed, len(args))
		os.Exit(1)
	}
}

// validateLevel runs a level file through the same steps as loading it for
// play: parse, build the grid and spawn every entity.
func validateLevel(path string, cfg config.PlatformerConfig) error {
	lvl, err := levels.ParseFile(path)
	if err != nil {
		return err
	}
	g, spawns, err := lvl.Build(cfg.World.TileSize)
	if err != nil {
		return err
	}
	_, err = sim.NewWorld(cfg, g, spawns)
	return err
}
