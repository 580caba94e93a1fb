package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List difficulty presets",
	Long: `Show the difficulty presets and the speed each reaches at a few levels.
With a name, show only that preset.

Examples:
  snake presets
  snake presets hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPresets,
}

func runPresets(_ *cobra.Command, args []string) {
	presets := config.Presets()
	if len(args) == 1 {
		preset, err := config.ParsePreset(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, presetHint(err))
			os.Exit(1)
		}
		presets = []config.DifficultyPreset{preset}
	}

	levels := []int{1, 5, 10}

	fmt.Printf("  %-8s  %10s  %10s  %10s\n", "Preset", "Level 1", "Level 5", "Level 10")
	fmt.Printf("  %-8s  %10s  %10s  %10s\n", "------", "-------", "-------", "--------")

	for _, p := range presets {
		cfg := config.DefaultSnakeConfig()
		config.ApplyPreset(&cfg, p)
		policy, closePolicy, err := cfg.Policy()
		if err != nil {
			fail("%v", err)
		}

		fmt.Printf("  %-8s", p)
		for _, level := range levels {
			fmt.Printf("  %10s", fmt.Sprintf("%.2f fps", policy.Rate(level)))
		}
		fmt.Printf("  %s\n", p.Describe())
		closePolicy()
	}

	fmt.Println()
	fmt.Println("Run 'snake play --difficulty <name>' to use one.")
}
