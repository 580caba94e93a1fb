package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagPrintDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after the config
file search and the --difficulty flag are applied.

With --print-default, print the built-in snake.yaml instead. It is a good
starting point for ~/.snake/configs/snake.yaml.

Examples:
  snake config
  snake config --difficulty hard
  snake config --print-default > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagPrintDefault, "print-default", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagPrintDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, _, closePolicy, err := loadGame()
	if err != nil {
		fail("%v", err)
	}
	closePolicy()

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
