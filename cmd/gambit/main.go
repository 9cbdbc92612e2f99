package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	for _, envFile := range []string{
		".env",
		"../../.env",
		"../../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gambit",
		Short: "Gambit simulates agents deciding when to give up under random reward and punishment.",
		Long: `gambit runs the threshold gambit: an agent keeps going through a stream of
random rewards and punishments until it has seen a threshold of consecutive
punishments. A fixed agent always uses the same threshold; an adaptive agent
moves its threshold toward the average lifespan of past generations.

Configuration is layered: defaults, then a YAML file (--config), then
GAMBIT_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newValidateCmd(),
	)
	return rootCmd
}
