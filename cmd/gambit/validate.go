package main

import (
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve and validate the configuration, then print it as YAML",
		Long: `Resolve the configuration the same way run does and print the result.

Examples:
  gambit validate --config experiment.yaml
  gambit validate --agent adaptive --lr 0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addConfigFlags(cmd)
	return cmd
}
