package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "recommendation-service",
		Short:         "ChargeSmart charging station recommendation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (defaults to $CONFIG_FILE)")

	root.AddCommand(newServeCmd(&cfgPath), newRecommendCmd(&cfgPath))
	return root
}
