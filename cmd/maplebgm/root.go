package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "maplebgm",
		Short:         "Build the background music dataset from game archives and the music catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default maplebgm.toml)")

	rootCmd.AddCommand(newBuildCommand(&configFlag))
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}
