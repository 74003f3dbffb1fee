package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riptide/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  versionExecution,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
}

func versionExecution(cmd *cobra.Command, _ []string) error {
	colorize(cmd)
	fmt.Printf("riptide %s\n", version.Version)
	if show, _ := cmd.Flags().GetBool("hash"); show && version.GitCommit != "" {
		fmt.Printf("commit: %s\n", version.GitCommit)
	}
	if show, _ := cmd.Flags().GetBool("date"); show && version.BuildDate != "" {
		fmt.Printf("built:  %s\n", version.BuildDate)
	}
	return nil
}
