package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dyva/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show dyva build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dyva %s\n", v)
		if c := strings.TrimSpace(version.GitCommit); c != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", c)
		}
		if d := strings.TrimSpace(version.BuildDate); d != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", d)
		}
		return nil
	},
}
