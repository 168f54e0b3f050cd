package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gobridge/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobridge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gobridge v%s\n", version.Version)
		fmt.Println("Multi-span bridge modeler")
		fmt.Printf("Built %s from %s\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
