package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lpsimplex",
	Short: "lpsimplex - a two-phase simplex linear program solver",
	Long: `lpsimplex solves linear programs with the two-phase revised simplex method.
It serves solves over HTTP, accepts MPS files, and can drain a queue of
submitted jobs on a schedule.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags can be added here
	// rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}
