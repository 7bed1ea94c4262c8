package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskpool",
	Short: "Fixed-size worker pool demo",
	Long:  "Run a synthetic workload through a taskpool.Pool and report what happened to every task.",
}

func init() {
	rootCmd.AddCommand(runCmd)
}
