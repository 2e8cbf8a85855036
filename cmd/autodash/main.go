package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "autodash",
		Short: "Data cleaning and conversational dashboard backend",
		Long: `AutoDash cleans tabular data (CSV, Excel, Postgres) and serves a
conversational dashboard API that builds and edits charts from chat messages.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand(), newCleanCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
