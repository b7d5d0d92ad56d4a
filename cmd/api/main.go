package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "kanso-goals",
		Short:         "Goal tracking and weekly performance analytics API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the environment")

	root.AddCommand(newServeCommand(&envFile))
	root.AddCommand(newMigrateCommand(&envFile))

	// Running the binary bare keeps the container entrypoint unchanged.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), envFile)
	}

	return root
}
