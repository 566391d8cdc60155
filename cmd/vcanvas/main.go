package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "vcanvas",
		Short: "vcanvas - a resizable, zoomable drawing surface",
		Long: `vcanvas serves a drawing surface with edge and corner resize handles and
wheel zoom. The surface can be driven from a browser, from the terminal,
or rendered to an image.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "vcanvas.yaml", "Path to the configuration file")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newExportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
