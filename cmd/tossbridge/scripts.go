package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "List registered script types",
	Long:  `Shows the script types that can be instantiated by name.`,
	RunE:  runScripts,
}

func runScripts(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	names := a.registry.Names()
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No script types registered.")
		return nil
	}

	fmt.Fprintln(out, "Script types:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
