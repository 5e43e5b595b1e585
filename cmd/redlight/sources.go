package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/redlight/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List motion sources",
	Long:  `Shows the motion sources that can feed a session.`,
	Args:  cobra.NoArgs,
	Run:   runSources,
}

func runSources(_ *cobra.Command, _ []string) {
	sources := registry.List()

	if len(sources) == 0 {
		fmt.Println("No motion sources available.")
		return
	}

	fmt.Println("Available motion sources:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range sources {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, s := range sources {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Description)
	}

	fmt.Println()
	fmt.Println("Use '--source <id>' with play, sim or serve.")
}
