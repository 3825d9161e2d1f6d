package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/pagetree/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagetree",
	Short: "Build validated page-range trees from document outlines",
	Long: `pagetree ingests a flat, possibly noisy document outline (titles, nesting
levels, claimed page numbers) and produces a validated hierarchical tree where
every node owns an inclusive page range. It validates titles, normalizes
chapter levels, infers end boundaries, fills coverage gaps, and can optionally
verify page attribution against the document content with an LLM.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pagetree %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
