package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tapecheck-dev/tapecheck/internal/config"
	"github.com/tapecheck-dev/tapecheck/internal/engine"
)

var lintStrict bool

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint <checklist.yaml>",
	Short: "Lint a checklist's waiver sets",
	Long: `Validate a checklist document and report advisory defects in its
waiver sets: duplicate patterns, entries without a reason, and
overlapping patterns that would match the same violation (list order
decides deterministically, but overlap usually means a stale waiver).`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return lintAction(args[0])
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Exit non-zero when findings exist")
}

func lintAction(checklistPath string) error {
	checklist, err := config.LoadChecklist(checklistPath)
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}

	lints, err := engine.LintWaivers(checklist, filepath.Dir(checklistPath))
	if err != nil {
		return err
	}

	if len(lints) == 0 {
		fmt.Println("no waiver findings")
		return nil
	}

	total := 0
	for _, lint := range lints {
		fmt.Printf("%s:\n", lint.CheckID)
		for _, finding := range lint.Findings {
			fmt.Printf("  %s: %s\n", finding.Pattern, finding.Message)
			total++
		}
	}

	if lintStrict {
		return fmt.Errorf("lint found %d finding(s)", total)
	}
	return nil
}
