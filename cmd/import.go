package cmd

import (
	"fmt"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import-xlsx <file>",
	Short: "Convert a spreadsheet of questions into a catalog file",
	Long: `Read questions from an .xlsx sheet with the columns
id, text, option 1-4, correct index (0-3), topic, difficulty (1-5)
and write them as a catalog file. Invalid rows are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")
		out, _ := cmd.Flags().GetString("out")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)
		if out == "" {
			out = cfg.CatalogPath()
		}

		questions, diags, err := catalog.ImportXLSX(args[0], sheet)
		for _, d := range diags {
			logger.Warn("spreadsheet row skipped", "path", args[0], "line", d.Line, "reason", d.Reason)
		}
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return fmt.Errorf("%s: %w", args[0], catalog.ErrEmptyCatalog)
		}

		if err := store.EnsureDir(out); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := catalog.WriteFile(out, questions); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}

		fmt.Printf("Imported %d questions to %s (%d rows skipped)\n", len(questions), out, len(diags))
		return nil
	},
}

func init() {
	importCmd.Flags().String("sheet", catalog.DefaultSheet, "Sheet name")
	importCmd.Flags().String("out", "", "Output catalog file (default the configured catalog path)")
}
