package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/salesmix/internal/classify"
	"github.com/sells-group/salesmix/internal/export"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Show the business category taxonomy",
	Example: `  salesmix taxonomy
  salesmix taxonomy --init taxonomy.yaml   # write the built-in taxonomy for editing`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		initPath, _ := cmd.Flags().GetString("init")
		if initPath != "" {
			if err := export.ToFile(initPath, classify.DefaultTaxonomy().Write); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote taxonomy to %s\n", initPath)
			return nil
		}

		tax, err := loadTaxonomy(cmd)
		if err != nil {
			return err
		}

		t := &tableWriter{w: os.Stdout}
		for i, c := range tax.Categories {
			t.printf("%2d. %s\n", i+1, c.Name)
			if len(c.Keywords) > 0 {
				t.printf("    keywords: %s\n", strings.Join(c.Keywords, ", "))
			}
			if len(c.SubCategories) > 0 {
				t.printf("    sub-categories: %s\n", strings.Join(c.SubCategories, ", "))
			}
		}
		return t.err
	},
}

func init() {
	taxonomyCmd.Flags().String("init", "", "write the built-in taxonomy as YAML to this path")
	rootCmd.AddCommand(taxonomyCmd)
}
