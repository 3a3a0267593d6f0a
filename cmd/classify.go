package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/salesmix/internal/classify"
	"github.com/sells-group/salesmix/internal/model"
)

// classification is one customer's assigned business category.
type classification struct {
	CustomerID          string `json:"customer_id" csv:"customer_id"`
	BusinessCategory    string `json:"business_category" csv:"business_category"`
	BusinessSubCategory string `json:"business_sub_category" csv:"business_sub_category"`
	Source              string `json:"source" csv:"source"`
}

// Classification sources.
const (
	sourceFile    = "file"
	sourceKeyword = "keyword"
	sourceDefault = "default"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Build a business mapping for every customer in the sales table",
	Long: `Assigns each customer a business category. Entries from --mapping win;
remaining customers are matched against the taxonomy keywords (unless
--no-keywords) and default to Other. Write the result as CSV to reuse it
as a --mapping file.

Examples:
  salesmix classify --sales sales.csv --format csv --output businesses.csv
  salesmix classify --sales sales.csv --mapping partial.csv --taxonomy taxonomy.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "classify"))

		// Classification happens below so file entries can be told apart.
		if err := cmd.Flags().Set("auto-classify", "false"); err != nil {
			return err
		}
		ws, err := loadWorkspace(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		noKeywords, _ := cmd.Flags().GetBool("no-keywords")
		useKeywords := cfg.Classify.UseKeywords && !noKeywords

		fileMapping := ws.Session.Mapping()
		mapping := ws.Session.AutoClassify(ws.Classifier, useKeywords)

		rows := classifications(classify.UniqueCustomers(ws.Session.Sales()), fileMapping, mapping, ws.Classifier, useKeywords)
		counts := make(map[string]int)
		for _, r := range rows {
			counts[r.Source]++
		}
		log.Info("classified customers",
			zap.Int("customers", len(rows)),
			zap.Int("from_file", counts[sourceFile]),
			zap.Int("by_keyword", counts[sourceKeyword]),
			zap.Int("defaulted", counts[sourceDefault]),
		)

		return output(cmd, rows, writeClassificationTable, nil)
	},
}

func init() {
	addOutputFlags(classifyCmd, "table, csv or json", false)
	rootCmd.AddCommand(classifyCmd)
}

func classifications(ids []string, fileMapping, mapping model.BusinessMapping, c *classify.Classifier, useKeywords bool) []classification {
	out := make([]classification, 0, len(ids))
	for _, id := range ids {
		class := mapping[id]
		source := sourceDefault
		if _, ok := fileMapping[id]; ok {
			source = sourceFile
		} else if useKeywords {
			if _, ok := c.ClassifyByKeyword(id); ok {
				source = sourceKeyword
			}
		}
		out = append(out, classification{
			CustomerID:          id,
			BusinessCategory:    class.Category,
			BusinessSubCategory: class.SubCategory,
			Source:              source,
		})
	}
	return out
}

func writeClassificationTable(w io.Writer, rows []classification) error {
	t := &tableWriter{w: w}
	if len(rows) == 0 {
		t.printf("No customers.\n")
		return t.err
	}
	t.printf("%-32s %-26s %-20s %-8s\n", "Customer", "Business Category", "Sub-Category", "Source")
	t.rule(89)
	for _, r := range rows {
		t.printf("%-32s %-26s %-20s %-8s\n",
			truncate(r.CustomerID, 32), truncate(r.BusinessCategory, 26), truncate(r.BusinessSubCategory, 20), r.Source)
	}
	return t.err
}
