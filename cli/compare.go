package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"mit.edu/dsg/qep"
)

var (
	compareQuery1 string
	compareQuery2 string
	compareFile1  string
	compareFile2  string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Show how the plans of two queries differ",
	Long: `Compare two query plans node by node and list what was replaced, removed
or inserted in the second plan.

Use --query1/--query2 to plan both queries on the configured database, or
--file1/--file2 to compare saved EXPLAIN (FORMAT JSON) documents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			result *qep.Comparison
			err    error
		)
		switch {
		case compareFile1 != "" && compareFile2 != "":
			doc1, rerr := readPlanFile(compareFile1)
			if rerr != nil {
				return rerr
			}
			doc2, rerr := readPlanFile(compareFile2)
			if rerr != nil {
				return rerr
			}
			result, err = qep.New(nil).CompareDocuments(doc1, doc2)
		case compareQuery1 != "" && compareQuery2 != "":
			q, closeFn, cerr := newQEP(cmd.Context())
			if cerr != nil {
				return cerr
			}
			defer closeFn()
			result, err = q.Compare(cmd.Context(), compareQuery1, compareQuery2)
		default:
			return errors.New("either --query1 and --query2 or --file1 and --file2 are required")
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}
		printChanges(cmd.OutOrStdout(), result.Changes)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareQuery1, "query1", "", "First SQL query")
	compareCmd.Flags().StringVar(&compareQuery2, "query2", "", "Second SQL query")
	compareCmd.Flags().StringVar(&compareFile1, "file1", "", "First EXPLAIN (FORMAT JSON) document")
	compareCmd.Flags().StringVar(&compareFile2, "file2", "", "Second EXPLAIN (FORMAT JSON) document")
}
