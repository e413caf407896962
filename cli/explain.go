package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"mit.edu/dsg/qep"
	"mit.edu/dsg/qep/planner"
)

var (
	explainQuery string
	explainFile  string
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain every node of a query plan",
	Long: `Annotate a query plan with a plain-English explanation per node.

The plan is obtained from the configured database with --query, or read from
a saved EXPLAIN (FORMAT JSON) document with --file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			root *planner.PlanNode
			err  error
		)
		switch {
		case explainFile != "":
			data, rerr := readPlanFile(explainFile)
			if rerr != nil {
				return rerr
			}
			root, err = qep.New(nil).SingleDocument(data)
		case explainQuery != "":
			q, closeFn, cerr := newQEP(cmd.Context())
			if cerr != nil {
				return cerr
			}
			defer closeFn()
			root, err = q.Single(cmd.Context(), explainQuery)
		default:
			return errors.New("one of --query or --file is required")
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), root)
		}
		printTree(cmd.OutOrStdout(), root)
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVarP(&explainQuery, "query", "q", "", "SQL query to explain")
	explainCmd.Flags().StringVarP(&explainFile, "file", "f", "", "EXPLAIN (FORMAT JSON) document to read")
	explainCmd.MarkFlagsMutuallyExclusive("query", "file")
}
