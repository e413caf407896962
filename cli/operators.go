package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mit.edu/dsg/qep/planner"
)

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "List the operator types with a dedicated explanation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops := planner.DefaultExplainer().Operators()
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), ops)
		}
		for _, op := range ops {
			fmt.Fprintln(cmd.OutOrStdout(), op)
		}
		return nil
	},
}
