package depressor

import (
	"github.com/depressor/depressor/internal"
	"github.com/spf13/cobra"
)

const InspectShortDescription = "Prints the header and payload details of a compressed file"

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect input",
	Short: InspectShortDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		internal.DefaultHandleInspect(args[0])
	},
}

func init() {
	Cmd.AddCommand(inspectCmd)
}
