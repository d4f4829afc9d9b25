package depressor

import (
	"github.com/spf13/cobra"
)

// flagsCmd represents the flags command
var flagsCmd = &cobra.Command{
	Use:                   "flags",
	Short:                 "Display the list of available global flags for all depressor commands",
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Usage()
	},
}

func init() {
	flagsCmd.SetUsageTemplate(flagsUsageTemplate)
	flagsCmd.SetHelpTemplate(flagsHelpTemplate)
}

const flagsHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}{{end}}

Usage:
{{.UseLine}}

{{.Usage}}`
const flagsUsageTemplate = `Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
`
