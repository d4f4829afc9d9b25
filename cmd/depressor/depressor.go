package depressor

import (
	"fmt"
	"os"
	"strings"

	"github.com/depressor/depressor/internal"
	"github.com/spf13/cobra"
)

const ShortDescription = "Restores files packed with their original extension"

// These variables are here only to show current version. They are set in makefile during build process
var depressorVersion = "devel"
var gitRevision = "devel"
var buildDate = "devel"

var Cmd = &cobra.Command{
	Use:     "depressor",
	Short:   ShortDescription,
	Version: strings.Join([]string{depressorVersion, gitRevision, buildDate}, "\t"),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the Cmd.
func Execute() {
	if err := Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(internal.InitConfig, internal.Configure)

	Cmd.PersistentFlags().StringVar(&internal.CfgFile, "config", "", "config file (default is $HOME/.depressor.json)")
	Cmd.InitDefaultVersionFlag()
	internal.AddConfigFlags(Cmd)
	Cmd.AddCommand(flagsCmd)
}
