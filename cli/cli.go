package cli

import (
	"flag"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vtlconsole",
	Short: "Run the VTL administration console",
	Long: `
Serves the library, drive and cartridge forms of the VTL administration
console and hands accepted submissions to the VTL engine.
`,
	SilenceUsage: true,
}

var cfgFile string
var flagDebug bool

func init() {
	cobra.EnableCommandSorting = false

	f := rootCmd.PersistentFlags()

	f.StringVar(
		&cfgFile, "config", "", "config file (HCL, or TOML when named *.toml)",
	)

	f.BoolVar(&flagDebug,
		"debug", false, "enable debug mode",
	)

	// glog registers its flags on the standard flag set
	f.AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(
		startCmd,
		catalogCmd,
		spoolCmd,
		versionCmd,
	)
}

func Run(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
