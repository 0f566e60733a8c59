package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/allfs/quadstorvtl/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "print the hardware catalogs",
	Long: `
Print the library, drive and media catalogs together with the library to
drive compatibility map and the drive to media map.
`,
	Example: `  vtlconsole catalog --format json`,
	RunE:    runCatalog,
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "verify the catalogs",
	Long: `
Verify that the catalogs agree with each other.
`,
	RunE: runCatalogCheck,
}

var catalogFormat string

func init() {
	catalogCmd.AddCommand(
		catalogCheckCmd,
	)

	f := catalogCmd.Flags()

	f.StringVar(
		&catalogFormat, "format", "yaml", "output format (yaml or json)",
	)
}

func writeDocument(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	return fmt.Errorf("unknown format %q", format)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	return writeDocument(os.Stdout, catalogFormat, catalog.Export())
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	if err := catalog.Check(); err != nil {
		return err
	}

	fmt.Printf("catalog version %d ok: %d libraries, %d drives, %d media types\n",
		catalog.Version, len(catalog.Libraries()), len(catalog.Drives()), len(catalog.MediaTypes()),
	)

	return nil
}
