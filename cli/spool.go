package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/spool"
)

var spoolCmd = &cobra.Command{
	Use:   "spool",
	Short: "inspect pending submissions",
	Long: `
Inspect the submissions waiting for the VTL engine. The server must not be
running; the spool database is locked while it is.
`,
}

var spoolListCmd = &cobra.Command{
	Use:     "list [kind]",
	Short:   "list pending submissions",
	Example: `  vtlconsole spool list vtl`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSpoolList,
}

var spoolShowCmd = &cobra.Command{
	Use:     "show <kind> <seq>",
	Short:   "print one pending submission",
	Example: `  vtlconsole spool show vcartridge 3`,
	Args:    cobra.ExactArgs(2),
	RunE:    runSpoolShow,
}

var spoolDropCmd = &cobra.Command{
	Use:     "drop <kind> <seq>",
	Short:   "remove a pending submission",
	Example: `  vtlconsole spool drop vtl 1`,
	Args:    cobra.ExactArgs(2),
	RunE:    runSpoolDrop,
}

var spoolFormat string

func init() {
	spoolCmd.AddCommand(
		spoolListCmd,
		spoolShowCmd,
		spoolDropCmd,
	)

	spoolShowCmd.Flags().StringVar(
		&spoolFormat, "format", "yaml", "output format (yaml or json)",
	)
}

func withSpool(fn func(context.Context, *spool.Spool) error) error {
	sp, err := spool.Open(cfg.Spool.Path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	defer sp.Close(ctx)

	return fn(ctx, sp)
}

func runSpoolList(cmd *cobra.Command, args []string) error {
	kinds := spool.Kinds
	if len(args) == 1 {
		kinds = args
	}

	return withSpool(func(ctx context.Context, sp *spool.Spool) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tSEQ\tID\tCREATED")

		for _, kind := range kinds {
			recs, err := sp.List(ctx, kind)
			if err != nil {
				return err
			}

			for _, rec := range recs {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					rec.Kind, rec.Seq, rec.ID, rec.Created.Format(time.RFC3339),
				)
			}
		}

		return w.Flush()
	})
}

func parseSeq(s string) (uint64, error) {
	seq, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence number %q", s)
	}

	return seq, nil
}

func runSpoolShow(cmd *cobra.Command, args []string) error {
	seq, err := parseSeq(args[1])
	if err != nil {
		return err
	}

	return withSpool(func(ctx context.Context, sp *spool.Spool) error {
		rec, err := sp.Get(ctx, args[0], seq)
		if err != nil {
			return err
		}

		var body interface{}
		if err := json.Unmarshal(rec.Body, &body); err != nil {
			return err
		}

		return writeDocument(os.Stdout, spoolFormat, map[string]interface{}{
			"id":      rec.ID.String(),
			"kind":    rec.Kind,
			"seq":     rec.Seq,
			"created": rec.Created.Format(time.RFC3339),
			"body":    body,
		})
	})
}

func runSpoolDrop(cmd *cobra.Command, args []string) error {
	seq, err := parseSeq(args[1])
	if err != nil {
		return err
	}

	return withSpool(func(ctx context.Context, sp *spool.Spool) error {
		if err := sp.Remove(ctx, args[0], seq); err != nil {
			return err
		}

		fmt.Printf("dropped %s #%d\n", args[0], seq)

		return nil
	})
}
