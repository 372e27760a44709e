package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	rserr "rainstash/internal/errors"
)

func newShowCmd(o *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print one record by name",
		Long: `Print one record. The name is matched exactly first, then ignoring case.
Use "find" for partial names.`,
		Example: `  rainstash show "Bustling Fungus"
  rainstash show gasoline --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := o.loadCatalog(cmd.Context(), "")
			if err != nil {
				return err
			}
			entry, err := cat.Lookup(strings.Join(args, " "))
			if err != nil {
				return err
			}

			p := o.palette()
			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprint(out, p.Fields(entry.Fields()))
				return nil
			}

			raw, err := json.Marshal(entry.Data)
			if err != nil {
				return rserr.WrapDecode("record "+entry.Name, err)
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return rserr.WrapDecode("record "+entry.Name, err)
			}
			fmt.Fprintln(out, p.JSON(v))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}
