package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newFindCmd(o *options) *cobra.Command {
	var (
		limit int
		spec  string
	)

	cmd := &cobra.Command{
		Use:   "find QUERY",
		Short: "Rank records against a fuzzy query",
		Example: `  rainstash find fung
  rainstash find "soldier syr" --limit 3
  rainstash find getpet --openapi ./petstore.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = o.cfg.Limit
			}
			cat, err := o.loadCatalog(cmd.Context(), spec)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			hits, err := cat.Search(cmd.Context(), o.matcher(), query, limit, o.cfg.Workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintf(out, "No records match %q.\n", query)
				return nil
			}

			nameWidth := 0
			for _, h := range hits {
				nameWidth = max(nameWidth, runewidth.StringWidth(h.Entry.Name))
			}
			p := o.palette()
			for _, h := range hits {
				fmt.Fprintf(out, "%s  %s  %s\n",
					p.Dim.Sprintf("%5d", h.Score),
					p.Column(h.Entry.Name, h.Indices, nameWidth),
					h.Entry.Summary)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results, 0 for all (default from config)")
	cmd.Flags().StringVar(&spec, "openapi", "", "search operations of an OpenAPI file or URL instead of the manifest")
	return cmd
}
