package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd(o *options) *cobra.Command {
	var simple bool

	cmd := &cobra.Command{
		Use:   "match PATTERN DOCUMENT",
		Short: "Score one document against a pattern",
		Example: `  rainstash match itm Item
  rainstash match --simple bf "Bustling Fungus"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, document := args[0], args[1]
			m := o.matcher()
			out := cmd.OutOrStdout()

			if simple {
				fmt.Fprintln(out, strconv.FormatBool(m.MatchSimple(pattern, document)))
				return nil
			}

			res := m.Match(pattern, document)
			p := o.palette()
			fmt.Fprint(out, p.Fields([][2]string{
				{"Matched", strconv.FormatBool(res.Matched)},
				{"Score", strconv.Itoa(res.Score)},
				{"Indices", fmt.Sprint(res.Indices)},
				{"Document", p.Highlight(document, res.Indices)},
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&simple, "simple", false, "only test for an ordered subsequence")
	return cmd
}
