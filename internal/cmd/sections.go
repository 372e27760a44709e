package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"rainstash/internal/manifest"
)

func newClassesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Print the item class table of the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := manifest.ClassInfoFromFile(o.cfg.CachePath)
			if err != nil {
				return err
			}

			classes := make([]string, 0, len(info))
			for c := range info {
				classes = append(classes, c)
			}
			sort.Strings(classes)

			p := o.palette()
			out := cmd.OutOrStdout()
			for _, c := range classes {
				fmt.Fprintln(out, p.String.Sprint(c))

				props := info[c]
				keys := make([]string, 0, len(props))
				for k := range props {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fields := make([][2]string, len(keys))
				for i, k := range keys {
					fields[i] = [2]string{"  " + k, props[k]}
				}
				fmt.Fprint(out, p.Fields(fields))
			}
			return nil
		},
	}
}

func newOrderCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print item names in the manifest's command sort order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := manifest.CommandSortFromFile(o.cfg.CachePath)
			if err != nil {
				return err
			}
			items, err := manifest.ItemsFromFile(o.cfg.CachePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, key := range keys {
				name := key
				if it, ok := items[key]; ok {
					name = it.Name
				}
				fmt.Fprintf(out, "%3d  %s\n", i+1, name)
			}
			return nil
		},
	}
}
