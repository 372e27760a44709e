package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rainstash/internal/manifest"
)

func newUpdateCmd(o *options) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download the item manifest into the local cache",
		Example: `  rainstash update
  rainstash update --url https://example.com/itemManifest.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = o.cfg.ManifestURL
			}
			ctx, cancel := o.withTimeout(cmd.Context())
			defer cancel()

			if err := manifest.Update(ctx, o.client(), url, o.cfg.CachePath); err != nil {
				return err
			}
			items, err := manifest.ItemsFromFile(o.cfg.CachePath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d items to %s\n", len(items), o.cfg.CachePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "manifest URL (default from config)")
	return cmd
}
