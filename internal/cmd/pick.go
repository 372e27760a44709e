package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rainstash/internal/catalog"
	"rainstash/internal/logger"
	"rainstash/internal/manifest"
	"rainstash/internal/render"
	"rainstash/internal/ui"
)

func newPickCmd(o *options) *cobra.Command {
	var (
		spec  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Browse records in a terminal picker",
		Long: `Open an interactive picker. Type to filter, use the arrow keys to move and
Enter to open a record. The name of the last opened record is printed on exit.

With --watch the picker reloads when the manifest cache changes, for example
after "rainstash update" runs in another terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := o.loadCatalog(cmd.Context(), spec)
			if err != nil {
				return err
			}

			opts := ui.Options{
				Workers: o.cfg.Workers,
				Palette: render.NewPalette(!o.noColor),
			}
			if spec != "" {
				opts.Title = "rainstash: " + spec
			}
			if watch && spec == "" {
				path := o.cfg.CachePath
				opts.WatchPath = path
				opts.Reload = func() (*catalog.Catalog, error) {
					m, err := manifest.LoadFile(path)
					if err != nil {
						return nil, err
					}
					return catalog.FromManifest(m), nil
				}
			}

			app := ui.NewApp(cat, o.matcher(), opts)
			restore := logger.Quiet()
			err = app.Run(cmd.Context())
			restore()
			if err != nil {
				return err
			}
			if e, ok := app.Selected(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), e.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "openapi", "", "browse operations of an OpenAPI file or URL instead of the manifest")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the manifest cache changes")
	return cmd
}
