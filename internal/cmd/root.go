// Package cmd implements the rainstash command line.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rainstash/internal/catalog"
	"rainstash/internal/config"
	"rainstash/internal/httpclient"
	"rainstash/internal/logger"
	"rainstash/internal/manifest"
	"rainstash/internal/matching"
	"rainstash/internal/openapi"
	"rainstash/internal/render"
)

// options is shared by all subcommands and filled in by PersistentPreRunE.
type options struct {
	configPath string
	cachePath  string
	logLevel   string
	noColor    bool

	cfg config.Config
}

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "rainstash",
		Short: "Fuzzy search for item manifests and OpenAPI operations",
		Long: `rainstash keeps a local copy of an item manifest and finds records in it
with a fuzzy matcher that favours contiguous runs, word starts and camel humps.

Examples:
  rainstash update                      Download the vanilla manifest
  rainstash find fung                   Rank items against a query
  rainstash show "Bustling Fungus"      Print one item
  rainstash pick --watch                Browse items, reloading on update
  rainstash find pet --openapi api.yaml Search operations of an OpenAPI document`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rainstash/config.yaml)")
	pf.StringVar(&o.cachePath, "cache", "", "manifest cache file")
	pf.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&o.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newUpdateCmd(o),
		newFindCmd(o),
		newShowCmd(o),
		newClassesCmd(o),
		newOrderCmd(o),
		newMatchCmd(o),
		newPickCmd(o),
	)
	return root
}

// ExecuteContext runs the root command with the process arguments.
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// load applies config file, environment and flags, in increasing precedence.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("cache") {
		cfg.CachePath = o.cachePath
	}
	explicitLevel := flags.Changed("log-level") || os.Getenv("RAINSTASH_LOG_LEVEL") != ""
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// the debug file stays at debug level unless a level was asked for
	if explicitLevel || !logger.DebugEnabled() {
		logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	}
	logger.Logger.Debug("config loaded", "cache", cfg.CachePath, "manifest_url", cfg.ManifestURL)
	o.cfg = cfg
	return nil
}

func (o *options) palette() render.Palette {
	return render.NewPalette(!o.noColor && !color.NoColor)
}

func (o *options) matcher() *matching.Matcher {
	return matching.NewMatcher(o.cfg.Scoring.Weights())
}

func (o *options) client() *httpclient.Client {
	return httpclient.New(o.cfg.TimeoutDuration())
}

func (o *options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.cfg.TimeoutDuration()+5*time.Second)
}

// loadCatalog reads the manifest cache, or the OpenAPI document when spec is set.
func (o *options) loadCatalog(ctx context.Context, spec string) (*catalog.Catalog, error) {
	if spec != "" {
		ctx, cancel := o.withTimeout(ctx)
		defer cancel()
		doc, err := openapi.Load(ctx, o.client(), spec)
		if err != nil {
			return nil, err
		}
		return catalog.FromEndpoints(openapi.ExtractEndpoints(doc)), nil
	}

	m, err := manifest.LoadFile(o.cfg.CachePath)
	if err != nil {
		return nil, err
	}
	return catalog.FromManifest(m), nil
}
