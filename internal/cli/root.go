package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/tiling/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the tilingctl command tree.
//
// The persistent pre-run loads the configuration named by --config (or the
// defaults) and attaches it, together with the logger, to the command
// context.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           "tilingctl",
		Short:         "tilingctl inspects how layers are split into tiles",
		Long:          `tilingctl lays out a layer as a grid of tiles, walks the tiles covering a destination rect, and simulates scrolling to show how tile priorities evolve.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			routeTilingLogs(logger)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Debug("configuration loaded", "path", configPath,
				"layer", cfg.Layer.Point(), "contents_scale", cfg.Tiling.ContentsScale)

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tilingctl %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")

	root.AddCommand(newGridCmd())
	root.AddCommand(newCoverCmd())
	root.AddCommand(newSimulateCmd())

	return root
}

// Execute runs the tilingctl CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns the configuration attached by the root
// command, or the defaults.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}
