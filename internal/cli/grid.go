package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/tiling"
)

func newGridCmd() *cobra.Command {
	var showMap bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Lay out the configured layer and print its tile grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			logger := loggerFromContext(cmd.Context())

			t, client := buildTiling(cfg)
			stats := client.Stats()
			logger.Debug("layer laid out", "tiles", t.TileCount(), "declined", stats.Declined)

			w := cmd.OutOrStdout()
			printTitle(w, "Tiling %s", t.ID())
			printKeyValue(w, "layer", formatSize(t.LayerBounds().X, t.LayerBounds().Y))
			printKeyValue(w, "scale", fmt.Sprintf("%.3g", t.ContentsScale()))
			printKeyValue(w, "content", formatSize(t.ContentRect().Dx(), t.ContentRect().Dy()))
			printKeyValue(w, "tile size", formatSize(t.TileSize().X, t.TileSize().Y))
			printKeyValue(w, "border", fmt.Sprintf("%d", t.BorderTexels()))
			printKeyValue(w, "grid", formatSize(t.NumTilesX(), t.NumTilesY()))
			printKeyValue(w, "tiles", fmt.Sprintf("%d of %d", t.TileCount(), t.NumTilesX()*t.NumTilesY()))
			if stats.Declined > 0 {
				printDetail(w, "%d tiles declined by the frame budget", stats.Declined)
			}
			if showMap {
				fmt.Fprintln(w)
				fmt.Fprint(w, renderTileMap(t, tiling.ActiveTree))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMap, "map", true, "print the tile map")
	return cmd
}
