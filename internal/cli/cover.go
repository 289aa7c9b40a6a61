package cli

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"
)

func newCoverCmd() *cobra.Command {
	var (
		scale   float64
		rectArg string
	)

	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Print the tiles covering a destination rect",
		Long:  `cover walks the tiles covering a destination rect drawn at --scale and prints, for each grid cell, the destination geometry and the matching texture rect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if !(scale > 0) {
				return fmt.Errorf("scale must be positive, got %v", scale)
			}

			t, _ := buildTiling(cfg)

			dest := image.Rectangle{Max: cfg.Viewport.Point()}
			if rectArg != "" {
				r, err := parseRect(rectArg)
				if err != nil {
					return err
				}
				dest = r
			}

			w := cmd.OutOrStdout()
			printTitle(w, "Cover %v at scale %.3g", dest, scale)

			steps, covered, missing := 0, 0, 0
			for c := range t.Cover(scale, dest) {
				steps++
				covered += c.GeometryRect.Dx() * c.GeometryRect.Dy()
				state := "tile"
				if c.Tile == nil {
					state = "none"
					missing++
				}
				tex := c.TextureRect
				printKeyValue(w, c.Index.String(), fmt.Sprintf("%-4s geometry %v  texture (%.2f,%.2f)-(%.2f,%.2f) of %s",
					state, c.GeometryRect, tex.X, tex.Y, tex.Right(), tex.Bottom(),
					formatSize(c.TextureSize.X, c.TextureSize.Y)))
			}

			printDetail(w, "%d cells, %d without tile, %d of %d pixels covered",
				steps, missing, covered, dest.Dx()*dest.Dy())
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 1, "destination scale relative to layer space")
	cmd.Flags().StringVar(&rectArg, "rect", "", "destination rect as x,y,w,h (default: the viewport)")
	return cmd
}
